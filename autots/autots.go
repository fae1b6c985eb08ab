package autots

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/awalker88/auto-time-series/forecast"
	"github.com/awalker88/auto-time-series/metrics"
	"github.com/awalker88/auto-time-series/timeseries"
)

// Candidate is one evaluated model with its holdout score. Candidates are
// ranked ascending by score; lower is better.
type Candidate struct {
	Name    forecast.ModelName
	Score   float64
	Model   forecast.FittedModel // nil for the ensemble
	Holdout *HoldoutTable
}

// HoldoutTable pairs holdout actuals with one model's predictions,
// aligned by timestamp.
type HoldoutTable struct {
	Timestamps []time.Time
	Actual     []float64
	Predicted  []float64
}

// AutoTS fits the configured candidate models, scores them on a trailing
// holdout window and serves forecasts from the best one.
//
// Candidates are fitted on the full series, holdout included; the holdout
// points therefore influence both the reported score and the deployed fit.
// This maximizes the data behind the final model at the cost of a slightly
// optimistic score.
type AutoTS struct {
	cfg Config
	log zerolog.Logger

	fitted     bool
	train      *timeseries.Series
	exogNames  []string
	candidates []Candidate
	models     map[forecast.ModelName]forecast.FittedModel
	selected   forecast.ModelName
}

// New constructs an orchestrator from cfg. Configuration violations wrap
// ErrConfig.
func New(cfg Config) (*AutoTS, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Str("component", "autots").Logger()
	}

	return &AutoTS{cfg: cfg, log: logger}, nil
}

// Fit trains every configured candidate on the series, scores each on the
// trailing holdout window and selects the best. Any prior fitted state is
// discarded first; a failed Fit leaves the orchestrator unfitted.
func (a *AutoTS) Fit(series *timeseries.Series, exog *timeseries.ExogenousSet) error {
	a.reset()

	if err := a.validateInput(series, exog); err != nil {
		return err
	}

	holdStart := series.Timestamps[series.Len()-a.cfg.HoldoutPeriod]
	holdEnd := series.LastDate()
	actuals := series.Tail(a.cfg.HoldoutPeriod)

	order := a.cfg.evaluationOrder()
	a.log.Info().
		Int("observations", series.Len()).
		Int("holdout", a.cfg.HoldoutPeriod).
		Int("candidates", len(order)).
		Msg("fitting candidates")

	base := make([]forecast.ModelName, 0, len(order))
	for _, name := range order {
		if name != forecast.Ensemble {
			base = append(base, name)
		}
	}

	// Each goroutine writes only its own slot, so the candidate order is
	// deterministic at any parallelism width.
	results := make([]Candidate, len(base))
	var g errgroup.Group
	limit := a.cfg.MaxParallel
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, name := range base {
		i, name := i, name
		g.Go(func() error {
			cand, err := a.evaluateCandidate(name, series, exog, holdStart, holdEnd, actuals)
			if err != nil {
				return err
			}
			results[i] = cand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	candidates := results

	wantEnsemble := len(base) < len(order)
	if wantEnsemble {
		ens, err := ensembleCandidate(candidates, a.cfg.ErrorMetric)
		if err != nil {
			return err
		}
		candidates = append(candidates, ens)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	a.candidates = candidates
	a.models = make(map[forecast.ModelName]forecast.FittedModel, len(base))
	for _, c := range candidates {
		if c.Model != nil {
			a.models[c.Name] = c.Model
		}
	}
	a.train = series.Copy()
	if exog != nil {
		a.exogNames = append([]string(nil), exog.Names...)
	}
	a.selected = candidates[0].Name
	a.fitted = true

	a.log.Info().
		Str("selected", string(a.selected)).
		Float64("score", candidates[0].Score).
		Msg("model selected")

	return nil
}

func (a *AutoTS) reset() {
	a.fitted = false
	a.train = nil
	a.exogNames = nil
	a.candidates = nil
	a.models = nil
	a.selected = ""
}

func (a *AutoTS) validateInput(series *timeseries.Series, exog *timeseries.ExogenousSet) error {
	if series == nil || series.Len() == 0 {
		return fmt.Errorf("%w: empty series", ErrInputShape)
	}
	if !series.IsChronological() {
		return fmt.Errorf("%w: timestamps must be strictly increasing", ErrInputShape)
	}
	if series.Len() <= a.cfg.HoldoutPeriod {
		return fmt.Errorf("%w: need more than %d observations for a %d-period holdout, got %d",
			ErrInputShape, a.cfg.HoldoutPeriod, a.cfg.HoldoutPeriod, series.Len())
	}
	if exog != nil {
		if err := exog.Validate(series.Len()); err != nil {
			return fmt.Errorf("%w: %v", ErrInputShape, err)
		}
	}
	return nil
}

// evaluateCandidate fits one model family on the full series and scores
// its in-sample predictions over the holdout window.
func (a *AutoTS) evaluateCandidate(name forecast.ModelName, series *timeseries.Series,
	exog *timeseries.ExogenousSet, holdStart, holdEnd time.Time, actuals *timeseries.Series) (Candidate, error) {

	forecaster, err := forecast.New(name, a.cfg.SeasonalPeriod)
	if err != nil {
		return Candidate{}, err
	}

	started := time.Now()
	model, err := forecaster.Fit(series, exog)
	if err != nil {
		return Candidate{}, fmt.Errorf("fitting %s: %w", name, err)
	}

	preds, err := model.PredictInSample(holdStart, holdEnd)
	if err != nil {
		return Candidate{}, fmt.Errorf("scoring %s: %w", name, err)
	}

	table, err := alignHoldout(actuals, preds)
	if err != nil {
		return Candidate{}, fmt.Errorf("scoring %s: %w", name, err)
	}

	score, err := metrics.Score(a.cfg.ErrorMetric, table.Predicted, table.Actual)
	if err != nil {
		return Candidate{}, fmt.Errorf("scoring %s: %w", name, err)
	}

	a.log.Debug().
		Str("model", string(name)).
		Float64("score", score).
		Dur("elapsed", time.Since(started)).
		Msg("candidate evaluated")

	return Candidate{Name: name, Score: score, Model: model, Holdout: table}, nil
}

// alignHoldout joins holdout actuals and model predictions on timestamp.
// Every holdout timestamp must be present in the predictions.
func alignHoldout(actuals, preds *timeseries.Series) (*HoldoutTable, error) {
	table := &HoldoutTable{
		Timestamps: make([]time.Time, 0, actuals.Len()),
		Actual:     make([]float64, 0, actuals.Len()),
		Predicted:  make([]float64, 0, actuals.Len()),
	}

	for i, ts := range actuals.Timestamps {
		j := preds.IndexOf(ts)
		if j < 0 {
			return nil, fmt.Errorf("%w: no prediction for %s",
				ErrAlignment, ts.Format("2006-01"))
		}
		table.Timestamps = append(table.Timestamps, ts)
		table.Actual = append(table.Actual, actuals.Values[i])
		table.Predicted = append(table.Predicted, preds.Values[j])
	}
	return table, nil
}

// IsFitted reports whether a successful Fit has completed.
func (a *AutoTS) IsFitted() bool { return a.fitted }

// SelectedModel returns the winning model name, or empty before Fit.
func (a *AutoTS) SelectedModel() forecast.ModelName { return a.selected }

// BestScore returns the winning candidate's holdout score. Valid only
// after a successful Fit.
func (a *AutoTS) BestScore() float64 {
	if !a.fitted {
		return 0
	}
	return a.candidates[0].Score
}

// Candidates returns the ranked candidate list, best first.
func (a *AutoTS) Candidates() []Candidate {
	out := make([]Candidate, len(a.candidates))
	copy(out, a.candidates)
	return out
}
