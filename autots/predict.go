package autots

import (
	"fmt"
	"time"

	"github.com/awalker88/auto-time-series/forecast"
	"github.com/awalker88/auto-time-series/timeseries"
)

// rangeKind classifies a forecast request against the training window.
type rangeKind int

const (
	fullyInSample rangeKind = iota
	straddling
	fullyOutOfSample
)

// resolveRange classifies [start, end] relative to the last observed
// timestamp. The boundaries are deliberate: a request starting exactly at
// the last observation is treated as out of sample.
func resolveRange(start, end, last time.Time) rangeKind {
	switch {
	case start.Before(last) && !end.After(last):
		return fullyInSample
	case start.Before(last) && end.After(last):
		return straddling
	default:
		return fullyOutOfSample
	}
}

// Predict forecasts the monthly range [start, end], both inclusive, using
// the selected model. Requests may cover training months (served from
// in-sample predictions), future months, or both. Violated preconditions
// return ErrRange or ErrNotFitted; no partial results are returned.
func (a *AutoTS) Predict(start, end time.Time, exog *timeseries.ExogenousSet) (*timeseries.Series, error) {
	if !a.fitted {
		return nil, fmt.Errorf("%w: call Fit before Predict", ErrNotFitted)
	}

	first := a.train.FirstDate()
	last := a.train.LastDate()

	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s",
			ErrRange, start.Format("2006-01"), end.Format("2006-01"))
	}
	if start.Before(first) {
		return nil, fmt.Errorf("%w: start %s precedes first observation %s",
			ErrRange, start.Format("2006-01"), first.Format("2006-01"))
	}
	if start.After(timeseries.AddMonths(last, 1)) {
		return nil, fmt.Errorf("%w: start %s leaves a gap after last observation %s",
			ErrRange, start.Format("2006-01"), last.Format("2006-01"))
	}
	if len(a.exogNames) > 0 && end.After(last) && (exog == nil || exog.NumColumns() == 0) {
		return nil, fmt.Errorf("%w: fitted with exogenous regressors %v; future rows are required",
			ErrRange, a.exogNames)
	}

	var result *timeseries.Series
	var err error
	if a.selected == forecast.Ensemble {
		result, err = a.predictEnsemble(start, end, last, exog)
	} else {
		result, err = a.predictSingle(a.models[a.selected], start, end, last, exog)
	}
	if err != nil {
		return nil, err
	}

	want := timeseries.MonthsBetween(start, end) + 1
	if result.Len() != want {
		return nil, fmt.Errorf("%w: expected %d forecast rows for [%s, %s], got %d",
			ErrRange, want, start.Format("2006-01"), end.Format("2006-01"), result.Len())
	}

	// Re-anchor on the regular monthly grid spanning exactly [start, end]
	return result.Reindex(start), nil
}

// predictSingle dispatches one fitted model over the resolved range.
func (a *AutoTS) predictSingle(model forecast.FittedModel, start, end, last time.Time,
	exog *timeseries.ExogenousSet) (*timeseries.Series, error) {

	switch resolveRange(start, end, last) {
	case fullyInSample:
		return model.PredictInSample(start, end)

	case straddling:
		in, err := model.PredictInSample(start, last)
		if err != nil {
			return nil, err
		}
		out, err := model.PredictOutOfSample(timeseries.MonthsBetween(last, end), exog)
		if err != nil {
			return nil, err
		}
		return in.Concat(out), nil

	default:
		periods := timeseries.MonthsBetween(start, end) + 1
		return model.PredictOutOfSample(periods, exog)
	}
}

// predictEnsemble runs the same range dispatch independently for every
// constituent model and averages the merged results. This is a second
// ensemble pass, separate from the fit-time holdout one.
func (a *AutoTS) predictEnsemble(start, end, last time.Time, exog *timeseries.ExogenousSet) (*timeseries.Series, error) {
	names := make([]forecast.ModelName, 0, len(a.models))
	for _, name := range a.cfg.evaluationOrder() {
		if name == forecast.Ensemble {
			continue
		}
		if _, ok := a.models[name]; ok {
			names = append(names, name)
		}
	}

	parts := make([]*timeseries.Series, len(names))
	for i, name := range names {
		p, err := a.predictSingle(a.models[name], start, end, last, exog)
		if err != nil {
			return nil, fmt.Errorf("ensemble constituent %s: %w", name, err)
		}
		parts[i] = p
	}

	return mergePredictions(names, parts)
}
