package autots

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/awalker88/auto-time-series/forecast"
	"github.com/awalker88/auto-time-series/metrics"
	"github.com/awalker88/auto-time-series/timeseries"
)

// ensembleCandidate builds the fit-time ensemble from the already
// evaluated candidates: the holdout tables are inner-joined on timestamp
// and the ensemble prediction is the row mean of the model predictions.
func ensembleCandidate(candidates []Candidate, metric metrics.Name) (Candidate, error) {
	if len(candidates) < 2 {
		return Candidate{}, fmt.Errorf("%w: ensemble requires at least two other models", ErrConfig)
	}

	ref := candidates[0].Holdout
	n := len(ref.Timestamps)

	table := &HoldoutTable{
		Timestamps: append([]time.Time(nil), ref.Timestamps...),
		Actual:     append([]float64(nil), ref.Actual...),
		Predicted:  make([]float64, n),
	}

	row := make([]float64, len(candidates))
	for i := 0; i < n; i++ {
		ts := ref.Timestamps[i]
		for c, cand := range candidates {
			j := indexOfTime(cand.Holdout.Timestamps, ts)
			if j < 0 {
				return Candidate{}, fmt.Errorf("%w: %s has no holdout prediction for %s",
					ErrAlignment, cand.Name, ts.Format("2006-01"))
			}
			row[c] = cand.Holdout.Predicted[j]
		}
		table.Predicted[i] = stat.Mean(row, nil)
	}

	score, err := metrics.Score(metric, table.Predicted, table.Actual)
	if err != nil {
		return Candidate{}, fmt.Errorf("scoring ensemble: %w", err)
	}

	return Candidate{Name: forecast.Ensemble, Score: score, Holdout: table}, nil
}

// mergePredictions is the predict-time ensemble pass: per-model forecast
// series are inner-joined on the first model's timestamps and averaged
// row-wise. Any timestamp missing from a constituent is ErrAlignment.
func mergePredictions(names []forecast.ModelName, series []*timeseries.Series) (*timeseries.Series, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no constituent predictions to merge", ErrAlignment)
	}

	ref := series[0]
	values := make([]float64, ref.Len())
	row := make([]float64, len(series))

	for i, ts := range ref.Timestamps {
		for c, s := range series {
			j := s.IndexOf(ts)
			if j < 0 {
				return nil, fmt.Errorf("%w: %s has no prediction for %s",
					ErrAlignment, names[c], ts.Format("2006-01"))
			}
			row[c] = s.Values[j]
		}
		values[i] = stat.Mean(row, nil)
	}

	return timeseries.NewWithTimestamps(append([]time.Time(nil), ref.Timestamps...), values)
}

func indexOfTime(ts []time.Time, want time.Time) int {
	for i, t := range ts {
		if t.Equal(want) {
			return i
		}
	}
	return -1
}
