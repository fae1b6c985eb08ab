package forecast

import (
	"fmt"
	"time"

	"github.com/awalker88/auto-time-series/timeseries"
)

// ModelName identifies a candidate model family.
type ModelName string

// Recognized model names. Ensemble is not a standalone forecaster; it is
// built by the orchestrator from the other fitted candidates.
const (
	AutoARIMA            ModelName = "auto_arima"
	ExponentialSmoothing ModelName = "exponential_smoothing"
	TBATS                ModelName = "tbats"
	Ensemble             ModelName = "ensemble"
)

// CanonicalOrder returns the evaluation order for candidate models.
// Ensemble always comes last because it is built from the others.
func CanonicalOrder() []ModelName {
	return []ModelName{AutoARIMA, ExponentialSmoothing, TBATS, Ensemble}
}

// Known reports whether name is one of the recognized model names.
func Known(name ModelName) bool {
	for _, n := range CanonicalOrder() {
		if n == name {
			return true
		}
	}
	return false
}

// Forecaster is an unfitted model family configured with its
// hyperparameters. Fit trains it on a series and returns an immutable
// fitted model; the Forecaster itself holds no per-series state.
type Forecaster interface {
	Name() ModelName
	Fit(series *timeseries.Series, exog *timeseries.ExogenousSet) (FittedModel, error)
}

// FittedModel produces forecasts from a single training run.
type FittedModel interface {
	Name() ModelName

	// PredictInSample returns one-step-ahead predictions for the
	// training timestamps in [start, end], both inclusive.
	PredictInSample(start, end time.Time) (*timeseries.Series, error)

	// PredictOutOfSample forecasts the given number of monthly periods
	// past the end of the training series. Models fitted with exogenous
	// regressors require a matching exogenous row per forecast period;
	// other models ignore the argument.
	PredictOutOfSample(periods int, exog *timeseries.ExogenousSet) (*timeseries.Series, error)
}

// New returns the Forecaster for name. seasonalPeriod of 0 disables
// seasonal components. Ensemble has no standalone forecaster.
func New(name ModelName, seasonalPeriod int) (Forecaster, error) {
	switch name {
	case AutoARIMA:
		return NewAutoARIMA(seasonalPeriod), nil
	case ExponentialSmoothing:
		return NewExponentialSmoothing(seasonalPeriod), nil
	case TBATS:
		return NewTBATS(seasonalPeriod), nil
	}
	return nil, fmt.Errorf("forecast: no forecaster for model %q", name)
}

// inSampleWindow slices full-length in-sample predictions (aligned with
// the training series) down to the training timestamps in [start, end].
func inSampleWindow(train *timeseries.Series, preds []float64, start, end time.Time) (*timeseries.Series, error) {
	if len(preds) != train.Len() {
		return nil, fmt.Errorf("forecast: have %d in-sample predictions for %d observations",
			len(preds), train.Len())
	}

	i := train.IndexOf(start)
	j := train.IndexOf(end)
	if i < 0 || j < 0 || i > j {
		return nil, fmt.Errorf("forecast: in-sample window [%s, %s] not in training index",
			start.Format("2006-01"), end.Format("2006-01"))
	}

	ts := make([]time.Time, 0, j-i+1)
	vals := make([]float64, 0, j-i+1)
	for k := i; k <= j; k++ {
		ts = append(ts, train.Timestamps[k])
		vals = append(vals, preds[k])
	}
	return timeseries.NewWithTimestamps(ts, vals)
}

// horizonSeries wraps out-of-sample forecast values in a monthly series
// starting the month after the training series ends.
func horizonSeries(train *timeseries.Series, values []float64) *timeseries.Series {
	return timeseries.NewMonthly(timeseries.AddMonths(train.LastDate(), 1), values)
}
