package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Name identifies an error metric.
type Name string

// Recognized metric names. Only MASE is implemented; the others are
// declared slots that a caller may extend.
const (
	MASE  Name = "mase"
	MSE   Name = "mse"
	RMSE  Name = "rmse"
	MAPE  Name = "mape"
	SMAPE Name = "smape"
)

// ErrNotImplemented is returned by Score for metrics that are declared but
// have no implementation.
var ErrNotImplemented = errors.New("metrics: metric not implemented")

// Supported reports whether name is a recognized metric, implemented or not.
func Supported(name Name) bool {
	switch name {
	case MASE, MSE, RMSE, MAPE, SMAPE:
		return true
	}
	return false
}

// Implemented reports whether name has a working implementation.
func Implemented(name Name) bool {
	return name == MASE
}

// Score computes the named metric over aligned prediction and actual slices.
// Lower is better for every metric.
func Score(name Name, predicted, actual []float64) (float64, error) {
	switch name {
	case MASE:
		return Mase(predicted, actual)
	case MSE, RMSE, MAPE, SMAPE:
		return 0, fmt.Errorf("%w: %s", ErrNotImplemented, name)
	}
	return 0, fmt.Errorf("metrics: unknown metric %q", name)
}

// Mase computes the mean absolute scaled error with the default step of 1.
func Mase(predicted, actual []float64) (float64, error) {
	return MaseWithStep(predicted, actual, 1)
}

// MaseWithStep computes the mean absolute scaled error, normalizing by the
// average error of a naive lag-step forecast over the actuals:
//
//	scale = sum_{i>=step} |actual[i] - actual[i-step]| / (n - step)
//	mase  = mean_i |actual[i] - predicted[i]| / scale
//
// The mean runs over all n rows even though the first step rows contribute
// nothing to the scale denominator. Constant actuals give a zero scale, and
// the resulting Inf or NaN propagates to the caller unclamped. The same
// holds when step == n: no row feeds the scale, so every scaled error is
// NaN and so is the result.
func MaseWithStep(predicted, actual []float64, step int) (float64, error) {
	n := len(actual)
	if n == 0 || len(predicted) != n {
		return 0, fmt.Errorf("metrics: predicted and actual must have equal nonzero length, got %d and %d",
			len(predicted), n)
	}
	if step < 1 || step > n {
		return 0, fmt.Errorf("metrics: step %d out of range for %d rows", step, n)
	}

	shiftedSum := 0.0
	for i := step; i < n; i++ {
		shiftedSum += math.Abs(actual[i] - actual[i-step])
	}
	scale := shiftedSum / float64(n-step)

	scaled := make([]float64, n)
	for i := range scaled {
		scaled[i] = math.Abs(actual[i]-predicted[i]) / scale
	}
	return stat.Mean(scaled, nil), nil
}

