package metrics

import (
	"errors"
	"math"
	"testing"
)

func TestMaseLinearSeries(t *testing.T) {
	// Linear actuals with step 1: every naive error is 2, so scale = 2.
	// Predictions off by 1 everywhere give scaled errors of 0.5.
	actual := []float64{2, 4, 6, 8, 10}
	predicted := []float64{3, 5, 7, 9, 11}

	got, err := Mase(predicted, actual)
	if err != nil {
		t.Fatalf("Mase failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Mase = %f, want 0.5", got)
	}
}

func TestMasePerfectPrediction(t *testing.T) {
	actual := []float64{1, 3, 2, 5, 4}
	got, err := Mase(actual, actual)
	if err != nil {
		t.Fatalf("Mase failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Perfect prediction should score 0, got %f", got)
	}
}

func TestMaseConstantActuals(t *testing.T) {
	// Constant actuals make the naive scale zero. The division must
	// propagate Inf/NaN rather than clamp.
	actual := []float64{5, 5, 5, 5}

	got, err := Mase([]float64{5, 5, 5, 6}, actual)
	if err != nil {
		t.Fatalf("Mase failed: %v", err)
	}
	if !math.IsInf(got, 1) && !math.IsNaN(got) {
		t.Errorf("Constant actuals should give Inf or NaN, got %f", got)
	}
}

func TestMaseWithStep(t *testing.T) {
	// Step 2 over 6 points: shifted errors are |a[i]-a[i-2]| for i=2..5.
	actual := []float64{1, 2, 5, 6, 9, 10}
	predicted := []float64{1, 2, 5, 6, 9, 10}

	got, err := MaseWithStep(predicted, actual, 2)
	if err != nil {
		t.Fatalf("MaseWithStep failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Perfect prediction should score 0, got %f", got)
	}

	// Scale = (4+4+4+4)/4 = 4; errors of 2 everywhere score 0.5
	off := []float64{3, 4, 7, 8, 11, 12}
	got, err = MaseWithStep(off, actual, 2)
	if err != nil {
		t.Fatalf("MaseWithStep failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("MaseWithStep = %f, want 0.5", got)
	}
}

func TestMaseInputValidation(t *testing.T) {
	if _, err := Mase([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("Expected error for mismatched lengths")
	}
	if _, err := Mase(nil, nil); err == nil {
		t.Error("Expected error for empty input")
	}
	if _, err := MaseWithStep([]float64{1, 2}, []float64{1, 2}, 3); err == nil {
		t.Error("Expected error for step > n")
	}
	if _, err := MaseWithStep([]float64{1, 2}, []float64{1, 2}, 0); err == nil {
		t.Error("Expected error for step < 1")
	}
}

func TestMaseStepEqualsLength(t *testing.T) {
	// With step == n no row feeds the naive scale, so the score degenerates
	// to NaN. It must come back as a value, not an error, so a single-row
	// holdout still ranks instead of failing the whole fit.
	got, err := Mase([]float64{7}, []float64{6})
	if err != nil {
		t.Fatalf("Mase on a single row failed: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("Single-row Mase = %f, want NaN", got)
	}

	got, err = MaseWithStep([]float64{1, 2, 3}, []float64{2, 3, 4}, 3)
	if err != nil {
		t.Fatalf("MaseWithStep with step == n failed: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("MaseWithStep with step == n = %f, want NaN", got)
	}
}

func TestScoreDispatch(t *testing.T) {
	actual := []float64{2, 4, 6, 8}
	predicted := []float64{2, 4, 6, 8}

	got, err := Score(MASE, predicted, actual)
	if err != nil {
		t.Fatalf("Score(MASE) failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Score(MASE) = %f, want 0", got)
	}

	for _, name := range []Name{MSE, RMSE, MAPE, SMAPE} {
		_, err := Score(name, predicted, actual)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("Score(%s) error = %v, want ErrNotImplemented", name, err)
		}
	}

	if _, err := Score("wape", predicted, actual); err == nil {
		t.Error("Expected error for unknown metric")
	}
}

func TestSupportedAndImplemented(t *testing.T) {
	for _, name := range []Name{MASE, MSE, RMSE, MAPE, SMAPE} {
		if !Supported(name) {
			t.Errorf("Supported(%s) = false", name)
		}
	}
	if Supported("wape") {
		t.Error("Supported(wape) should be false")
	}
	if !Implemented(MASE) {
		t.Error("Implemented(MASE) should be true")
	}
	if Implemented(MSE) {
		t.Error("Implemented(MSE) should be false")
	}
}
