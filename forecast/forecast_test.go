package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/awalker88/auto-time-series/timeseries"
)

func monthlySeries(n int, f func(t int) float64) *timeseries.Series {
	start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, n)
	for t := range values {
		values[t] = f(t)
	}
	return timeseries.NewMonthly(start, values)
}

func TestCanonicalOrder(t *testing.T) {
	order := CanonicalOrder()
	if len(order) != 4 {
		t.Fatalf("Expected 4 model names, got %d", len(order))
	}
	if order[len(order)-1] != Ensemble {
		t.Error("Ensemble must be last in the canonical order")
	}
	for _, name := range order {
		if !Known(name) {
			t.Errorf("Known(%s) = false", name)
		}
	}
	if Known("prophet") {
		t.Error("Known(prophet) should be false")
	}
}

func TestNewFactory(t *testing.T) {
	for _, name := range []ModelName{AutoARIMA, ExponentialSmoothing, TBATS} {
		f, err := New(name, 12)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("New(%s).Name() = %s", name, f.Name())
		}
	}

	if _, err := New(Ensemble, 12); err == nil {
		t.Error("New(ensemble) should fail; the ensemble has no standalone forecaster")
	}
	if _, err := New("prophet", 12); err == nil {
		t.Error("New with unknown name should fail")
	}
}

func TestExponentialSmoothingTrend(t *testing.T) {
	series := monthlySeries(48, func(t int) float64 { return 100 + 2*float64(t) })

	model, err := NewExponentialSmoothing(0).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := model.PredictOutOfSample(6, nil)
	if err != nil {
		t.Fatalf("PredictOutOfSample failed: %v", err)
	}
	if fc.Len() != 6 {
		t.Fatalf("Expected 6 forecasts, got %d", fc.Len())
	}

	// A clean linear trend should be continued closely
	for h, v := range fc.Values {
		want := 100 + 2*float64(48+h)
		if math.Abs(v-want) > 5 {
			t.Errorf("Forecast h=%d: got %.2f, want about %.2f", h+1, v, want)
		}
	}

	if !fc.FirstDate().Equal(timeseries.AddMonths(series.LastDate(), 1)) {
		t.Errorf("Forecast should start the month after training ends, got %v", fc.FirstDate())
	}
}

func TestExponentialSmoothingSeasonal(t *testing.T) {
	season := []float64{10, -4, 6, -12}
	series := monthlySeries(40, func(t int) float64 {
		return 50 + 0.5*float64(t) + season[t%4]
	})

	model, err := NewExponentialSmoothing(4).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := model.PredictOutOfSample(4, nil)
	if err != nil {
		t.Fatalf("PredictOutOfSample failed: %v", err)
	}

	for h, v := range fc.Values {
		want := 50 + 0.5*float64(40+h) + season[(40+h)%4]
		t.Logf("h=%d forecast=%.2f want=%.2f", h+1, v, want)
		if math.Abs(v-want) > 6 {
			t.Errorf("Forecast h=%d: got %.2f, want about %.2f", h+1, v, want)
		}
	}
}

func TestExponentialSmoothingInSampleWindow(t *testing.T) {
	series := monthlySeries(24, func(t int) float64 { return 10 + float64(t) })

	model, err := NewExponentialSmoothing(0).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	start := series.Timestamps[20]
	end := series.Timestamps[23]
	preds, err := model.PredictInSample(start, end)
	if err != nil {
		t.Fatalf("PredictInSample failed: %v", err)
	}
	if preds.Len() != 4 {
		t.Fatalf("Expected 4 predictions, got %d", preds.Len())
	}
	if !preds.FirstDate().Equal(start) || !preds.LastDate().Equal(end) {
		t.Errorf("Prediction window [%v, %v] does not match request", preds.FirstDate(), preds.LastDate())
	}

	// Outside the training index
	if _, err := model.PredictInSample(start, timeseries.AddMonths(end, 1)); err == nil {
		t.Error("Expected error for window past the training end")
	}
}

func TestTBATSSeasonalFit(t *testing.T) {
	series := monthlySeries(60, func(t int) float64 {
		return 80 + 0.3*float64(t) + 15*math.Sin(2*math.Pi*float64(t)/12)
	})

	model, err := NewTBATS(12).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := model.PredictOutOfSample(12, nil)
	if err != nil {
		t.Fatalf("PredictOutOfSample failed: %v", err)
	}

	for h, v := range fc.Values {
		tt := 60 + h
		want := 80 + 0.3*float64(tt) + 15*math.Sin(2*math.Pi*float64(tt)/12)
		if math.Abs(v-want) > 2 {
			t.Errorf("Forecast h=%d: got %.2f, want about %.2f", h+1, v, want)
		}
	}
}

func TestTBATSNonSimpleMode(t *testing.T) {
	series := monthlySeries(60, func(t int) float64 {
		return 100 + 2*float64(t) + 10*math.Sin(2*math.Pi*float64(t)/12)
	})

	model, err := NewTBATSWithOptions(12, false).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := model.PredictOutOfSample(3, nil)
	if err != nil {
		t.Fatalf("PredictOutOfSample failed: %v", err)
	}
	if fc.Len() != 3 {
		t.Fatalf("Expected 3 forecasts, got %d", fc.Len())
	}
	for h, v := range fc.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("Forecast h=%d is not finite: %f", h+1, v)
		}
	}
}

func TestAutoARIMAAdapter(t *testing.T) {
	series := monthlySeries(60, func(t int) float64 {
		return 200 + 1.5*float64(t) + 5*math.Sin(float64(t)/3)
	})

	model, err := NewAutoARIMA(0).Fit(series, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Name() != AutoARIMA {
		t.Errorf("Name = %s, want auto_arima", model.Name())
	}

	// Holdout-style in-sample window over the last 4 training months
	start := series.Timestamps[56]
	end := series.Timestamps[59]
	preds, err := model.PredictInSample(start, end)
	if err != nil {
		t.Fatalf("PredictInSample failed: %v", err)
	}
	if preds.Len() != 4 {
		t.Fatalf("Expected 4 in-sample predictions, got %d", preds.Len())
	}
	for i, v := range preds.Values {
		actual := series.Values[56+i]
		if math.Abs(v-actual) > 0.25*math.Abs(actual) {
			t.Errorf("In-sample prediction %d far from actual: %.2f vs %.2f", i, v, actual)
		}
	}

	fc, err := model.PredictOutOfSample(6, nil)
	if err != nil {
		t.Fatalf("PredictOutOfSample failed: %v", err)
	}
	if fc.Len() != 6 {
		t.Fatalf("Expected 6 forecasts, got %d", fc.Len())
	}
	if !fc.FirstDate().Equal(timeseries.AddMonths(series.LastDate(), 1)) {
		t.Errorf("Forecast should start after training end, got %v", fc.FirstDate())
	}
}

func TestAutoARIMAExogenous(t *testing.T) {
	n := 48
	temp := make([]float64, n)
	for i := range temp {
		temp[i] = 20 + 10*math.Sin(2*math.Pi*float64(i)/12)
	}
	series := monthlySeries(n, func(t int) float64 {
		return 100 + 3*temp[t] + 0.5*float64(t)
	})
	exog := timeseries.NewExogenousSet().Add("temp", temp)

	model, err := NewAutoARIMA(0).Fit(series, exog)
	if err != nil {
		t.Fatalf("Fit with exogenous failed: %v", err)
	}

	// Out-of-sample without future regressors must fail
	if _, err := model.PredictOutOfSample(3, nil); err == nil {
		t.Error("Expected error when future exogenous rows are missing")
	}

	future := timeseries.NewExogenousSet().Add("temp", []float64{25, 28, 30})
	fc, err := model.PredictOutOfSample(3, future)
	if err != nil {
		t.Fatalf("PredictOutOfSample with exogenous failed: %v", err)
	}
	if fc.Len() != 3 {
		t.Fatalf("Expected 3 forecasts, got %d", fc.Len())
	}

	// Missing the fitted column is an error even when other columns exist
	wrong := timeseries.NewExogenousSet().Add("promo", []float64{1, 0, 1})
	if _, err := model.PredictOutOfSample(3, wrong); err == nil {
		t.Error("Expected error when the fitted column is absent")
	}
}

func TestOLSRecoversCoefficients(t *testing.T) {
	n := 30
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = float64(i)
		x2[i] = math.Sin(float64(i))
		y[i] = 5 + 2*x1[i] - 3*x2[i]
	}
	exog := timeseries.NewExogenousSet().Add("x1", x1).Add("x2", x2)

	beta, effect, err := olsFit(exog, y)
	if err != nil {
		t.Fatalf("olsFit failed: %v", err)
	}

	want := []float64{5, 2, -3}
	for i, w := range want {
		if math.Abs(beta[i]-w) > 1e-6 {
			t.Errorf("beta[%d] = %f, want %f", i, beta[i], w)
		}
	}
	for i := range y {
		if math.Abs(effect[i]-y[i]) > 1e-6 {
			t.Errorf("Noise-free fit should reproduce y at %d: %f vs %f", i, effect[i], y[i])
		}
	}
}
