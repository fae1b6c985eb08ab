package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/awalker88/auto-time-series/stats"
	"github.com/awalker88/auto-time-series/timeseries"
)

// expSmoothForecaster implements Holt's linear trend method, extended to
// additive Holt-Winters when a seasonal period is configured and at least
// two full seasons of data are available. Smoothing parameters are chosen
// by grid search over the one-step-ahead squared errors.
type expSmoothForecaster struct {
	period int
}

// NewExponentialSmoothing returns an exponential_smoothing forecaster.
// A positive period enables the additive seasonal component.
func NewExponentialSmoothing(period int) Forecaster {
	return &expSmoothForecaster{period: period}
}

func (f *expSmoothForecaster) Name() ModelName { return ExponentialSmoothing }

func (f *expSmoothForecaster) Fit(series *timeseries.Series, _ *timeseries.ExogenousSet) (FittedModel, error) {
	n := series.Len()
	if n < 4 {
		return nil, fmt.Errorf("exponential_smoothing: need at least 4 observations, got %d", n)
	}

	m := 0
	if f.period > 1 && n >= 2*f.period {
		m = f.period
	}

	grid := []float64{0.05, 0.15, 0.3, 0.5, 0.7, 0.9}

	best := smoothState{}
	bestSSE := math.Inf(1)
	for _, alpha := range grid {
		for _, beta := range grid {
			if m == 0 {
				st, sse := runSmoothing(series.Values, alpha, beta, 0, 0, nil)
				if sse < bestSSE {
					bestSSE = sse
					best = st
				}
				continue
			}
			for _, gamma := range grid {
				st, sse := runSmoothing(series.Values, alpha, beta, gamma, m, initialSeasonals(series, m))
				if sse < bestSSE {
					bestSSE = sse
					best = st
				}
			}
		}
	}

	if math.IsInf(bestSSE, 1) {
		return nil, fmt.Errorf("exponential_smoothing: smoothing search failed on %d observations", n)
	}

	return &expSmoothModel{train: series, state: best}, nil
}

// smoothState is the terminal state of a smoothing pass plus the fitted
// one-step-ahead predictions for every training index.
type smoothState struct {
	level     float64
	trend     float64
	seasonals []float64 // rotated so index 0 forecasts the first post-sample month
	period    int
	fitted    []float64
}

// initialSeasonals estimates the additive seasonal offsets from a
// classical decomposition, falling back to per-season mean deviations.
func initialSeasonals(series *timeseries.Series, m int) []float64 {
	out := make([]float64, m)

	decomp := stats.Decompose(series, m, "additive")
	if decomp != nil {
		filled := true
		for i := 0; i < m && i < decomp.Seasonal.Len(); i++ {
			v := decomp.Seasonal.Values[i]
			if math.IsNaN(v) {
				filled = false
				break
			}
			out[i] = v
		}
		if filled {
			return out
		}
	}

	overall := series.Mean()
	counts := make([]int, m)
	for i, v := range series.Values {
		out[i%m] += v - overall
		counts[i%m]++
	}
	for i := range out {
		if counts[i] > 0 {
			out[i] /= float64(counts[i])
		}
	}
	return out
}

// runSmoothing performs one Holt or Holt-Winters pass and returns the
// terminal state and the sum of squared one-step errors. seasonals may be
// nil when m == 0.
func runSmoothing(y []float64, alpha, beta, gamma float64, m int, seasonals []float64) (smoothState, float64) {
	n := len(y)
	level := y[0]
	trend := y[1] - y[0]

	s := make([]float64, m)
	copy(s, seasonals)

	fitted := make([]float64, n)
	sse := 0.0
	for t := 0; t < n; t++ {
		var seasonal float64
		if m > 0 {
			seasonal = s[t%m]
		}

		pred := level + trend + seasonal
		if t == 0 {
			// No prior state to forecast the first point from
			pred = y[0]
		}
		fitted[t] = pred
		err := y[t] - pred
		sse += err * err

		prevLevel := level
		level = alpha*(y[t]-seasonal) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		if m > 0 {
			s[t%m] = gamma*(y[t]-level) + (1-gamma)*s[t%m]
		}
	}

	// Rotate seasonals so index h-1 serves forecast horizon h
	rotated := make([]float64, m)
	for h := 0; h < m; h++ {
		rotated[h] = s[(n+h)%m]
	}

	return smoothState{
		level:     level,
		trend:     trend,
		seasonals: rotated,
		period:    m,
		fitted:    fitted,
	}, sse
}

type expSmoothModel struct {
	train *timeseries.Series
	state smoothState
}

func (m *expSmoothModel) Name() ModelName { return ExponentialSmoothing }

func (m *expSmoothModel) PredictInSample(start, end time.Time) (*timeseries.Series, error) {
	return inSampleWindow(m.train, m.state.fitted, start, end)
}

func (m *expSmoothModel) PredictOutOfSample(periods int, _ *timeseries.ExogenousSet) (*timeseries.Series, error) {
	if periods < 1 {
		return nil, fmt.Errorf("exponential_smoothing: periods must be positive, got %d", periods)
	}

	values := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		v := m.state.level + float64(h)*m.state.trend
		if m.state.period > 0 {
			v += m.state.seasonals[(h-1)%m.state.period]
		}
		values[h-1] = v
	}
	return horizonSeries(m.train, values), nil
}
