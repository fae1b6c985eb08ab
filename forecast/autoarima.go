package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/awalker88/auto-time-series/autoarima"
	"github.com/awalker88/auto-time-series/timeseries"
)

// autoARIMAForecaster wraps the autoarima search behind the Forecaster
// contract. Exogenous regressors are handled as regression with ARIMA
// errors: y is regressed on the exogenous columns, the ARIMA search runs
// on the regression residuals, and the regression effect is re-added to
// every prediction.
type autoARIMAForecaster struct {
	period int
}

// NewAutoARIMA returns an auto_arima forecaster. A positive period
// enables the seasonal search with that period.
func NewAutoARIMA(period int) Forecaster {
	return &autoARIMAForecaster{period: period}
}

func (f *autoARIMAForecaster) Name() ModelName { return AutoARIMA }

func (f *autoARIMAForecaster) Fit(series *timeseries.Series, exog *timeseries.ExogenousSet) (FittedModel, error) {
	work := series
	var (
		beta      []float64
		effect    []float64
		exogNames []string
	)

	if exog != nil && exog.NumColumns() > 0 {
		if err := exog.Validate(series.Len()); err != nil {
			return nil, fmt.Errorf("auto_arima: %w", err)
		}
		var err error
		beta, effect, err = olsFit(exog, series.Values)
		if err != nil {
			return nil, fmt.Errorf("auto_arima: %w", err)
		}
		exogNames = append(exogNames, exog.Names...)

		resid := make([]float64, series.Len())
		for i, v := range series.Values {
			resid[i] = v - effect[i]
		}
		work, err = timeseries.NewWithTimestamps(series.Timestamps, resid)
		if err != nil {
			return nil, fmt.Errorf("auto_arima: %w", err)
		}
	}

	cfg := autoarima.DefaultConfig()
	if f.period > 0 {
		cfg.Seasonal = true
		cfg.SeasonalM = f.period
	} else {
		cfg.SeasonalM = 1
	}

	result, err := autoarima.AutoARIMA(work, cfg)
	if errors.Is(err, autoarima.ErrNumericalInstability) {
		// One retry with the alternate seasonal-differencing test.
		cfg.SeasonalTest = "hetero"
		result, err = autoarima.AutoARIMA(work, cfg)
	}
	if err != nil {
		return nil, err
	}

	return &autoARIMAModel{
		train:     series,
		result:    result,
		beta:      beta,
		effect:    effect,
		exogNames: exogNames,
	}, nil
}

type autoARIMAModel struct {
	train     *timeseries.Series
	result    *autoarima.Result
	beta      []float64 // nil when fitted without exogenous regressors
	effect    []float64 // fit-time regression effect per training row
	exogNames []string
}

func (m *autoARIMAModel) Name() ModelName { return AutoARIMA }

func (m *autoARIMAModel) PredictInSample(start, end time.Time) (*timeseries.Series, error) {
	preds := m.result.InSamplePredictions()
	if preds == nil {
		return nil, errors.New("auto_arima: no in-sample predictions available")
	}

	if m.beta != nil {
		combined := make([]float64, len(preds))
		for i, v := range preds {
			combined[i] = v + m.effect[i]
		}
		preds = combined
	}

	return inSampleWindow(m.train, preds, start, end)
}

func (m *autoARIMAModel) PredictOutOfSample(periods int, exog *timeseries.ExogenousSet) (*timeseries.Series, error) {
	if periods < 1 {
		return nil, fmt.Errorf("auto_arima: periods must be positive, got %d", periods)
	}

	forecasts, err := m.result.Predict(periods)
	if err != nil {
		return nil, err
	}

	if m.beta != nil {
		if exog == nil || exog.NumColumns() == 0 {
			return nil, errors.New("auto_arima: model was fitted with exogenous regressors; future rows are required")
		}
		sel, err := exog.Select(m.exogNames)
		if err != nil {
			return nil, fmt.Errorf("auto_arima: %w", err)
		}
		if err := sel.Validate(periods); err != nil {
			return nil, fmt.Errorf("auto_arima: need %d exogenous rows: %w", periods, err)
		}
		effect, err := regressionEffect(sel, m.beta)
		if err != nil {
			return nil, fmt.Errorf("auto_arima: %w", err)
		}
		for i := range forecasts {
			forecasts[i] += effect[i]
		}
	}

	return horizonSeries(m.train, forecasts), nil
}
