// Package autotimeseries provides automatic forecasting for monthly time
// series in pure Go.
//
// The autots package is the entry point: it fits a set of candidate
// models (auto_arima, exponential_smoothing, tbats and an averaging
// ensemble), scores them on a trailing holdout window with MASE and
// serves forecasts from the winner. The supporting packages can also be
// used on their own:
//
//   - timeseries: monthly series, exogenous regressor sets, CSV I/O
//   - stats: stationarity tests, ACF/PACF, decomposition, differencing
//   - arima, sarima: (S)ARIMA estimation by conditional sum of squares
//   - autoarima: stepwise (S)ARIMA order search
//   - forecast: the adapter contract shared by all candidate models
//   - metrics: forecast error metrics
//
// See the demo directory for a complete example.
package autotimeseries
