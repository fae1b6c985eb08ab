// Package forecast defines the capability contract shared by all
// candidate models and provides the three adapters behind it: auto_arima,
// exponential_smoothing and tbats.
//
// A Forecaster carries hyperparameters only; Fit returns an immutable
// FittedModel that can answer in-sample (one-step-ahead over the training
// index) and out-of-sample (monthly horizon past the training end)
// prediction requests. The ensemble model name exists in the shared
// vocabulary but has no adapter here; it is assembled by the orchestrator
// from the other fitted candidates.
//
// Example:
//
//	f := forecast.NewAutoARIMA(12)
//	model, err := f.Fit(series, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	future, err := model.PredictOutOfSample(6, nil)
package forecast
