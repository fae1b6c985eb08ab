// Package metrics provides forecast error metrics.
//
// MASE (mean absolute scaled error) is the working metric: it normalizes
// prediction error by the average error of a naive lag-step forecast, so a
// value below 1 means the model beats the naive baseline. MSE, RMSE, MAPE
// and SMAPE are declared as names so callers can reference them, but Score
// returns ErrNotImplemented for them.
//
// Example:
//
//	score, err := metrics.Mase(predicted, actual)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("MASE: %.4f\n", score)
package metrics
