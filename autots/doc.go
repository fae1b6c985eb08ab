// Package autots orchestrates automatic model selection for monthly time
// series. It fits every configured candidate model on the full series,
// scores each on a trailing holdout window with MASE, ranks them and
// serves forecasts from the winner.
//
// Example:
//
//	at, err := autots.New(autots.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := at.Fit(series, nil); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("selected:", at.SelectedModel())
//
//	start := timeseries.AddMonths(series.LastDate(), 1)
//	fc, err := at.Predict(start, timeseries.AddMonths(start, 5), nil)
//
// Forecast ranges may reach back into the training window; such months are
// served from the winner's one-step-ahead in-sample predictions, and a
// range spanning the training boundary stitches the two prediction modes
// together.
package autots
