// Package timeseries provides the date-indexed series type shared by all
// forecasting code in this module, together with monthly frequency
// arithmetic, exogenous regressor sets, and CSV ingestion.
//
// # Series
//
// A Series pairs a datetime index with float64 values:
//
//	series := timeseries.NewMonthly(start, values)
//	series.Mean()
//	diffed := series.Diff()
//
// The orchestrator assumes a regular monthly index with month-start
// timestamps. Model-level code (ARIMA fitting, smoothing) only requires
// matching index/value lengths.
//
// # Monthly arithmetic
//
// Date-range resolution works in whole calendar months:
//
//	n := timeseries.MonthsBetween(last, end)
//	index := timeseries.MonthRange(start, end)
//
// # Exogenous regressors
//
// An ExogenousSet carries named regressor columns aligned to a series:
//
//	exog := timeseries.NewExogenousSet().
//	    Add("promo", promoValues).
//	    Add("holidays", holidayValues)
//
// # CSV
//
// LoadCSV reads a monthly frame with a date column, a value column, and
// optional exogenous columns:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "sales"
//	opts.ExogenousColumns = []string{"promo"}
//	series, exog, err := timeseries.LoadCSV("sales.csv", opts)
package timeseries
