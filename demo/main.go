// Package main demonstrates automatic model selection on monthly data.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/awalker88/auto-time-series/autots"
	"github.com/awalker88/auto-time-series/forecast"
	"github.com/awalker88/auto-time-series/timeseries"
)

func main() {
	series := syntheticRetail()

	fmt.Printf("Training data: %d monthly observations, %s through %s\n\n",
		series.Len(),
		series.FirstDate().Format("2006-01"),
		series.LastDate().Format("2006-01"))

	cfg := autots.Config{
		ModelNames: []forecast.ModelName{
			forecast.AutoARIMA,
			forecast.ExponentialSmoothing,
			forecast.TBATS,
			forecast.Ensemble,
		},
		SeasonalPeriod: 12,
		Verbose:        true,
	}

	at, err := autots.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := at.Fit(series, nil); err != nil {
		fmt.Fprintf(os.Stderr, "fit failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Candidate ranking (MASE on 4-month holdout, lower is better):")
	for i, c := range at.Candidates() {
		marker := "  "
		if i == 0 {
			marker = "* "
		}
		fmt.Printf("  %s%-22s %.4f\n", marker, c.Name, c.Score)
	}
	fmt.Println()

	// Forecast the year after the training window
	start := timeseries.AddMonths(series.LastDate(), 1)
	end := timeseries.AddMonths(start, 11)

	fc, err := at.Predict(start, end, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "predict failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("12-month forecast from %s (%s):\n", at.SelectedModel(), start.Format("2006-01"))
	for i, ts := range fc.Timestamps {
		fmt.Printf("  %s  %10.2f\n", ts.Format("2006-01"), fc.Values[i])
	}

	// A range reaching back into the training window mixes in-sample and
	// out-of-sample predictions
	back := timeseries.AddMonths(series.LastDate(), -3)
	ahead := timeseries.AddMonths(series.LastDate(), 3)
	mixed, err := at.Predict(back, ahead, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "predict failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBackcast/forecast across the training boundary (%d rows):\n", mixed.Len())
	for i, ts := range mixed.Timestamps {
		fmt.Printf("  %s  %10.2f\n", ts.Format("2006-01"), mixed.Values[i])
	}

	// Round-trip through CSV to show file-based workflows
	path := filepath.Join(os.TempDir(), "retail_demo.csv")
	if err := timeseries.SaveCSV(series, path); err != nil {
		fmt.Fprintf(os.Stderr, "csv save failed: %v\n", err)
		os.Exit(1)
	}
	reloaded, _, err := timeseries.LoadCSV(path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "csv load failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved and reloaded %d observations via %s\n", reloaded.Len(), path)
}

// syntheticRetail builds five years of monthly data with trend, yearly
// seasonality and a deterministic wobble standing in for noise.
func syntheticRetail() *timeseries.Series {
	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := 60

	values := make([]float64, n)
	for t := 0; t < n; t++ {
		trend := 500 + 4.5*float64(t)
		season := 60 * math.Sin(2*math.Pi*float64(t)/12)
		wobble := 8 * math.Sin(float64(t)*1.7)
		values[t] = trend + season + wobble
	}
	return timeseries.NewMonthly(start, values)
}
