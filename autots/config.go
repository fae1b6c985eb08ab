package autots

import (
	"fmt"

	"github.com/awalker88/auto-time-series/forecast"
	"github.com/awalker88/auto-time-series/metrics"
)

// Config holds the construction configuration for an AutoTS orchestrator.
type Config struct {
	// ModelNames is the set of candidate models to evaluate. Must be
	// non-empty; ensemble requires at least two other models.
	ModelNames []forecast.ModelName

	// ErrorMetric scores candidates on the holdout window. Only mase is
	// implemented; empty selects it.
	ErrorMetric metrics.Name

	// SeasonalPeriod enables seasonal model components when positive.
	// 0 means no seasonality.
	SeasonalPeriod int

	// HoldoutPeriod is the number of trailing observations scored
	// against. Defaults to 4.
	HoldoutPeriod int

	// Verbose enables progress logging to stderr.
	Verbose bool

	// MaxParallel bounds concurrent candidate fitting. Values below 1
	// mean serial fitting. Results are deterministic at any width.
	MaxParallel int
}

// DefaultConfig returns a configuration with every model enabled, MASE
// scoring and a 4-period holdout.
func DefaultConfig() Config {
	return Config{
		ModelNames:    forecast.CanonicalOrder(),
		ErrorMetric:   metrics.MASE,
		HoldoutPeriod: 4,
	}
}

// normalize fills defaults and validates, returning the effective
// configuration. All violations wrap ErrConfig.
func (c Config) normalize() (Config, error) {
	if c.ErrorMetric == "" {
		c.ErrorMetric = metrics.MASE
	}
	if c.HoldoutPeriod == 0 {
		c.HoldoutPeriod = 4
	}

	if len(c.ModelNames) == 0 {
		return c, fmt.Errorf("%w: no models requested", ErrConfig)
	}

	seen := make(map[forecast.ModelName]bool, len(c.ModelNames))
	deduped := make([]forecast.ModelName, 0, len(c.ModelNames))
	for _, name := range c.ModelNames {
		if !forecast.Known(name) {
			return c, fmt.Errorf("%w: unknown model %q", ErrConfig, name)
		}
		if !seen[name] {
			seen[name] = true
			deduped = append(deduped, name)
		}
	}
	c.ModelNames = deduped

	if seen[forecast.Ensemble] && len(deduped) < 3 {
		return c, fmt.Errorf("%w: ensemble requires at least two other models", ErrConfig)
	}

	if !metrics.Supported(c.ErrorMetric) {
		return c, fmt.Errorf("%w: unknown error metric %q", ErrConfig, c.ErrorMetric)
	}
	if !metrics.Implemented(c.ErrorMetric) {
		return c, fmt.Errorf("%w: error metric %q is not implemented", ErrConfig, c.ErrorMetric)
	}

	if c.SeasonalPeriod < 0 {
		return c, fmt.Errorf("%w: seasonal period must not be negative, got %d", ErrConfig, c.SeasonalPeriod)
	}
	if c.HoldoutPeriod < 1 {
		return c, fmt.Errorf("%w: holdout period must be positive, got %d", ErrConfig, c.HoldoutPeriod)
	}

	return c, nil
}

// evaluationOrder returns the configured models in canonical order,
// ensemble last.
func (c Config) evaluationOrder() []forecast.ModelName {
	requested := make(map[forecast.ModelName]bool, len(c.ModelNames))
	for _, name := range c.ModelNames {
		requested[name] = true
	}

	var order []forecast.ModelName
	for _, name := range forecast.CanonicalOrder() {
		if requested[name] {
			order = append(order, name)
		}
	}
	return order
}
