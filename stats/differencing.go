package stats

import (
	"math"

	"github.com/awalker88/auto-time-series/timeseries"
)

// NDiffs determines the number of first differences required for stationarity.
// Uses KPSS test by default. Returns 0, 1, or 2.
// maxD is the maximum number of differences to consider (default 2).
// testType can be "kpss" (default) or "adf".
func NDiffs(series *timeseries.Series, maxD int, testType string) int {
	if maxD <= 0 {
		maxD = 2
	}
	if testType == "" {
		testType = "kpss"
	}

	current := series
	for d := 0; d < maxD; d++ {
		isStationary := false

		if testType == "adf" {
			result := ADF(current, 0)
			if result != nil && result.IsStationary {
				isStationary = true
			}
		} else {
			// KPSS test (default)
			result := KPSS(current, "c", 0)
			if result != nil && result.IsStationary {
				isStationary = true
			}
		}

		if isStationary {
			return d
		}

		// Apply differencing
		current = current.Diff()
		if current.Len() < 10 {
			return d
		}
	}

	return maxD
}

// NSDiffs determines the number of seasonal differences required.
// Uses seasonal strength measure: if F_S >= 0.64, one seasonal difference is suggested.
// period is the seasonal period (e.g., 12 for monthly data with yearly seasonality).
func NSDiffs(series *timeseries.Series, period int, maxD int) int {
	return NSDiffsWithTest(series, period, maxD, "strength")
}

// NSDiffsWithTest is NSDiffs with an explicit seasonal test. test can be
// "strength" (seasonal strength F_S, the default) or "hetero" (seasonal
// heterogeneity via the between-season variance share). The "hetero" test
// makes fewer assumptions about the decomposition and is useful as a
// fallback when the strength test misbehaves on short or noisy series.
func NSDiffsWithTest(series *timeseries.Series, period int, maxD int, test string) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || series.Len() < 2*period {
		return 0
	}
	if test == "" {
		test = "strength"
	}

	current := series
	for d := 0; d < maxD; d++ {
		needsDiff := false
		if test == "hetero" {
			needsDiff = seasonalHeterogeneity(current, period) >= 0.5
		} else {
			needsDiff = seasonalStrength(current, period) >= 0.64
		}

		if !needsDiff {
			return d
		}

		// Apply seasonal differencing
		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d
		}
	}

	return maxD
}

// seasonalStrength calculates the strength of seasonality (F_S).
// F_S = max(0, 1 - Var(R) / Var(S+R))
// where S is seasonal component and R is residual.
func seasonalStrength(series *timeseries.Series, period int) float64 {
	if series.Len() < 2*period {
		return 0
	}

	// Simple seasonal decomposition to get seasonal and residual
	decomp := Decompose(series, period, "additive")
	if decomp == nil {
		return 0
	}

	// Calculate variance of residuals
	varR := variance(decomp.Residual.Values)

	// Calculate variance of seasonal + residual
	seasonalPlusResid := make([]float64, len(decomp.Seasonal.Values))
	for i := range seasonalPlusResid {
		if !math.IsNaN(decomp.Seasonal.Values[i]) && !math.IsNaN(decomp.Residual.Values[i]) {
			seasonalPlusResid[i] = decomp.Seasonal.Values[i] + decomp.Residual.Values[i]
		}
	}
	varSR := variance(seasonalPlusResid)

	if varSR == 0 {
		return 0
	}

	strength := 1 - varR/varSR
	if strength < 0 {
		strength = 0
	}

	return strength
}

// seasonalHeterogeneity measures how much of the total variance is explained
// by the seasonal position, as the between-season share of the total sum of
// squares (eta squared). A value near 1 means strongly seasonal levels.
func seasonalHeterogeneity(series *timeseries.Series, period int) float64 {
	n := series.Len()
	if n < 2*period {
		return 0
	}

	grandMean := series.Mean()

	// Group observations by position within the seasonal cycle
	seasonSums := make([]float64, period)
	seasonCounts := make([]int, period)
	for i, v := range series.Values {
		s := i % period
		seasonSums[s] += v
		seasonCounts[s]++
	}

	ssBetween := 0.0
	for s := 0; s < period; s++ {
		if seasonCounts[s] == 0 {
			continue
		}
		mean := seasonSums[s] / float64(seasonCounts[s])
		dev := mean - grandMean
		ssBetween += float64(seasonCounts[s]) * dev * dev
	}

	ssTotal := 0.0
	for _, v := range series.Values {
		dev := v - grandMean
		ssTotal += dev * dev
	}

	if ssTotal == 0 {
		return 0
	}
	return ssBetween / ssTotal
}

// variance calculates the variance of a slice, ignoring NaN values.
func variance(data []float64) float64 {
	// Filter out NaN values
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	n := len(valid)
	if n < 2 {
		return 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range valid {
		sum += v
	}
	mean := sum / float64(n)

	// Calculate variance
	sumSq := 0.0
	for _, v := range valid {
		diff := v - mean
		sumSq += diff * diff
	}

	return sumSq / float64(n-1)
}

// AICc calculates the corrected Akaike Information Criterion.
// AICc = AIC + 2(k)(k+1)/(n-k-1) where k is number of parameters.
// This corrects for small sample sizes.
func AICc(aic float64, nObs int, nParams int) float64 {
	k := float64(nParams)
	n := float64(nObs)

	if n-k-1 <= 0 {
		return math.Inf(1)
	}

	correction := 2 * k * (k + 1) / (n - k - 1)
	return aic + correction
}

// InformationCriteria calculates AIC, AICc, and BIC given model parameters.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	LogLik float64
}

// CalculateIC calculates all information criteria.
// logLik is the log-likelihood, nObs is the number of observations,
// nParams is the number of estimated parameters.
func CalculateIC(logLik float64, nObs int, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	var aicc float64
	if n-k-1 > 0 {
		aicc = aic + 2*k*(k+1)/(n-k-1)
	} else {
		aicc = math.Inf(1)
	}

	return &InformationCriteria{
		AIC:    aic,
		AICc:   aicc,
		BIC:    bic,
		LogLik: logLik,
	}
}
