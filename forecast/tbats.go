package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/awalker88/auto-time-series/arima"
	"github.com/awalker88/auto-time-series/timeseries"
)

// tbatsForecaster models trend and trigonometric seasonality by
// regressing the series on an intercept, a linear trend and Fourier pairs
// for each seasonal period. The configured period is supplemented with
// auxiliary periods 2 and 4 to catch short cycles; this fixed set is a
// known limitation. Simple mode, the default, stops there. Non-simple
// mode adds a Box-Cox transform (when all values are positive) and
// ARMA(1,1) errors fitted on the regression residuals.
type tbatsForecaster struct {
	period int
	simple bool
}

// NewTBATS returns a tbats forecaster in simple mode.
func NewTBATS(period int) Forecaster {
	return &tbatsForecaster{period: period, simple: true}
}

// NewTBATSWithOptions returns a tbats forecaster with explicit control
// over simple mode.
func NewTBATSWithOptions(period int, simple bool) Forecaster {
	return &tbatsForecaster{period: period, simple: simple}
}

func (f *tbatsForecaster) Name() ModelName { return TBATS }

// fourierTerm is one cos/sin column pair of the design matrix.
type fourierTerm struct {
	period   int
	harmonic int
	withSin  bool
}

func (f *tbatsForecaster) Fit(series *timeseries.Series, _ *timeseries.ExogenousSet) (FittedModel, error) {
	n := series.Len()
	if n < 8 {
		return nil, fmt.Errorf("tbats: need at least 8 observations, got %d", n)
	}

	periods := f.seasonalPeriods(n)
	terms := fourierTerms(periods)

	y := series.Values
	lambda := 1.0
	boxcox := false
	if !f.simple && series.Min() > 0 {
		lambda = selectLambda(series.Values)
		boxcox = true
		y = boxCox(series.Values, lambda)
	}

	x := tbatsDesign(0, n, terms)
	var sol mat.Dense
	if err := sol.Solve(x, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("tbats: seasonal regression failed: %w", err)
	}

	k := 2 + countColumns(terms)
	beta := make([]float64, k)
	for i := range beta {
		beta[i] = sol.At(i, 0)
	}

	var fittedVec mat.VecDense
	fittedVec.MulVec(x, mat.NewVecDense(k, beta))

	fitted := make([]float64, n)
	copy(fitted, fittedVec.RawVector().Data)

	var arma *arima.Model
	if !f.simple {
		resid := make([]float64, n)
		for i := range resid {
			resid[i] = y[i] - fitted[i]
		}
		residSeries, err := timeseries.NewWithTimestamps(series.Timestamps, resid)
		if err != nil {
			return nil, fmt.Errorf("tbats: %w", err)
		}
		model := arima.New(1, 0, 1)
		if err := model.Fit(residSeries); err == nil {
			arma = model
			for i, p := range model.InSamplePredictions() {
				fitted[i] += p
			}
		}
		// An ARMA failure leaves the pure regression fit in place
	}

	if boxcox {
		fitted = invBoxCox(fitted, lambda)
	}

	return &tbatsModel{
		train:  series,
		terms:  terms,
		beta:   beta,
		fitted: fitted,
		lambda: lambda,
		boxcox: boxcox,
		arma:   arma,
	}, nil
}

// seasonalPeriods returns the deduplicated period set bounded by the
// series length, sorted ascending.
func (f *tbatsForecaster) seasonalPeriods(n int) []int {
	seen := map[int]bool{}
	var periods []int
	for _, p := range []int{f.period, 2, 4} {
		if p >= 2 && n >= 2*p && !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	sort.Ints(periods)
	return periods
}

func fourierTerms(periods []int) []fourierTerm {
	var terms []fourierTerm
	for _, p := range periods {
		maxK := p / 2
		if maxK > 3 {
			maxK = 3
		}
		for j := 1; j <= maxK; j++ {
			// The Nyquist harmonic has a degenerate sine column
			terms = append(terms, fourierTerm{period: p, harmonic: j, withSin: 2*j != p})
		}
	}
	return terms
}

func countColumns(terms []fourierTerm) int {
	c := 0
	for _, t := range terms {
		c++
		if t.withSin {
			c++
		}
	}
	return c
}

// tbatsDesign builds the design matrix for time indices [from, from+rows).
func tbatsDesign(from, rows int, terms []fourierTerm) *mat.Dense {
	k := 2 + countColumns(terms)
	x := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		t := float64(from + i)
		x.Set(i, 0, 1)
		x.Set(i, 1, t)
		col := 2
		for _, term := range terms {
			angle := 2 * math.Pi * float64(term.harmonic) * t / float64(term.period)
			x.Set(i, col, math.Cos(angle))
			col++
			if term.withSin {
				x.Set(i, col, math.Sin(angle))
				col++
			}
		}
	}
	return x
}

// selectLambda picks the Box-Cox lambda from a small grid by profile
// log-likelihood.
func selectLambda(y []float64) float64 {
	grid := []float64{0, 0.25, 0.5, 0.75, 1}
	n := float64(len(y))

	logSum := 0.0
	for _, v := range y {
		logSum += math.Log(v)
	}

	bestLambda := 1.0
	bestLL := math.Inf(-1)
	for _, lambda := range grid {
		z := boxCox(y, lambda)
		mean := 0.0
		for _, v := range z {
			mean += v
		}
		mean /= n

		sse := 0.0
		for _, v := range z {
			d := v - mean
			sse += d * d
		}
		if sse <= 0 {
			continue
		}

		ll := -n/2*math.Log(sse/n) + (lambda-1)*logSum
		if ll > bestLL {
			bestLL = ll
			bestLambda = lambda
		}
	}
	return bestLambda
}

func boxCox(y []float64, lambda float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		if lambda == 0 {
			out[i] = math.Log(v)
		} else {
			out[i] = (math.Pow(v, lambda) - 1) / lambda
		}
	}
	return out
}

func invBoxCox(z []float64, lambda float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		if lambda == 0 {
			out[i] = math.Exp(v)
		} else {
			out[i] = math.Pow(lambda*v+1, 1/lambda)
		}
	}
	return out
}

type tbatsModel struct {
	train  *timeseries.Series
	terms  []fourierTerm
	beta   []float64
	fitted []float64
	lambda float64
	boxcox bool
	arma   *arima.Model
}

func (m *tbatsModel) Name() ModelName { return TBATS }

func (m *tbatsModel) PredictInSample(start, end time.Time) (*timeseries.Series, error) {
	return inSampleWindow(m.train, m.fitted, start, end)
}

func (m *tbatsModel) PredictOutOfSample(periods int, _ *timeseries.ExogenousSet) (*timeseries.Series, error) {
	if periods < 1 {
		return nil, fmt.Errorf("tbats: periods must be positive, got %d", periods)
	}

	n := m.train.Len()
	x := tbatsDesign(n, periods, m.terms)

	var out mat.VecDense
	out.MulVec(x, mat.NewVecDense(len(m.beta), m.beta))

	values := make([]float64, periods)
	copy(values, out.RawVector().Data)

	if m.arma != nil {
		residFc, err := m.arma.Predict(periods)
		if err == nil {
			for i := range values {
				values[i] += residFc[i]
			}
		}
	}

	if m.boxcox {
		values = invBoxCox(values, m.lambda)
	}

	return horizonSeries(m.train, values), nil
}
