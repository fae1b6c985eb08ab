package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/awalker88/auto-time-series/timeseries"
)

// olsFit regresses y on the exogenous columns plus an intercept by least
// squares. Returns the coefficient vector [intercept, b1..bk] and the
// fitted regression effect for every training row.
func olsFit(exog *timeseries.ExogenousSet, y []float64) (beta, effect []float64, err error) {
	n := len(y)
	k := exog.NumColumns()

	x := designMatrix(exog, n)

	var sol mat.Dense
	if err := sol.Solve(x, mat.NewVecDense(n, y)); err != nil {
		return nil, nil, fmt.Errorf("exogenous regression failed: %w", err)
	}

	beta = make([]float64, k+1)
	for i := range beta {
		beta[i] = sol.At(i, 0)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, mat.NewVecDense(len(beta), beta))

	effect = make([]float64, n)
	copy(effect, fitted.RawVector().Data)
	return beta, effect, nil
}

// regressionEffect applies a fitted coefficient vector to new exogenous
// rows, producing the regression contribution per row.
func regressionEffect(exog *timeseries.ExogenousSet, beta []float64) ([]float64, error) {
	n := exog.Len()
	if exog.NumColumns() != len(beta)-1 {
		return nil, fmt.Errorf("exogenous set has %d columns, model was fitted with %d",
			exog.NumColumns(), len(beta)-1)
	}

	x := designMatrix(exog, n)

	var out mat.VecDense
	out.MulVec(x, mat.NewVecDense(len(beta), beta))

	effect := make([]float64, n)
	copy(effect, out.RawVector().Data)
	return effect, nil
}

// designMatrix builds the [1 | exog columns] matrix, columns in the
// declaration order of the exogenous set.
func designMatrix(exog *timeseries.ExogenousSet, n int) *mat.Dense {
	k := exog.NumColumns()
	x := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, name := range exog.Names {
			x.Set(i, j+1, exog.Columns[name][i])
		}
	}
	return x
}
