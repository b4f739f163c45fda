package linreg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// R2 returns the coefficient of determination of yPred against yTrue.
func R2(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return rSquared(t, p), nil
}

// MSE returns the mean squared error of yPred against yTrue.
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return meanSquaredError(t, p), nil
}

// MAE returns the mean absolute error of yPred against yTrue.
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return meanAbsoluteError(t, p), nil
}

func pair(a, b mat.Vector) ([]float64, []float64, error) {
	if a.Len() != b.Len() {
		return nil, nil, fmt.Errorf("%w: %d targets, %d predictions", ErrDimensionMismatch, a.Len(), b.Len())
	}
	return mat.Col(nil, 0, a), mat.Col(nil, 0, b), nil
}

func meanSquaredError(yTrue, yPred []float64) float64 {
	d := floats.Distance(yTrue, yPred, 2)
	return d * d / float64(len(yTrue))
}

// rSquared treats a constant target as perfectly explained.
func rSquared(yTrue, yPred []float64) float64 {
	if len(yTrue) < 2 || stat.Variance(yTrue, nil) < 1e-15 {
		return 1
	}
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

func meanAbsoluteError(yTrue, yPred []float64) float64 {
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue))
}
