// Package linreg implements linear regression by batch gradient descent
// and by stochastic gradient descent.
package linreg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when X, y and θ do not agree in shape.
var ErrDimensionMismatch = errors.New("linreg: dimension mismatch")

// Step is the state recorded after one gradient-descent update.
type Step struct {
	Iteration int
	Cost      float64
	Theta     *mat.VecDense
}

// Result holds the outcome of Fit.
type Result struct {
	Theta   *mat.VecDense // Final parameters
	History []Step        // One entry per iteration
}

// Costs returns the cost history.
func (r *Result) Costs() []float64 {
	costs := make([]float64, len(r.History))
	for i, s := range r.History {
		costs[i] = s.Cost
	}
	return costs
}

// Thetas returns the parameter history, one row per iteration.
func (r *Result) Thetas() [][]float64 {
	thetas := make([][]float64, len(r.History))
	for i, s := range r.History {
		thetas[i] = mat.Col(nil, 0, s.Theta)
	}
	return thetas
}

// Predict returns X·θ.
func Predict(X mat.Matrix, theta mat.Vector) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if cols != theta.Len() {
		return nil, fmt.Errorf("%w: X is %dx%d, theta has %d rows", ErrDimensionMismatch, rows, cols, theta.Len())
	}
	p := mat.NewVecDense(rows, nil)
	p.MulVec(X, theta)
	return p, nil
}

// Cost returns the mean squared error scaled by 1/2m.
func Cost(X mat.Matrix, y, theta mat.Vector) (float64, error) {
	r, err := residuals(X, y, theta)
	if err != nil {
		return 0, err
	}
	return mat.Dot(r, r) / float64(2*r.Len()), nil
}

// Gradient returns (1/m)·Xᵀ(X·θ - y).
func Gradient(X mat.Matrix, y, theta mat.Vector) (*mat.VecDense, error) {
	r, err := residuals(X, y, theta)
	if err != nil {
		return nil, err
	}
	g := mat.NewVecDense(theta.Len(), nil)
	g.MulVec(X.T(), r)
	g.ScaleVec(1/float64(r.Len()), g)
	return g, nil
}

// Fit runs batch gradient descent from thetaInit for the given number of
// iterations. The learning rate is not validated: a rate that is too large
// diverges and the non-finite values end up in the history as they are.
func Fit(X mat.Matrix, y, thetaInit mat.Vector, learningRate float64, iterations int) (*Result, error) {
	if err := checkShapes(X, y, thetaInit); err != nil {
		return nil, err
	}

	theta := mat.VecDenseCopyOf(thetaInit)
	history := make([]Step, 0, max(iterations, 0))

	for i := 0; i < iterations; i++ {
		grad, err := Gradient(X, y, theta)
		if err != nil {
			return nil, err
		}
		theta.AddScaledVec(theta, -learningRate, grad)

		cost, err := Cost(X, y, theta)
		if err != nil {
			return nil, err
		}
		history = append(history, Step{
			Iteration: i,
			Cost:      cost,
			Theta:     mat.VecDenseCopyOf(theta),
		})
	}

	return &Result{Theta: theta, History: history}, nil
}

// residuals returns X·θ - y.
func residuals(X mat.Matrix, y, theta mat.Vector) (*mat.VecDense, error) {
	if err := checkShapes(X, y, theta); err != nil {
		return nil, err
	}
	r, err := Predict(X, theta)
	if err != nil {
		return nil, err
	}
	r.SubVec(r, y)
	return r, nil
}

func checkShapes(X mat.Matrix, y, theta mat.Vector) error {
	rows, cols := X.Dims()
	if rows != y.Len() {
		return fmt.Errorf("%w: X has %d rows, y has %d", ErrDimensionMismatch, rows, y.Len())
	}
	if cols != theta.Len() {
		return fmt.Errorf("%w: X is %dx%d, theta has %d rows", ErrDimensionMismatch, rows, cols, theta.Len())
	}
	return nil
}
