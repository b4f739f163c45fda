// Package preprocessing holds feature transformations fitted on training data.
package preprocessing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFitted is returned when the scaler is used before Fit.
	ErrNotFitted = errors.New("preprocessing: scaler is not fitted")
	// ErrDimensionMismatch is returned when X has a different number of columns than the fitted data.
	ErrDimensionMismatch = errors.New("preprocessing: dimension mismatch")
)

// StandardScaler centers features on their mean and scales them to unit
// (population) variance.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes the per-column mean and standard deviation of X.
// Constant columns get a scale of 1.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%w: cannot fit on %dx%d", ErrDimensionMismatch, rows, cols)
	}

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		m, v := stat.MeanVariance(col, nil)
		mean[j] = m

		// MeanVariance is unbiased, the scaler uses the population variance
		std := 0.0
		if rows > 1 {
			std = math.Sqrt(v * float64(rows-1) / float64(rows))
		}
		if std < 1e-12 {
			std = 1
		}
		scale[j] = std
	}

	s.Mean = mean
	s.Scale = scale
	return nil
}

// Transform returns (X - mean) / scale.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.check(X); err != nil {
		return nil, err
	}
	out := mat.DenseCopyOf(X)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, out)
	return out, nil
}

// FitTransform fits the scaler on X and transforms it.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps scaled values back to the original units.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.check(X); err != nil {
		return nil, err
	}
	out := mat.DenseCopyOf(X)
	out.Apply(func(_, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, out)
	return out, nil
}

func (s *StandardScaler) check(X mat.Matrix) error {
	if s.Mean == nil {
		return ErrNotFitted
	}
	_, cols := X.Dims()
	if cols != len(s.Mean) {
		return fmt.Errorf("%w: X has %d columns, scaler was fitted on %d", ErrDimensionMismatch, cols, len(s.Mean))
	}
	return nil
}
