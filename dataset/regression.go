// Package dataset provides the data collaborators of the regression lab:
// a seeded synthetic generator, a CSV table reader and a train/test
// splitter.
package dataset

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidConfig is returned for generator settings that cannot produce data.
var ErrInvalidConfig = errors.New("dataset: invalid config")

// RegressionConfig drives MakeRegression.
type RegressionConfig struct {
	Samples  int     // Number of rows
	Features int     // Number of columns
	Noise    float64 // Standard deviation of the gaussian noise added to y
	Bias     float64 // Constant added to y
	Seed     uint64  // Seed for every random draw
}

// Regression is a generated linear dataset.
type Regression struct {
	X    *mat.Dense
	Y    *mat.VecDense
	Coef []float64 // Ground truth coefficients
}

// MakeRegression draws X from a standard normal, coefficients from
// U(0, 100) and returns y = X·coef + bias + noise.
func MakeRegression(cfg RegressionConfig) (*Regression, error) {
	if cfg.Samples <= 0 || cfg.Features <= 0 {
		return nil, fmt.Errorf("%w: %d samples, %d features", ErrInvalidConfig, cfg.Samples, cfg.Features)
	}
	if cfg.Noise < 0 {
		return nil, fmt.Errorf("%w: negative noise %v", ErrInvalidConfig, cfg.Noise)
	}

	src := rand.NewSource(cfg.Seed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	uniform := distuv.Uniform{Min: 0, Max: 100, Src: src}

	X := mat.NewDense(cfg.Samples, cfg.Features, nil)
	for i := 0; i < cfg.Samples; i++ {
		for j := 0; j < cfg.Features; j++ {
			X.Set(i, j, normal.Rand())
		}
	}

	coef := make([]float64, cfg.Features)
	for j := range coef {
		coef[j] = uniform.Rand()
	}

	y := mat.NewVecDense(cfg.Samples, nil)
	y.MulVec(X, mat.NewVecDense(cfg.Features, coef))
	for i := 0; i < cfg.Samples; i++ {
		v := y.AtVec(i) + cfg.Bias
		if cfg.Noise > 0 {
			v += cfg.Noise * normal.Rand()
		}
		y.SetVec(i, v)
	}

	return &Regression{X: X, Y: y, Coef: coef}, nil
}

// Shift returns a copy of the dataset with c added to every target.
func (r *Regression) Shift(c float64) *Regression {
	y := mat.VecDenseCopyOf(r.Y)
	for i := 0; i < y.Len(); i++ {
		y.SetVec(i, y.AtVec(i)+c)
	}
	coef := make([]float64, len(r.Coef))
	copy(coef, r.Coef)
	return &Regression{X: mat.DenseCopyOf(r.X), Y: y, Coef: coef}
}
