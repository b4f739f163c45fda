package linreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/0x0redd/linreg/dataset"
)

func TestSGDRegression(t *testing.T) {
	// y = 5 + 3x with a little noise
	data, err := dataset.MakeRegression(dataset.RegressionConfig{
		Samples:  100,
		Features: 1,
		Noise:    0.1,
		Seed:     7,
	})
	require.NoError(t, err)

	y := mat.NewVecDense(100, nil)
	for i := 0; i < 100; i++ {
		x := data.X.At(i, 0)
		noise := data.Y.AtVec(i) - data.Coef[0]*x
		y.SetVec(i, 5+3*x+noise)
	}

	cfg := NewDefaultSGDConfig()
	cfg.Seed = 0

	model := NewSGDRegressor(cfg)
	require.NoError(t, model.Fit(data.X, y))

	assert.InDelta(t, 3.0, model.Weights[0], 0.15)
	assert.InDelta(t, 5.0, model.Intercept, 0.15)
	assert.True(t, model.Converged)
	assert.Equal(t, model.NIter, len(model.History))

	score, err := model.Score(data.X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.95)

	mse, err := model.MSE(data.X, y)
	require.NoError(t, err)
	assert.Less(t, mse, 0.1)

	mae, err := model.MAE(data.X, y)
	require.NoError(t, err)
	assert.Less(t, mae, 0.3)
}

func TestSGDTooFewIterations(t *testing.T) {
	data, err := dataset.MakeRegression(dataset.RegressionConfig{
		Samples:  100,
		Features: 1,
		Noise:    10,
		Seed:     0,
	})
	require.NoError(t, err)

	cfg := NewDefaultSGDConfig()
	cfg.MaxIter = 5
	cfg.Eta0 = 1e-5

	model := NewSGDRegressor(cfg)
	require.NoError(t, model.Fit(data.X, data.Y))

	assert.False(t, model.Converged)
	assert.Equal(t, 5, model.NIter)
	assert.Len(t, model.History, 5)

	score, err := model.Score(data.X, data.Y)
	require.NoError(t, err)
	assert.Less(t, score, 0.5)
}

func TestSGDDeterministic(t *testing.T) {
	data, err := dataset.MakeRegression(dataset.RegressionConfig{
		Samples:  50,
		Features: 3,
		Noise:    5,
		Seed:     11,
	})
	require.NoError(t, err)

	fit := func(seed uint64) *SGDRegressor {
		cfg := NewDefaultSGDConfig()
		cfg.Seed = seed
		cfg.MaxIter = 20
		m := NewSGDRegressor(cfg)
		require.NoError(t, m.Fit(data.X, data.Y))
		return m
	}

	a, b, c := fit(42), fit(42), fit(43)
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Intercept, b.Intercept)
	assert.NotEqual(t, a.Weights, c.Weights)
}

func TestSGDConstantSchedule(t *testing.T) {
	cfg := NewDefaultSGDConfig()
	cfg.Schedule = Constant
	cfg.Eta0 = 0.05
	cfg.MaxIter = 3
	cfg.Tol = -1

	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewVecDense(4, []float64{1, 3, 5, 7})

	model := NewSGDRegressor(cfg)
	require.NoError(t, model.Fit(X, y))

	for _, h := range model.History {
		assert.Equal(t, 0.05, h.Eta)
	}
	assert.Equal(t, 3, model.NIter)
	assert.Equal(t, "constant", Constant.String())
	assert.Equal(t, "invscaling", InvScaling.String())
}

func TestSGDErrors(t *testing.T) {
	model := NewSGDRegressor(nil)
	assert.Equal(t, *NewDefaultSGDConfig(), model.Config())

	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	_, err := model.Predict(X)
	assert.ErrorIs(t, err, ErrNotFitted)

	err = model.Fit(X, mat.NewVecDense(2, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	require.NoError(t, model.Fit(X, mat.NewVecDense(3, []float64{1, 2, 3})))
	_, err = model.Predict(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = model.Score(X, mat.NewVecDense(2, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
