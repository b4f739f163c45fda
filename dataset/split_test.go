package dataset

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func rows(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(10*i))
		y.SetVec(i, float64(100*i))
	}
	return X, y
}

func TestTrainTestSplit(t *testing.T) {
	X, y := rows(30)
	s, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)

	assert.Len(t, s.TestIdx, 6)
	assert.Len(t, s.TrainIdx, 24)

	all := append(append([]int{}, s.TrainIdx...), s.TestIdx...)
	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v)
	}

	// rows follow their indices
	for i, r := range s.TestIdx {
		assert.Equal(t, float64(r), s.XTest.At(i, 0))
		assert.Equal(t, float64(10*r), s.XTest.At(i, 1))
		assert.Equal(t, float64(100*r), s.YTest.AtVec(i))
	}
	for i, r := range s.TrainIdx {
		assert.Equal(t, float64(100*r), s.YTrain.AtVec(i))
	}
}

func TestTrainTestSplitRoundsUp(t *testing.T) {
	X, y := rows(11)
	s, err := TrainTestSplit(X, y, 0.25, 1)
	require.NoError(t, err)
	assert.Len(t, s.TestIdx, 3)
	assert.Len(t, s.TrainIdx, 8)
}

func TestTrainTestSplitSeeded(t *testing.T) {
	X, y := rows(50)
	a, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	b, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	c, err := TrainTestSplit(X, y, 0.2, 7)
	require.NoError(t, err)

	assert.Equal(t, a.TestIdx, b.TestIdx)
	assert.NotEqual(t, a.TestIdx, c.TestIdx)
}

func TestTrainTestSplitInvalid(t *testing.T) {
	X, y := rows(3)

	for _, size := range []float64{0, 1, -0.5, 1.5, 0.99} {
		_, err := TrainTestSplit(X, y, size, 0)
		assert.ErrorIs(t, err, ErrInvalidSplit, "test size %v", size)
	}

	_, err := TrainTestSplit(X, mat.NewVecDense(2, nil), 0.2, 0)
	assert.ErrorIs(t, err, ErrInvalidSplit)
}
