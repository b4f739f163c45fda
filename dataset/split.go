package dataset

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidSplit is returned when a split would leave a partition empty.
var ErrInvalidSplit = errors.New("dataset: invalid split")

// Split is a train/test partition of a dataset.
type Split struct {
	TrainIdx []int
	TestIdx  []int
	XTrain   *mat.Dense
	XTest    *mat.Dense
	YTrain   *mat.VecDense
	YTest    *mat.VecDense
}

// TrainTestSplit shuffles the rows with the given seed and holds out
// ceil(testSize*m) of them for testing.
func TrainTestSplit(X mat.Matrix, y mat.Vector, testSize float64, seed uint64) (*Split, error) {
	rows, _ := X.Dims()
	if rows != y.Len() {
		return nil, fmt.Errorf("%w: X has %d rows, y has %d", ErrInvalidSplit, rows, y.Len())
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("%w: test size %v outside (0, 1)", ErrInvalidSplit, testSize)
	}

	nTest := int(math.Ceil(testSize * float64(rows)))
	nTrain := rows - nTest
	if nTrain <= 0 {
		return nil, fmt.Errorf("%w: %d rows leave no training samples at test size %v", ErrInvalidSplit, rows, testSize)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(rows)
	s := &Split{
		TestIdx:  perm[:nTest],
		TrainIdx: perm[nTest:],
	}
	s.XTrain, s.YTrain = take(X, y, s.TrainIdx)
	s.XTest, s.YTest = take(X, y, s.TestIdx)
	return s, nil
}

func take(X mat.Matrix, y mat.Vector, idx []int) (*mat.Dense, *mat.VecDense) {
	_, cols := X.Dims()
	xs := mat.NewDense(len(idx), cols, nil)
	ys := mat.NewVecDense(len(idx), nil)
	for i, r := range idx {
		for j := 0; j < cols; j++ {
			xs.Set(i, j, X.At(r, j))
		}
		ys.SetVec(i, y.AtVec(r))
	}
	return xs, ys
}
