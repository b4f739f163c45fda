package linreg

import "gonum.org/v1/gonum/mat"

// DesignMatrix returns X with a leading column of ones for the bias term.
func DesignMatrix(X mat.Matrix) *mat.Dense {
	rows, cols := X.Dims()
	d := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		d.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			d.Set(i, j+1, X.At(i, j))
		}
	}
	return d
}
