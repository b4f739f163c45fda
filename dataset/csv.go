package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidTable is returned when a CSV file cannot be used as a regression table.
var ErrInvalidTable = errors.New("dataset: invalid table")

//go:embed salary.csv
var salaryCSV []byte

// WriteSalaryCSV writes the years-of-experience / salary dataset to path.
func WriteSalaryCSV(path string) error {
	if err := os.WriteFile(path, salaryCSV, 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}

// Table is a numeric CSV split into features and target.
type Table struct {
	Features []string // Feature column names
	Target   string   // Target column name
	X        *mat.Dense
	Y        *mat.VecDense
}

// LoadCSV reads a CSV file with a header row. Every column but the last is
// a feature, the last one is the target. All columns must be numeric.
func LoadCSV(path string) (*Table, error) {
	inst, err := base.ParseCSVToInstances(path, true)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}

	attrs := inst.AllAttributes()
	if len(attrs) < 2 {
		return nil, fmt.Errorf("%w: %s has %d columns, need at least 2", ErrInvalidTable, path, len(attrs))
	}
	_, rows := inst.Size()
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrInvalidTable, path)
	}

	specs := make([]base.AttributeSpec, len(attrs))
	names := make([]string, len(attrs))
	for i, a := range attrs {
		if _, ok := a.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("%w: column %q is not numeric", ErrInvalidTable, a.GetName())
		}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, fmt.Errorf("dataset: column %q: %w", a.GetName(), err)
		}
		specs[i] = spec
		names[i] = a.GetName()
	}

	nFeatures := len(attrs) - 1
	X := mat.NewDense(rows, nFeatures, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		for j := 0; j < nFeatures; j++ {
			X.Set(r, j, base.UnpackBytesToFloat(inst.Get(specs[j], r)))
		}
		y.SetVec(r, base.UnpackBytesToFloat(inst.Get(specs[nFeatures], r)))
	}

	return &Table{
		Features: names[:nFeatures],
		Target:   names[nFeatures],
		X:        X,
		Y:        y,
	}, nil
}

// Rows returns the number of samples.
func (t *Table) Rows() int {
	return t.Y.Len()
}

// Head returns the first n rows, features followed by the target.
func (t *Table) Head(n int) [][]float64 {
	if n > t.Rows() {
		n = t.Rows()
	}
	head := make([][]float64, n)
	for i := 0; i < n; i++ {
		head[i] = append(mat.Row(nil, i, t.X), t.Y.AtVec(i))
	}
	return head
}
