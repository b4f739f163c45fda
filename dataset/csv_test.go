package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Salary_Data.csv")
	require.NoError(t, WriteSalaryCSV(path))

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"YearsExperience"}, table.Features)
	assert.Equal(t, "Salary", table.Target)
	assert.Equal(t, 30, table.Rows())

	r, c := table.X.Dims()
	assert.Equal(t, 30, r)
	assert.Equal(t, 1, c)

	assert.InDelta(t, 1.1, table.X.At(0, 0), 1e-9)
	assert.InDelta(t, 39343.0, table.Y.AtVec(0), 1e-9)
	assert.InDelta(t, 10.5, table.X.At(29, 0), 1e-9)
	assert.InDelta(t, 121872.0, table.Y.AtVec(29), 1e-9)

	head := table.Head(5)
	require.Len(t, head, 5)
	assert.InDeltaSlice(t, []float64{1.3, 46205.0}, head[1], 1e-9)
	assert.Len(t, table.Head(100), 30)
}

func TestLoadCSVMultipleFeatures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,target\n1.0,2.0,3.0\n4.0,5.0,9.0\n"), 0o644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Features)
	assert.Equal(t, "target", table.Target)
	assert.InDelta(t, 5.0, table.X.At(1, 1), 1e-9)
	assert.InDelta(t, 9.0, table.Y.AtVec(1), 1e-9)
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	text := filepath.Join(dir, "text.csv")
	require.NoError(t, os.WriteFile(text, []byte("name,value\nfoo,1.0\nbar,2.0\n"), 0o644))
	_, err = LoadCSV(text)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
