// Package report renders lab results as text. Everything here only writes.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// plotLimit bounds the magnitude asciigraph can lay out.
const plotLimit = 1e100

// Curve plots a series such as a cost history. Points that are not finite,
// as left behind by a diverging descent, are dropped and the caption says so.
func Curve(w io.Writer, title string, series []float64) error {
	points := make([]float64, 0, len(series))
	for _, v := range series {
		if math.IsNaN(v) || math.Abs(v) > plotLimit {
			continue
		}
		points = append(points, v)
	}

	switch {
	case len(series) == 0:
		_, err := fmt.Fprintf(w, "%s: no data\n", title)
		return err
	case len(points) == 0:
		_, err := fmt.Fprintf(w, "%s: no finite data (diverged)\n", title)
		return err
	case len(points) < len(series):
		title = fmt.Sprintf("%s (diverged, %d of %d points dropped)", title, len(series)-len(points), len(series))
	}

	graph := asciigraph.Plot(points,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(title),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}

// Params prints every n-th parameter vector of a history, plus the last one.
func Params(w io.Writer, costs []float64, thetas [][]float64, every int) {
	if every < 1 {
		every = 1
	}
	table := tablewriter.NewWriter(w)

	header := []string{"iter", "cost"}
	if len(thetas) > 0 {
		for j := range thetas[0] {
			header = append(header, fmt.Sprintf("theta%d", j))
		}
	}
	table.SetHeader(header)

	for i := range thetas {
		if i%every != 0 && i != len(thetas)-1 {
			continue
		}
		row := []string{strconv.Itoa(i), format(costs[i])}
		for _, v := range thetas[i] {
			row = append(row, format(v))
		}
		table.Append(row)
	}
	table.Render()
}

// Predictions prints inputs next to actual and predicted targets.
func Predictions(w io.Writer, xLabel string, x, y, yhat []float64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{xLabel, "actual", "predicted", "residual"})
	for i := range x {
		table.Append([]string{format(x[i]), format(y[i]), format(yhat[i]), format(y[i] - yhat[i])})
	}
	table.Render()
}

// Rows prints numeric rows under the given header.
func Rows(w io.Writer, header []string, rows [][]float64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, v := range r {
			cells[i] = format(v)
		}
		table.Append(cells)
	}
	table.Render()
}

// KV prints a two column table of named values.
func KV(w io.Writer, rows [][2]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"name", "value"})
	for _, r := range rows {
		table.Append([]string{r[0], r[1]})
	}
	table.Render()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
