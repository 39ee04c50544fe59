package benchmark

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

var (
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// RenderTable formats results as a bordered table with one row per
// (dataset, hidden size).
func RenderTable(results []Result) string {
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		}).
		Headers("Dataset", "Hidden", "Accuracy", "Std", "Time")

	for _, r := range results {
		table.Row(
			r.Dataset,
			fmt.Sprintf("%d", r.HiddenNum),
			fmt.Sprintf("%.3f", r.MeanAccuracy),
			fmt.Sprintf("%.3f", r.StdAccuracy),
			r.Duration.Round(time.Millisecond).String(),
		)
	}
	return table.String()
}

// WriteText writes results as plain text: the dataset name on its own line
// followed by "<hidden> Accuracy: 0.xxx" lines.
func WriteText(w io.Writer, results []Result) error {
	current := ""
	for i, r := range results {
		if i == 0 || r.Dataset != current {
			current = r.Dataset
			if _, err := fmt.Fprintln(w, current); err != nil {
				return errors.WithStack(err)
			}
		}
		if _, err := fmt.Fprintf(w, "%d Accuracy: %0.3f\n", r.HiddenNum, r.MeanAccuracy); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// SavePlot draws mean accuracy against hidden layer size, one line per
// dataset, and saves it to path. The image format follows the extension
// (.png, .svg, .pdf, ...).
func SavePlot(results []Result, path string) error {
	if len(results) == 0 {
		return errors.NewModelError("SavePlot", "no results", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "ELM accuracy"
	p.X.Label.Text = "hidden neurons"
	p.Y.Label.Text = "accuracy"
	p.Legend.Top = true

	var order []string
	byDataset := make(map[string]plotter.XYs)
	for _, r := range results {
		if _, ok := byDataset[r.Dataset]; !ok {
			order = append(order, r.Dataset)
		}
		byDataset[r.Dataset] = append(byDataset[r.Dataset], plotter.XY{X: float64(r.HiddenNum), Y: r.MeanAccuracy})
	}

	lines := make([]any, 0, 2*len(order))
	for _, name := range order {
		pts := byDataset[name]
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return errors.Wrap(err, "add plot lines")
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
