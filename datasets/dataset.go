// Package datasets loads labelled feature matrices for the estimators:
// CSV files through gota dataframes, svmlight files, and synthetic blobs.
package datasets

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a named feature matrix X (N×D) with labels Y (N×1).
type Dataset struct {
	Name string
	X    *mat.Dense
	Y    *mat.Dense
}

// Dims returns the number of samples and features.
func (d *Dataset) Dims() (samples, features int) {
	return d.X.Dims()
}

// Classes returns the distinct labels in ascending order.
func (d *Dataset) Classes() []float64 {
	n, _ := d.Y.Dims()
	seen := make(map[float64]struct{})
	var classes []float64
	for i := 0; i < n; i++ {
		v := d.Y.At(i, 0)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Float64s(classes)
	return classes
}

// Summary returns a one-line description such as
// "iris: 150 samples, 4 features, 3 classes".
func (d *Dataset) Summary() string {
	samples, features := d.Dims()
	return fmt.Sprintf("%s: %s samples, %s features, %d classes",
		d.Name, humanize.Comma(int64(samples)), humanize.Comma(int64(features)), len(d.Classes()))
}

func (d *Dataset) String() string {
	return d.Summary()
}
