package datasets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// LoadCSV reads a comma separated file whose labelCol column holds the labels
// (negative means the last column). The dataset is named after the file.
func LoadCSV(path string, labelCol int, hasHeader bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(f, name, labelCol, hasHeader)
}

// ReadCSV parses CSV records into a Dataset. Every column except the label
// column must be numeric. Numeric labels are kept as they are; non-numeric
// labels are mapped to 1..K in sorted order and a DataConversionWarning is
// raised.
func ReadCSV(r io.Reader, name string, labelCol int, hasHeader bool) (*Dataset, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(hasHeader), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "read csv %s", name)
	}

	nRows, nCols := df.Nrow(), df.Ncol()
	if nCols < 2 {
		return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("%s: need at least one feature column and a label column, got %d columns", name, nCols))
	}
	if nRows == 0 {
		return nil, errors.NewModelError("ReadCSV", "empty data", errors.ErrEmptyData)
	}
	if labelCol < 0 {
		labelCol = nCols - 1
	}
	if labelCol >= nCols {
		return nil, errors.NewValidationError("label_col", fmt.Sprintf("must be below the column count %d", nCols), labelCol)
	}

	names := df.Names()
	X := mat.NewDense(nRows, nCols-1, nil)
	j := 0
	for c, colName := range names {
		if c == labelCol {
			continue
		}
		col := df.Col(colName)
		if t := col.Type(); t != series.Float && t != series.Int {
			return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("%s: feature column %q is not numeric (%s)", name, colName, t))
		}
		X.SetCol(j, col.Float())
		j++
	}

	labels, err := parseLabels(name, df.Col(names[labelCol]).Records())
	if err != nil {
		return nil, err
	}
	return &Dataset{Name: name, X: X, Y: mat.NewDense(nRows, 1, labels)}, nil
}

func parseLabels(name string, records []string) ([]float64, error) {
	labels := make([]float64, len(records))
	numeric := true
	for i, s := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			numeric = false
			break
		}
		labels[i] = v
	}
	if numeric {
		return labels, nil
	}

	distinct := make(map[string]struct{})
	for _, s := range records {
		distinct[strings.TrimSpace(s)] = struct{}{}
	}
	keys := make([]string, 0, len(distinct))
	for k := range distinct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i + 1
	}
	for i, s := range records {
		labels[i] = float64(index[strings.TrimSpace(s)])
	}

	errors.Warn(errors.NewDataConversionWarning("string", "float64",
		fmt.Sprintf("%s: %d label values mapped to 1..%d in sorted order", name, len(keys), len(keys))))
	return labels, nil
}
