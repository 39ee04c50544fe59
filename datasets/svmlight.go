package datasets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

type svmRow struct {
	label  float64
	values map[int]float64
}

// LoadSVMLight reads an svmlight/libsvm formatted file. The feature count is
// taken from the largest index in the file.
func LoadSVMLight(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadSVMLight(f, name, 0)
}

// ReadSVMLight parses "label idx:val idx:val ..." lines with 1-based feature
// indices. Text after '#' is ignored, as are "qid:" tokens. nFeatures <= 0
// infers the width from the largest index; otherwise an index above nFeatures
// is a ValueError.
func ReadSVMLight(r io.Reader, name string, nFeatures int) (*Dataset, error) {
	var rows []svmRow
	maxIndex := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		label, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, malformed(name, lineNo, fields[0])
		}
		row := svmRow{label: label, values: make(map[int]float64, len(fields)-1)}
		for _, tok := range fields[1:] {
			key, val, ok := strings.Cut(tok, ":")
			if !ok {
				return nil, malformed(name, lineNo, tok)
			}
			if key == "qid" {
				continue
			}
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 1 {
				return nil, malformed(name, lineNo, tok)
			}
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, malformed(name, lineNo, tok)
			}
			if nFeatures > 0 && idx > nFeatures {
				return nil, errors.NewValueError("ReadSVMLight",
					fmt.Sprintf("%s line %d: feature index %d exceeds n_features %d", name, lineNo, idx, nFeatures))
			}
			row.values[idx] = v
			if idx > maxIndex {
				maxIndex = idx
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read svmlight %s", name)
	}
	if len(rows) == 0 {
		return nil, errors.NewModelError("ReadSVMLight", "empty data", errors.ErrEmptyData)
	}

	width := nFeatures
	if width <= 0 {
		width = maxIndex
	}
	if width == 0 {
		return nil, errors.NewValueError("ReadSVMLight", fmt.Sprintf("%s: no feature values", name))
	}

	X := mat.NewDense(len(rows), width, nil)
	y := mat.NewDense(len(rows), 1, nil)
	for i, row := range rows {
		y.Set(i, 0, row.label)
		for idx, v := range row.values {
			X.Set(i, idx-1, v)
		}
	}
	return &Dataset{Name: name, X: X, Y: y}, nil
}

func malformed(name string, line int, token string) error {
	return errors.NewValueError("ReadSVMLight", fmt.Sprintf("%s line %d: malformed token %q", name, line, token))
}
