package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// MinMaxScaler は各列を FeatureRange (既定 [0, 1]) に線形に写す
type MinMaxScaler struct {
	FeatureRange [2]float64

	// Fit 後の列ごとの最小値・最大値と幅。定数列の Scale は1。
	DataMin []float64
	DataMax []float64
	Scale   []float64

	cols columnAffine
}

func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange, cols: newColumnAffine("MinMaxScaler")}
}

func NewMinMaxScalerDefault() *MinMaxScaler { return NewMinMaxScaler([2]float64{0, 1}) }

func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	if lo >= hi {
		return errors.NewValidationError("feature_range", "minimum must be smaller than maximum", m.FeatureRange)
	}

	_, c := X.Dims()
	dmin, dmax, scale := make([]float64, c), make([]float64, c), make([]float64, c)
	rows, err := columns("MinMaxScaler.Fit", X, func(j int, col []float64) error {
		dmin[j], dmax[j] = floats.Min(col), floats.Max(col)
		scale[j] = nonConstant(dmax[j] - dmin[j])
		return nil
	})
	if err != nil {
		return err
	}

	m.DataMin, m.DataMax, m.Scale = dmin, dmax, scale
	m.cols.width, m.cols.lower = hi-lo, lo
	m.cols.fit(dmin, scale, rows)
	return nil
}

func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return m.cols.forward("Transform", X)
}

func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return m.cols.inverse(X)
}

func (m *MinMaxScaler) IsFitted() bool { return m.cols.state.IsFitted() }

func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=(%g, %g))", m.FeatureRange[0], m.FeatureRange[1])
}
