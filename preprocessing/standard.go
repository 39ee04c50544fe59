package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// StandardScaler は各列を平均0、母標準偏差1に標準化する
type StandardScaler struct {
	// WithMean が false なら平均を引かない (Mean はすべて0)
	WithMean bool
	// WithStd が false なら標準偏差で割らない (Scale はすべて1)
	WithStd bool

	// Fit 後の列ごとの平均と標準偏差。定数列の Scale は1。
	Mean  []float64
	Scale []float64

	cols columnAffine
}

// NewStandardScaler は新しいStandardScalerを作成する
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd, cols: newColumnAffine("StandardScaler")}
}

// NewStandardScalerDefault は平均と分散の両方を揃える
func NewStandardScalerDefault() *StandardScaler { return NewStandardScaler(true, true) }

// Scale は X を列ごとに平均0、分散1へ標準化した新しい行列を返す
func Scale(X mat.Matrix) (*mat.Dense, error) {
	out, err := NewStandardScalerDefault().FitTransform(X)
	if err != nil {
		return nil, err
	}
	return out.(*mat.Dense), nil
}

func (s *StandardScaler) Fit(X mat.Matrix) error {
	_, c := X.Dims()
	mean, scale := make([]float64, c), make([]float64, c)
	rows, err := columns("StandardScaler.Fit", X, func(j int, col []float64) error {
		m, std := stat.PopMeanStdDev(col, nil)
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return errors.NewValueError("StandardScaler.Fit", fmt.Sprintf("feature %d contains non-finite values", j))
		}
		if s.WithMean {
			mean[j] = m
		}
		scale[j] = 1
		if s.WithStd {
			scale[j] = nonConstant(std)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Mean, s.Scale = mean, scale
	s.cols.fit(mean, scale, rows)
	return nil
}

func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.cols.forward("Transform", X)
}

func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.cols.inverse(X)
}

func (s *StandardScaler) IsFitted() bool { return s.cols.state.IsFitted() }

func (s *StandardScaler) String() string {
	params := fmt.Sprintf("with_mean=%t, with_std=%t", s.WithMean, s.WithStd)
	if s.IsFitted() {
		params += fmt.Sprintf(", n_features=%d", s.cols.state.NFeatures())
	}
	return "StandardScaler(" + params + ")"
}
