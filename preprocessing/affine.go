// Package preprocessing は学習前に X に適用する列ごとのスケーラーを提供する。
package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/core/model"
	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// 幅や標準偏差がこれ未満の列は定数とみなし、スケールを1にする
const constantTol = 1e-8

var (
	_ model.InverseTransformer = (*StandardScaler)(nil)
	_ model.InverseTransformer = (*MinMaxScaler)(nil)
)

// columnAffine は列 j の値 v を (v-center[j])/scale[j]*width + lower に写す。
// 両スケーラーともこの形で、違うのは統計量の求め方だけ。
type columnAffine struct {
	state         *model.StateManager
	center, scale []float64
	width, lower  float64
}

func newColumnAffine(name string) columnAffine {
	return columnAffine{state: model.NewStateManager(name), width: 1}
}

// columns は X の各列を fn に渡す。空の X は ErrEmptyData。
func columns(op string, X mat.Matrix, fn func(j int, col []float64) error) (rows int, err error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		if err := fn(j, mat.Col(col, j, X)); err != nil {
			return 0, err
		}
	}
	return r, nil
}

// nonConstant は幅が constantTol 未満なら1を返す
func nonConstant(v float64) float64 {
	if v < constantTol && v > -constantTol {
		return 1
	}
	return v
}

func (a *columnAffine) fit(center, scale []float64, rows int) {
	a.center, a.scale = center, scale
	a.state.SetFitted(len(center), rows)
}

func (a *columnAffine) forward(method string, X mat.Matrix) (mat.Matrix, error) {
	return a.apply(method, X, func(v float64, j int) float64 {
		return (v-a.center[j])/a.scale[j]*a.width + a.lower
	})
}

func (a *columnAffine) inverse(X mat.Matrix) (mat.Matrix, error) {
	return a.apply("InverseTransform", X, func(v float64, j int) float64 {
		return (v-a.lower)/a.width*a.scale[j] + a.center[j]
	})
}

func (a *columnAffine) apply(method string, X mat.Matrix, fn func(v float64, j int) float64) (mat.Matrix, error) {
	if err := a.state.CheckInput(method, X); err != nil {
		return nil, err
	}
	out := mat.DenseCopyOf(X)
	out.Apply(func(_, j int, v float64) float64 { return fn(v, j) }, out)
	return out, nil
}
