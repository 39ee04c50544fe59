package elm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/core/parallel"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// Sigmoid はロジスティック関数 1/(1+exp(-a*z)) を返す
func Sigmoid(z, a float64) float64 {
	return 1 / (1 + math.Exp(-a*z))
}

// AddBias は X の各行の末尾に 1 を追加した N×(D+1) 行列を返す
func AddBias(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	xb := mat.NewDense(r, c+1, nil)

	parallel.Rows(r, parallelThreshold, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < c; j++ {
				xb.Set(i, j, X.At(i, j))
			}
			xb.Set(i, c, 1.0) // バイアス項
		}
	})
	return xb
}

// LabelToVector はラベル (1..n) を長さ n のベクトルに変換する。
// label-1 番目の要素が +1、それ以外は -1 になる。
// label が範囲外の場合はすべて -1 のベクトルを返す。
func LabelToVector(n, label int) []float64 {
	if n <= 0 {
		return nil
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = -1
	}
	if label >= 1 && label <= n {
		v[label-1] = 1
	}
	return v
}

// hidden は隠れ層の出力 H = sigmoid(a * W * X'^T) を返す (hidNum×N)
func hidden(w *mat.Dense, X mat.Matrix, a float64) *mat.Dense {
	xb := AddBias(X)

	var h mat.Dense
	h.Mul(w, xb.T())
	h.Apply(func(_, _ int, v float64) float64 {
		return Sigmoid(v, a)
	}, &h)
	return &h
}
