package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// 報告に含める非有限値の最大数
const maxReported = 5

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FirstNonFinite は行優先で最初の NaN/±Inf の位置を返す。ok は見つかったかどうか。
func FirstNonFinite(m mat.Matrix) (i, j int, ok bool) {
	r, c := m.Dims()
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if !finite(m.At(i, j)) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// CheckFinite returns a NumericalInstabilityError when m holds NaN or ±Inf.
func CheckFinite(op string, m mat.Matrix) error {
	var (
		first []float64
		count int
	)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); !finite(v) {
				if count < maxReported {
					first = append(first, v)
				}
				count++
			}
		}
	}
	if count == 0 {
		return nil
	}
	return NewNumericalInstabilityError(op, first, count)
}
