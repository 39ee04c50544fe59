package elm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// rcond は特異値を 0 とみなす相対しきい値 (最大特異値に対する比)
const rcond = 1e-15

// PseudoInverse は A (m×n) の Moore-Penrose 擬似逆行列 (n×m) を特異値分解で計算する。
// rcond*σmax 以下の特異値は 0 として扱うため、ランク落ちした A でも計算できる。
func PseudoInverse(A mat.Matrix) (*mat.Dense, error) {
	m, n := A.Dims()
	if m == 0 || n == 0 {
		return nil, errors.NewModelError("PseudoInverse", "empty data", errors.ErrEmptyData)
	}
	// ±Inf は σmax を Inf にして全特異値を切り捨ててしまう
	if err := errors.CheckFinite("pseudo_inverse", A); err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, errors.NewModelError("PseudoInverse", "singular matrix", errors.ErrSingularMatrix)
	}

	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u) // m×k
	svd.VTo(&v) // n×k

	// 特異値は降順
	cutoff := rcond * s[0]
	for j, sv := range s {
		inv := 0.0
		if sv > cutoff {
			inv = 1 / sv
		}
		for i := 0; i < n; i++ {
			v.Set(i, j, v.At(i, j)*inv)
		}
	}

	// A+ = V * Σ+ * U^T
	pinv := mat.NewDense(n, m, nil)
	pinv.Mul(&v, u.T())

	if err := errors.CheckFinite("pseudo_inverse", pinv); err != nil {
		return nil, err
	}
	return pinv, nil
}
