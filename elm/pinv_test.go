package elm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

func TestPseudoInverse(t *testing.T) {
	tests := []struct {
		name string
		a    *mat.Dense
	}{
		{name: "square invertible", a: mat.NewDense(2, 2, []float64{4, 7, 2, 6})},
		{name: "tall", a: mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})},
		{name: "wide", a: mat.NewDense(2, 4, []float64{1, 0, 2, -1, 0, 3, 1, 1})},
		{name: "rank deficient", a: mat.NewDense(3, 3, []float64{1, 2, 0, 3, 4, 0, 0, 0, 0})},
		{name: "zero", a: mat.NewDense(2, 3, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, n := tt.a.Dims()
			pinv, err := PseudoInverse(tt.a)
			require.NoError(t, err)

			r, c := pinv.Dims()
			assert.Equal(t, n, r)
			assert.Equal(t, m, c)

			// A·A⁺·A = A
			var aap, aapa mat.Dense
			aap.Mul(tt.a, pinv)
			aapa.Mul(&aap, tt.a)
			assert.True(t, mat.EqualApprox(tt.a, &aapa, 1e-9), "A·A⁺·A =\n%v", mat.Formatted(&aapa))

			// A⁺·A·A⁺ = A⁺
			var pa, pap mat.Dense
			pa.Mul(pinv, tt.a)
			pap.Mul(&pa, pinv)
			assert.True(t, mat.EqualApprox(pinv, &pap, 1e-9))

			// A·A⁺ is symmetric
			assert.True(t, mat.EqualApprox(&aap, aap.T(), 1e-9))
		})
	}

	t.Run("matches the inverse of an invertible matrix", func(t *testing.T) {
		a := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
		var inv mat.Dense
		require.NoError(t, inv.Inverse(a))

		pinv, err := PseudoInverse(a)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(&inv, pinv, 1e-12))
	})
}

func TestPseudoInverseErrors(t *testing.T) {
	_, err := PseudoInverse(&mat.Dense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData), "got %v", err)

	tests := map[string]*mat.Dense{
		"nan":  mat.NewDense(2, 2, []float64{math.NaN(), 1, 2, 3}),
		"+inf": mat.NewDense(2, 2, []float64{math.Inf(1), 1, 2, 3}),
		"-inf": mat.NewDense(2, 3, []float64{1, 2, 3, 4, math.Inf(-1), 6}),
	}
	for name, a := range tests {
		t.Run(name, func(t *testing.T) {
			pinv, err := PseudoInverse(a)
			assert.Nil(t, pinv)
			var ne *errors.NumericalInstabilityError
			require.True(t, errors.As(err, &ne), "got %v", err)
			assert.Equal(t, "pseudo_inverse", ne.Operation)
			assert.Equal(t, 1, ne.Count)
			assert.Equal(t, errors.CodeNumericalInstability, errors.CodeOf(err))
		})
	}
}
