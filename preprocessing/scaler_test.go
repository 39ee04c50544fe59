package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 40, 5,
	})

	s := NewStandardScalerDefault()
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true)", s.String())

	out, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.True(t, s.IsFitted())
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true, n_features=3)", s.String())

	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, s.Mean, 1e-12)
	popStd := math.Sqrt(1.25)
	assert.InDeltaSlice(t, []float64{popStd, 10 * popStd, 1}, s.Scale, 1e-12)

	for j := 0; j < 2; j++ {
		col := mat.Col(nil, j, out)
		var sum, sq float64
		for _, v := range col {
			sum += v
			sq += v * v
		}
		assert.InDelta(t, 0, sum/4, 1e-12, "column %d mean", j)
		assert.InDelta(t, 1, sq/4, 1e-12, "column %d variance", j)
	}
	// constant column is centred but not scaled
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0.0, out.At(i, 2))
	}

	back, err := s.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScalerOptions(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 6})

	out, err := NewStandardScaler(false, true).FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 3.0, out.At(1, 0), 1e-12)

	out, err = NewStandardScaler(true, false).FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, out.At(1, 0), 1e-12)
}

func TestScale(t *testing.T) {
	out, err := Scale(mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.NoError(t, err)
	want := math.Sqrt(1.5)
	assert.InDelta(t, -want, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0, out.At(1, 0), 1e-12)
	assert.InDelta(t, want, out.At(2, 0), 1e-12)
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 7,
		5, 7,
		10, 7,
	})

	m := NewMinMaxScaler([2]float64{-1, 1})
	out, err := m.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, -1, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0, out.At(1, 0), 1e-12)
	assert.InDelta(t, 1, out.At(2, 0), 1e-12)
	assert.InDelta(t, -1, out.At(0, 1), 1e-12)

	back, err := m.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))

	_, err = NewMinMaxScaler([2]float64{1, 1}).FitTransform(X)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestScalerErrors(t *testing.T) {
	scalers := map[string]interface {
		Fit(mat.Matrix) error
		Transform(mat.Matrix) (mat.Matrix, error)
	}{
		"standard": NewStandardScalerDefault(),
		"minmax":   NewMinMaxScalerDefault(),
	}

	for name, s := range scalers {
		t.Run(name, func(t *testing.T) {
			_, err := s.Transform(mat.NewDense(1, 2, nil))
			var nf *errors.NotFittedError
			require.True(t, errors.As(err, &nf), "got %v", err)
			assert.Equal(t, "Transform", nf.Method)

			require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

			_, err = s.Transform(mat.NewDense(1, 3, nil))
			var de *errors.DimensionError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, 2, de.Expected)
			assert.Equal(t, 3, de.Got)
		})
	}

	err := NewStandardScalerDefault().Fit(mat.NewDense(2, 1, []float64{1, math.Inf(1)}))
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}
