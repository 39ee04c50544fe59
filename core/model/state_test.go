package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager("ELM")
	assert.False(t, s.IsFitted())
	assert.Equal(t, "unfitted", s.State().String())
	assert.Zero(t, s.NFeatures())

	s.SetFitted(4, 150)
	assert.True(t, s.IsFitted())
	assert.Equal(t, "fitted", s.State().String())
	assert.Equal(t, 4, s.NFeatures())
	assert.Equal(t, 150, s.NSamples())

	s.Reset()
	assert.Equal(t, NotFitted, s.State())
	assert.Zero(t, s.NSamples())
	assert.Equal(t, "unknown", EstimatorState(7).String())
}

func TestStateManagerCheckInput(t *testing.T) {
	s := NewStateManager("StandardScaler")

	err := s.CheckInput("Transform", mat.NewDense(1, 3, nil))
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "StandardScaler", nf.ModelName)
	assert.Equal(t, "Transform", nf.Method)

	s.SetFitted(3, 10)
	assert.NoError(t, s.CheckInput("Transform", mat.NewDense(2, 3, nil)))

	err = s.CheckInput("Transform", mat.NewDense(2, 5, nil))
	var de *errors.DimensionError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "StandardScaler.Transform", de.Op)
	assert.Equal(t, 3, de.Expected)
	assert.Equal(t, 5, de.Got)
	assert.Equal(t, 1, de.Axis)
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager("ELM")
	X := mat.NewDense(1, 2, nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetFitted(2, i)
		}()
		go func() {
			defer wg.Done()
			_ = s.IsFitted()
			_ = s.CheckInput("Predict", X)
		}()
	}
	wg.Wait()
	assert.NoError(t, s.CheckInput("Predict", X))
}

type fakeEstimator struct{}

func (fakeEstimator) Fit(X, y mat.Matrix) error                { return nil }
func (fakeEstimator) Predict(X mat.Matrix) (mat.Matrix, error) { return X, nil }

type cloneable struct{ fakeEstimator }

func (cloneable) GetParams(bool) map[string]interface{}  { return nil }
func (cloneable) SetParams(map[string]interface{}) error { return nil }
func (cloneable) Clone() SKLearnCompatible               { return cloneable{} }

func TestCloneEstimator(t *testing.T) {
	_, ok := CloneEstimator(fakeEstimator{})
	assert.False(t, ok)

	c, ok := CloneEstimator(cloneable{})
	require.True(t, ok)
	assert.IsType(t, cloneable{}, c)
}
