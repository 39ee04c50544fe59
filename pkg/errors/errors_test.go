package errors

import (
	"bytes"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestErrorMessagesAndCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
		code Code
	}{
		{
			name: "not fitted",
			err:  NewNotFittedError("ELM", "Predict"),
			msg:  "goelm: ELM.Predict called before Fit",
			code: CodeNotFitted,
		},
		{
			name: "rows",
			err:  NewDimensionError("ELM.Fit", 4, 3, 0),
			msg:  "goelm: ELM.Fit: dimension mismatch in rows: expected 4, got 3",
			code: CodeDimensionMismatch,
		},
		{
			name: "features",
			err:  NewDimensionError("ELM.Predict", 2, 5, 1),
			msg:  "goelm: ELM.Predict: dimension mismatch in features: expected 2, got 5",
			code: CodeDimensionMismatch,
		},
		{
			name: "validation",
			err:  NewValidationError("hid_num", "must be positive", 0),
			msg:  "goelm: invalid hid_num=0: must be positive",
			code: CodeInvalidParameter,
		},
		{
			name: "value",
			err:  NewValueError("ELM.Fit", "label 0 is outside [1, 3]"),
			msg:  "goelm: ELM.Fit: label 0 is outside [1, 3]",
			code: CodeInvalidInput,
		},
		{
			name: "model with sentinel of the same name",
			err:  NewModelError("ELM.Fit", "empty data", ErrEmptyData),
			msg:  "goelm: ELM.Fit: empty data",
			code: CodeEmptyData,
		},
		{
			name: "model with cause",
			err:  NewModelError("pinv", "svd failed", ErrSingularMatrix),
			msg:  "goelm: pinv: svd failed: singular matrix",
			code: CodeSingularMatrix,
		},
		{
			name: "model without cause",
			err:  NewModelError("Runner.Run", "aborted", nil),
			msg:  "goelm: Runner.Run: aborted",
			code: CodeModel,
		},
		{
			name: "numerical",
			err:  NewNumericalInstabilityError("output_weights", []float64{math.Inf(1)}, 3),
			msg:  "goelm: output_weights: 3 non-finite values (first [+Inf])",
			code: CodeNumericalInstability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.Equal(t, tt.code, CodeOf(tt.err))
			// コンストラクタはスタックを付ける
			assert.Contains(t, fmt.Sprintf("%+v", tt.err), "errors_test.go")
		})
	}
}

func TestCodeOfChains(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, Code(""), CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, CodeEmptyData, CodeOf(Wrap(ErrEmptyData, "loading")))

	wrapped := Wrapf(NewNotFittedError("ELM", "Score"), "fold %d", 2)
	assert.Equal(t, CodeNotFitted, CodeOf(wrapped))

	var nf *NotFittedError
	require.True(t, As(wrapped, &nf))
	assert.Equal(t, "Score", nf.Method)
}

func TestModelErrorUnwrapsSentinel(t *testing.T) {
	err := Wrap(NewModelError("StandardScaler.Fit", "empty data", ErrEmptyData), "scale")
	assert.True(t, Is(err, ErrEmptyData))
	assert.False(t, Is(err, ErrSingularMatrix))
}

func TestHints(t *testing.T) {
	err := WithHint(NewValueError("ELM.Fit", "bad label"), "use labels 1..K")
	assert.Equal(t, "goelm: ELM.Fit: bad label", err.Error())
	assert.Equal(t, "use labels 1..K", Hints(err))
	assert.Equal(t, CodeInvalidInput, CodeOf(err))
	assert.Empty(t, Hints(New("no hint")))
}

func TestZerologDetail(t *testing.T) {
	tests := []struct {
		name   string
		obj    zerolog.LogObjectMarshaler
		fields []string
	}{
		{"dimension", &DimensionError{Op: "ELM.Predict", Expected: 2, Got: 3, Axis: 1},
			[]string{`"type":"DimensionError"`, `"axis":"features"`, `"expected":2`, `"got":3`}},
		{"not fitted", &NotFittedError{ModelName: "ELM", Method: "Predict"},
			[]string{`"type":"NotFittedError"`, `"model":"ELM"`}},
		{"validation", &ValidationError{ParamName: "a", Reason: "must be positive", Value: -1.0},
			[]string{`"param":"a"`, `"value":-1`}},
		{"numerical", &NumericalInstabilityError{Operation: "pseudo_inverse", Count: 1},
			[]string{`"operation":"pseudo_inverse"`, `"count":1`}},
		{"conversion warning", NewDataConversionWarning("string", "float64", "labels"),
			[]string{`"type":"DataConversionWarning"`, `"from":"string"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf)
			zl.Error().Object("detail", tt.obj).Send()
			for _, f := range tt.fields {
				assert.Contains(t, buf.String(), f)
			}
		})
	}
}

func TestWarn(t *testing.T) {
	prev := warnHandler
	t.Cleanup(func() { SetWarningHandler(prev) })

	var handled []error
	SetWarningHandler(func(w error) { handled = append(handled, w) })

	Warn(NewUndefinedMetricWarning("precision", "no predicted samples", 0))
	require.Len(t, handled, 1)
	assert.Equal(t, "precision is undefined (no predicted samples), using 0", handled[0].Error())

	var sunk int
	SetZerologWarnFunc(func(error) { sunk++ })
	Warn(NewDataConversionWarning("string", "float64", "label encoding"))
	SetZerologWarnFunc(nil)

	assert.Equal(t, 1, sunk)
	assert.Len(t, handled, 1, "sink takes precedence over the handler")

	// ハンドラが nil でも panic しない
	SetWarningHandler(nil)
	assert.NotPanics(t, func() { Warn(NewDataConversionWarning("a", "b", "c")) })
}

func TestWarnReentrant(t *testing.T) {
	prev := warnHandler
	t.Cleanup(func() { SetWarningHandler(prev) })

	var seen []string
	var handler func(error)
	handler = func(w error) {
		seen = append(seen, w.Error())
		if len(seen) == 1 {
			// ハンドラ内からの Warn と差し替えがロックを待たないこと
			SetWarningHandler(handler)
			Warn(NewUndefinedMetricWarning("recall", "no true samples", 0))
		}
	}
	SetWarningHandler(handler)

	done := make(chan struct{})
	go func() {
		defer close(done)
		Warn(NewDataConversionWarning("string", "float64", "labels"))
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Warn deadlocked when called from a handler")
	}
	assert.Len(t, seen, 2)
}

func TestCheckFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(-1)
	tests := []struct {
		name      string
		m         *mat.Dense
		wantCount int
		wantFirst int
	}{
		{"clean", mat.NewDense(2, 2, []float64{1, 2, 3, 4}), 0, 0},
		{"two bad", mat.NewDense(2, 2, []float64{1, nan, inf, 4}), 2, 2},
		{"report is capped", mat.NewDense(1, 7, []float64{nan, nan, nan, nan, nan, nan, nan}), 7, maxReported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFinite("pseudo_inverse", tt.m)
			if tt.wantCount == 0 {
				assert.NoError(t, err)
				return
			}
			var ne *NumericalInstabilityError
			require.True(t, As(err, &ne), "got %v", err)
			assert.Equal(t, "pseudo_inverse", ne.Operation)
			assert.Equal(t, tt.wantCount, ne.Count)
			assert.Len(t, ne.Values, tt.wantFirst)
		})
	}
}

func TestFirstNonFinite(t *testing.T) {
	_, _, ok := FirstNonFinite(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	assert.False(t, ok)

	i, j, ok := FirstNonFinite(mat.NewDense(2, 3, []float64{0, 0, 0, 0, math.Inf(1), math.NaN()}))
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 1}, [2]int{i, j})
}
