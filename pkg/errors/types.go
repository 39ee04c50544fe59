package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NotFittedError は Fit 前に学習済み状態を必要とするメソッドが呼ばれたことを表す
type NotFittedError struct {
	ModelName string
	Method    string
}

func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("goelm: %s.%s called before Fit", e.ModelName, e.Method)
}

func (e *NotFittedError) Code() Code { return CodeNotFitted }

func (e *NotFittedError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "NotFittedError").
		Str("model", e.ModelName).
		Str("method", e.Method)
}

// DimensionError は行数 (Axis 0) または特徴量数 (Axis 1) の不一致を表す
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("goelm: %s: dimension mismatch in %s: expected %d, got %d",
		e.Op, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) Code() Code { return CodeDimensionMismatch }

func (e *DimensionError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "DimensionError").
		Str("operation", e.Op).
		Str("axis", e.axisName()).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

// ValidationError はハイパーパラメータや設定値の不正を表す。
// ParamName はオプション名 (hid_num, a, folds など)。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("goelm: invalid %s=%v: %s", e.ParamName, e.Value, e.Reason)
}

func (e *ValidationError) Code() Code { return CodeInvalidParameter }

func (e *ValidationError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "ValidationError").
		Str("param", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

// ValueError は入力データの内容 (ラベル、NaN など) が不正であることを表す
type ValueError struct {
	Op      string
	Message string
}

func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

func (e *ValueError) Error() string { return "goelm: " + e.Op + ": " + e.Message }

func (e *ValueError) Code() Code { return CodeInvalidInput }

func (e *ValueError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "ValueError").
		Str("operation", e.Op).
		Str("message", e.Message)
}

// ModelError は Op で起きた Kind 種の失敗。Err は ErrEmptyData などの原因。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

func (e *ModelError) Error() string {
	msg := "goelm: " + e.Op + ": " + e.Kind
	if e.Err != nil && e.Err.Error() != e.Kind {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelError) Unwrap() error { return e.Err }

func (e *ModelError) Code() Code {
	switch {
	case Is(e.Err, ErrEmptyData):
		return CodeEmptyData
	case Is(e.Err, ErrSingularMatrix):
		return CodeSingularMatrix
	}
	return CodeModel
}

// NumericalInstabilityError は計算結果に NaN や ±Inf が現れたことを表す。
// Values は最初に見つかった値のみ、Count は総数。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Count     int
}

func NewNumericalInstabilityError(operation string, values []float64, count int) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values, Count: count})
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("goelm: %s: %d non-finite values (first %v)", e.Operation, e.Count, e.Values)
}

func (e *NumericalInstabilityError) Code() Code { return CodeNumericalInstability }

func (e *NumericalInstabilityError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "NumericalInstabilityError").
		Str("operation", e.Operation).
		Int("count", e.Count).
		Floats64("values", e.Values)
}
