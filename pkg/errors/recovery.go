package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は Recover が捕まえた panic。gonum/mat は形状違反を
// mat.Error の panic で報告するので、推定器の入口で error に戻す。
type PanicError struct {
	Operation string
	Value     interface{}
	Stack     string
	// Prior は panic 前に関数が設定していたエラー
	Prior error
}

func NewPanicError(operation string, value interface{}) *PanicError {
	return &PanicError{Operation: operation, Value: value, Stack: string(debug.Stack())}
}

func (e *PanicError) Error() string {
	msg := fmt.Sprintf("goelm: %s: recovered panic: %v", e.Operation, e.Value)
	if e.Prior != nil {
		msg += " (after: " + e.Prior.Error() + ")"
	}
	return msg
}

// Unwrap returns the panic value when it is an error, otherwise Prior.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return e.Prior
}

func (e *PanicError) Code() Code { return CodePanic }

// Recover converts a panic into a *PanicError stored in *err. Defer it with
// the address of the named error result:
//
//	func (e *ELM) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "ELM.Fit")
//		...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	pe := NewPanicError(operation, r)
	pe.Prior = *err
	*err = pe
}
