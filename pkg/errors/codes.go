package errors

// Code はログやCLIで使う安定したエラー識別子
type Code string

const (
	CodeNotFitted            Code = "NOT_FITTED"
	CodeDimensionMismatch    Code = "DIMENSION_MISMATCH"
	CodeEmptyData            Code = "EMPTY_DATA"
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeInvalidParameter     Code = "INVALID_PARAMETER"
	CodeSingularMatrix       Code = "SINGULAR_MATRIX"
	CodeNumericalInstability Code = "NUMERICAL_INSTABILITY"
	CodeModel                Code = "MODEL_ERROR"
	CodePanic                Code = "PANIC"
)

type coder interface {
	Code() Code
}

// CodeOf returns the code of the outermost goelm error in err's chain, or ""
// when the chain holds none. Bare sentinels map to their own codes.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var c coder
	if As(err, &c) {
		return c.Code()
	}
	switch {
	case Is(err, ErrEmptyData):
		return CodeEmptyData
	case Is(err, ErrSingularMatrix):
		return CodeSingularMatrix
	}
	return ""
}
