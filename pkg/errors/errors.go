// Package errors は goelm のエラー型と警告を定義する。
//
// すべてのコンストラクタは cockroachdb/errors でスタックトレースを付けて返す。
// 呼び出し側は As で具体型を取り出すか、CodeOf で安定したエラーコードを得る。
package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrEmptyData は行数または列数が0の入力を表す
	ErrEmptyData = errors.New("empty data")

	// ErrSingularMatrix は擬似逆行列を構成できない行列を表す
	ErrSingularMatrix = errors.New("singular matrix")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// New returns an error with a stack trace.
func New(msg string) error { return errors.New(msg) }

// Newf is New with formatting.
func Newf(format string, args ...interface{}) error { return errors.Newf(format, args...) }

// Wrap prefixes err with msg. A nil err stays nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// WithStack annotates err with the caller's stack.
func WithStack(err error) error { return errors.WithStack(err) }

// WithHint はユーザー向けの対処方法を err に付ける。Error() の文字列は変わらない。
func WithHint(err error, hint string) error { return errors.WithHint(err, hint) }

// Hints は err のチェーンに付いたヒントを改行区切りで返す
func Hints(err error) string { return errors.FlattenHints(err) }
