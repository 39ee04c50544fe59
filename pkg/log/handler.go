package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	cerrors "github.com/cockroachdb/errors"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// ErrFmtHandler は ErrAttrKey のエラーからスタックトレースとエラーコードを
// 取り出してレコードに追加する slog.Handler
type ErrFmtHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler wraps next with ErrFmtHandler.
func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: next}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != ErrAttrKey {
			return true
		}
		err, _ = a.Value.Any().(error)
		return false
	})
	if err != nil {
		if code := errors.CodeOf(err); code != "" {
			r.AddAttrs(slog.String(ErrorCodeKey, string(code)))
		}
		if st := stacktrace(err); st != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, st))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithGroup(name)}
}

// stacktrace は WithStack で記録された最も内側のスタックを新しいフレームから順に
// 整形する。スタックがなければ safe details にフォールバックする。
func stacktrace(err error) string {
	st := cerrors.GetReportableStackTrace(err)
	if st == nil || len(st.Frames) == 0 {
		if d := cerrors.GetSafeDetails(err).SafeDetails; len(d) > 0 {
			return d[0]
		}
		return ""
	}
	var b strings.Builder
	for i := len(st.Frames) - 1; i >= 0; i-- {
		f := st.Frames[i]
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.AbsPath, f.Lineno)
	}
	return b.String()
}
