package log

import (
	"log/slog"
	"os"
	"strings"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr puts err on a slog record under ErrAttrKey.
func ErrAttr(err error) slog.Attr { return slog.Any(ErrAttrKey, err) }

// cloudLoggingKeys は slog の組み込みキーを Cloud Logging の名前に変える
func cloudLoggingKeys(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	case slog.SourceKey:
		a.Key = "logging.googleapis.com/sourceLocation"
	}
	return a
}

// SetupLogger は CLI プロセス用に両方のバックエンドを設定する。
// slog の既定は stderr への JSON (スタックトレースとエラーコード付き)、
// Logger の既定は zerolog。errors.Warn の警告も zerolog に流れる。
func SetupLogger(level string) error {
	lvl, err := ToLogLevel(level)
	if err != nil {
		return err
	}

	jh := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       lvl,
		ReplaceAttr: cloudLoggingKeys,
	})
	slog.SetDefault(slog.New(WrapByErrFmtHandler(jh)))

	zl := NewZerologLogger(os.Stderr, Level(lvl))
	SetLogger(zl)
	errors.SetZerologWarnFunc(zl.warn)
	return nil
}

// ToLogLevel parses debug, info, warn or error, case-insensitively.
func ToLogLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return 0, errors.Wrap(err, "log level")
		}
		return lvl, nil
	}
	return 0, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", level)
}
