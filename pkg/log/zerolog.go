package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// ZerologLogger は zerolog による Logger 実装
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger writes JSON records at or above level to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{
		zl: zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

func (l *ZerologLogger) Debug(msg string, fields ...any) { send(l.zl.Debug(), msg, fields) }
func (l *ZerologLogger) Info(msg string, fields ...any)  { send(l.zl.Info(), msg, fields) }
func (l *ZerologLogger) Warn(msg string, fields ...any)  { send(l.zl.Warn(), msg, fields) }

func (l *ZerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev, fields = attachError(ev, err), fields[1:]
		}
	}
	send(ev, msg, fields)
}

func (l *ZerologLogger) With(fields ...any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zlv := zerologLevel(level)
	return zlv >= l.zl.GetLevel() && zlv >= zerolog.GlobalLevel()
}

// warn は errors.Warn の出力先
func (l *ZerologLogger) warn(w error) {
	send(attachError(l.zl.Warn(), w), "warning", nil)
}

// 無効なレベルでは zerolog は nil イベントを返す
func send(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}

// attachError は err に加えて、エラーコードと構造化された詳細 (error_detail) を付ける
func attachError(ev *zerolog.Event, err error) *zerolog.Event {
	if ev == nil {
		return nil
	}
	ev = ev.Err(err)
	if code := errors.CodeOf(err); code != "" {
		ev = ev.Str(ErrorCodeKey, string(code))
	}
	var detail zerolog.LogObjectMarshaler
	if errors.As(err, &detail) {
		ev = ev.Object("error_detail", detail)
	}
	return ev
}

func zerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewZerologLogger(os.Stderr, LevelWarn)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName は ComponentKey に name を付けた既定ロガーを返す
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger は既定ロガーを差し替える。取得済みのロガーは元の出力先のまま。
func SetLogger(l Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}
