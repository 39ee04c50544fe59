// Package log は goelm の構造化ログを提供する。
//
// Logger は slog と同じ「メッセージ + key/value の並び」の形をとり、既定では
// zerolog に書き出す。キー名は attributes.go にまとめてあり、推定器・交差検証・
// ベンチマークのレコードを同じフィールドで絞り込める。
//
//	logger := log.GetLoggerWithName("elm").With(log.ModelNameKey, "ELM")
//	logger.Info("Fit completed", log.SamplesKey, 150, log.FeaturesKey, 4)
package log

import (
	"context"
	"log/slog"
)

// Logger is the logging surface used across goelm.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	// Error は fields の先頭が error ならレコードのエラーとして扱う
	Error(msg string, fields ...any)
	With(fields ...any) Logger
	Enabled(ctx context.Context, level Level) bool
}

// Level は slog.Level と同じ値をとる
type Level int

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

func (l Level) String() string { return slog.Level(l).String() }
