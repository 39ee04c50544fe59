package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/rs/zerolog"
)

// 警告はエラーと違い処理を止めない。出力先は SetWarningHandler で差し替える。
var (
	warnMu      sync.Mutex
	warnHandler = func(w error) { log.Printf("goelm: warning: %v", w) }
	// pkg/log が import 循環なしに差し込む zerolog 出力
	warnSink func(error)
)

// SetWarningHandler replaces the fallback warning handler.
func SetWarningHandler(handler func(w error)) {
	warnMu.Lock()
	warnHandler = handler
	warnMu.Unlock()
}

// SetZerologWarnFunc routes warnings to fn ahead of the fallback handler.
// nil restores the fallback.
func SetZerologWarnFunc(fn func(w error)) {
	warnMu.Lock()
	warnSink = fn
	warnMu.Unlock()
}

// Warn は警告 w を現在の出力先に渡す
func Warn(w error) {
	warnMu.Lock()
	emit := warnHandler
	if warnSink != nil {
		emit = warnSink
	}
	warnMu.Unlock()
	if emit != nil {
		emit(w)
	}
}

// DataConversionWarning は入力が暗黙に変換されたことを知らせる (例: 文字列ラベル → 1..K)
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("converted %s to %s: %s", w.FromType, w.ToType, w.Reason)
}

func (w *DataConversionWarning) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "DataConversionWarning").
		Str("from", w.FromType).
		Str("to", w.ToType).
		Str("reason", w.Reason)
}

// UndefinedMetricWarning は指標が定義できず Result で代用したことを知らせる
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("%s is undefined (%s), using %g", w.Metric, w.Condition, w.Result)
}

func (w *UndefinedMetricWarning) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "UndefinedMetricWarning").
		Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result)
}
