package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
)

// lockedBuffer は並列の fold から書かれても壊れないバッファ
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestLogger はテスト用に JSON 行をメモリに貯める ZerologLogger。
// With で作った子ロガーも同じバッファに書く。
type TestLogger struct {
	*ZerologLogger
	out *lockedBuffer
}

// NewTestLogger returns a logger that keeps records at or above level, and the
// buffer it writes to.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	out := &lockedBuffer{}
	return &TestLogger{ZerologLogger: NewZerologLogger(out, level), out: out}, &out.buf
}

// GetLogEntries decodes every captured record. Numbers decode as float64.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(t.out.String()))
	for dec.More() {
		var e map[string]interface{}
		if err := dec.Decode(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ContainsMessage reports whether some record's message contains msg.
func (t *TestLogger) ContainsMessage(msg string) bool {
	return t.match(func(e map[string]interface{}) bool {
		m, _ := e["message"].(string)
		return strings.Contains(m, msg)
	})
}

// ContainsField reports whether some record has key set to value.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	return t.match(func(e map[string]interface{}) bool {
		v, ok := e[key]
		return ok && v == value
	})
}

func (t *TestLogger) match(pred func(map[string]interface{}) bool) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if pred(e) {
			return true
		}
	}
	return false
}

// Clear drops captured records.
func (t *TestLogger) Clear() {
	t.out.mu.Lock()
	t.out.buf.Reset()
	t.out.mu.Unlock()
}
