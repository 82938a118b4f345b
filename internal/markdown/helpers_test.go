package markdown

import (
	"context"
	"sync"

	"github.com/goliatone/go-olist/pkg/interfaces"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *recordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) has(level, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.level == level && entry.msg == msg {
			return true
		}
	}
	return false
}
