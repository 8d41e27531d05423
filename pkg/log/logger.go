package log

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

const defaultBufferSize = 1000

// Logger writes structured entries through an async Buffer.
// Its method set satisfies retryablehttp.LeveledLogger.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	buffer *Buffer
	fields map[string]any
}

// New creates a logger that emits entries at level and above.
func New(level Level, transporters ...Transporter) *Logger {
	return &Logger{
		level:  level,
		buffer: NewBuffer(defaultBufferSize, transporters...),
		fields: make(map[string]any),
	}
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// With returns a child logger sharing the buffer, with extra base fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	l.mu.RLock()
	fields := make(map[string]any, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	level := l.level
	l.mu.RUnlock()

	mergePairs(fields, keysAndValues)

	return &Logger{level: level, buffer: l.buffer, fields: fields}
}

// Close flushes queued entries and closes the transporters.
func (l *Logger) Close() {
	l.buffer.Close()
}

func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues []any) {
	l.mu.RLock()
	enabled := l.level.Enables(level)
	l.mu.RUnlock()
	if !enabled {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = caller(3)

	l.mu.RLock()
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	l.mu.RUnlock()

	if ctx != nil {
		entry.RequestID = RequestIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}

	mergePairs(entry.Fields, keysAndValues)
	l.buffer.Send(*entry)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

func (l *Logger) Debug(msg string, keysAndValues ...any) { l.log(nil, Debug, msg, keysAndValues) }
func (l *Logger) Info(msg string, keysAndValues ...any)  { l.log(nil, Info, msg, keysAndValues) }
func (l *Logger) Warn(msg string, keysAndValues ...any)  { l.log(nil, Warn, msg, keysAndValues) }
func (l *Logger) Error(msg string, keysAndValues ...any) { l.log(nil, Error, msg, keysAndValues) }

// Fatal logs at Fatal level. Exiting is left to the caller.
func (l *Logger) Fatal(msg string, keysAndValues ...any) { l.log(nil, Fatal, msg, keysAndValues) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Debug, msg, keysAndValues)
}

func (l *Logger) InfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Info, msg, keysAndValues)
}

func (l *Logger) WarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Warn, msg, keysAndValues)
}

func (l *Logger) ErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Error, msg, keysAndValues)
}

// --- Global Logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger

	noopOnce   sync.Once
	noopLogger *Logger
)

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the process-wide logger, or a logger that discards
// everything when none was set.
func Default() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	noopOnce.Do(func() {
		noopLogger = New(Fatal+1, discard{})
	})
	return noopLogger
}

type discard struct{}

func (discard) Name() string      { return "discard" }
func (discard) Write(Entry) error { return nil }
func (discard) Close() error      { return nil }

func GlobalDebug(msg string, keysAndValues ...any) { Default().log(nil, Debug, msg, keysAndValues) }
func GlobalInfo(msg string, keysAndValues ...any)  { Default().log(nil, Info, msg, keysAndValues) }
func GlobalWarn(msg string, keysAndValues ...any)  { Default().log(nil, Warn, msg, keysAndValues) }
func GlobalError(msg string, keysAndValues ...any) { Default().log(nil, Error, msg, keysAndValues) }
func GlobalFatal(msg string, keysAndValues ...any) { Default().log(nil, Fatal, msg, keysAndValues) }

func GlobalDebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Debug, msg, keysAndValues)
}

func GlobalInfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Info, msg, keysAndValues)
}

func GlobalWarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Warn, msg, keysAndValues)
}

func GlobalErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Error, msg, keysAndValues)
}
