package logging

import "github.com/rs/zerolog"

// DispatcherLogger writes dispatcher events through zerolog. Every entry
// carries component=dispatcher.
type DispatcherLogger struct {
	zl zerolog.Logger
}

func NewDispatcherLogger(logger zerolog.Logger) *DispatcherLogger {
	return &DispatcherLogger{zl: logger.With().Str("component", "dispatcher").Logger()}
}

func (l *DispatcherLogger) Debug(msg string, kv ...any) { l.write(zerolog.DebugLevel, msg, kv) }
func (l *DispatcherLogger) Info(msg string, kv ...any)  { l.write(zerolog.InfoLevel, msg, kv) }
func (l *DispatcherLogger) Warn(msg string, kv ...any)  { l.write(zerolog.WarnLevel, msg, kv) }
func (l *DispatcherLogger) Error(msg string, kv ...any) { l.write(zerolog.ErrorLevel, msg, kv) }

// write hands kv to zerolog as a field list: a trailing key without a value
// is dropped and pairs whose key is not a string are skipped.
func (l *DispatcherLogger) write(level zerolog.Level, msg string, kv []any) {
	e := l.zl.WithLevel(level)
	if e == nil {
		return
	}
	if len(kv) > 0 {
		e = e.Fields(kv)
	}
	e.Msg(msg)
}
