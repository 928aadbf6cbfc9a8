package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// otelLoggerName is the instrumentation scope of records bridged to OTel.
const otelLoggerName = "dynfpv"

// stdout is the console sink. Tests swap it.
var stdout io.Writer = os.Stdout

// SlogManager owns the process logger: console and file text sinks, the
// optional OTel bridge and any extra handlers, behind one Fanout.
type SlogManager struct {
	logger      *slog.Logger
	logProvider *sdklog.LoggerProvider
	attrs       AttrProvider
}

func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

var levelNames = map[string]slog.Level{
	"TRACE":   slog.LevelDebug,
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARN":    slog.LevelWarn,
	"WARNING": slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

// ParseLevel maps a level name from config or the game-side script to a
// slog.Level. Unknown names are Info.
func ParseLevel(level string) slog.Level {
	if lvl, ok := levelNames[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// timeFormat keeps milliseconds so per-frame records can be ordered.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(timeFormat))
	}
	return a
}

// SetAttrProvider installs attributes added to every record. It takes
// effect on the next Setup.
func (m *SlogManager) SetAttrProvider(p AttrProvider) {
	m.attrs = p
}

// Setup initializes the logging system: console, file (if non-nil), OTel (if
// provider is non-nil) and any extra handlers such as GELF.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider, extra ...slog.Handler) {
	lvl := ParseLevel(level)
	m.logProvider = provider

	handlerOpts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: utcTime}

	handlers := []slog.Handler{slog.NewTextHandler(stdout, handlerOpts)}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}
	if provider != nil {
		handlers = append(handlers, otelslog.NewHandler(otelLoggerName, otelslog.WithLoggerProvider(provider)))
	}
	handlers = append(handlers, extra...)

	m.logger = slog.New(withProvider(NewFanout(handlers...), m.attrs))
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// WriteLog records a line sent by the game-side script under source=script.
func (m *SlogManager) WriteLog(functionName, data, level string) {
	if m.logger == nil {
		return
	}
	m.logger.Log(context.Background(), ParseLevel(level), data,
		slog.String("source", "script"),
		slog.String("function", functionName),
	)
}
