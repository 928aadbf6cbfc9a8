package main

/*
#include <stdlib.h>
*/
import "C" // required for -buildmode=c-shared

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dynfpv/extension/internal/cache"
	"github.com/dynfpv/extension/internal/config"
	"github.com/dynfpv/extension/internal/dispatcher"
	"github.com/dynfpv/extension/internal/logging"
	intOtel "github.com/dynfpv/extension/internal/otel"
	"github.com/dynfpv/extension/internal/session"
	"github.com/dynfpv/extension/pkg/fpvinterface"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtensionVersion string = "0.0.1"
	BuildDate               string = "unknown"

	ExtensionName string = "dynfpv"
)

// file paths
var (
	// ModulePath is the absolute path to this library file.
	ModulePath string

	// AddonFolder holds the settings file, Configs and status.txt. It is the
	// folder the module was loaded from.
	AddonFolder string

	LogFilePath string
	LogFile     *os.File
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger feeds the dispatcher, database and influx managers
	ZLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// Session is the live state shown in logs and status.txt
	Session = session.NewContext()

	// ModelNames maps model hashes to names pushed by the shim
	ModelNames = cache.NewModelNameCache()

	eventDispatcher *dispatcher.Dispatcher
)

// init is run automatically when the module is loaded
func init() {
	var err error

	ModulePath = fpvinterface.GetModulePath()
	AddonFolder = filepath.Dir(ModulePath)
	if AddonFolder == "" || AddonFolder == "." {
		AddonFolder, _ = os.Getwd()
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.SetAttrProvider(logging.SessionAttrs(Session))
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if err = config.Load(AddonFolder); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	setupLogging()

	if err = setupInterface(); err != nil {
		Logger.Error("Failed to set up fpvinterface!", "error", err)
		panic(err)
	}
	Logger.Info("Set up fpvinterface", "commands", len(eventDispatcher.Commands()))
}

// resolvePath makes p absolute relative to the addon folder.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(AddonFolder, p)
}

func setupLogging() {
	logsDir := resolvePath(config.GetString("logsDir"))
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		Logger.Error("Failed to create logs dir", "error", err, "path", logsDir)
	}

	LogFilePath = logging.LogFilePath(logsDir, ExtensionName, Session.Start)
	if _, err := os.Stat(LogFilePath); err == nil {
		_ = os.Rename(LogFilePath, LogFilePath+".old")
	}

	var err error
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
		LogFile = nil
	}

	var fileSink io.Writer
	if LogFile != nil {
		fileSink = LogFile
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			ServiceVersion: CurrentExtensionVersion,
			BatchTimeout:   otelCfg.BatchTimeout,
			LogWriter:      fileSink,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
			OTelProvider = nil
		} else {
			Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
		}
	}

	var extra []slog.Handler
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.DialGELF(gl.Address, ExtensionName)
		if err != nil {
			Logger.Error("Failed to connect to Graylog", "error", err, "address", gl.Address)
		} else {
			extra = append(extra, logging.NewGELFHandler(w, ExtensionName, logging.ParseLevel(gl.Level)))
		}
	}

	// Re-setup logging with file output, optional OTel and GELF
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	// OTel writes its own records to the file sink
	if otelLogProvider != nil && otelCfg.Endpoint == "" {
		fileSink = nil
	}
	SlogManager.Setup(fileSink, config.GetString("logLevel"), otelLogProvider, extra...)
	Logger = SlogManager.Logger()
	slog.SetDefault(Logger)
	Logger.Info("Logging to file", "path", LogFilePath)

	ZLogger = newZeroLogger(config.GetString("logLevel"))
}

func newZeroLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: time.RFC3339}}
	if LogFile != nil {
		writers = append(writers, LogFile)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Str("module", ExtensionName).
		Logger()
}

func setupInterface() (err error) {
	fpvinterface.SetVersion(CurrentExtensionVersion)

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(ZLogger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	registerHandlers(eventDispatcher)
	fpvinterface.SetDispatcher(eventDispatcher)
	return nil
}

// shutdown drains the buffered handlers before their sinks close.
func shutdown() {
	if eventDispatcher != nil {
		eventDispatcher.Close()
		if n := eventDispatcher.Dropped(); n > 0 {
			Logger.Warn("Dispatcher dropped events", "count", n)
		}
	}
	stopServices()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("OTel shutdown failed", "error", err)
		}
	}
	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Warn("Log flush failed", "error", err)
	}
	if LogFile != nil {
		_ = LogFile.Sync()
	}
}

// main runs the module standalone: it starts the services and prints the
// status until enter is pressed.
func main() {
	Logger.Info("Starting up...", "version", CurrentExtensionVersion, "addonFolder", AddonFolder)

	if err := startServices(context.Background()); err != nil {
		Logger.Error("Service startup failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(fpvinterface.Handle(":STATUS:", nil))
	fmt.Println("Press enter to exit.")
	_, _ = fmt.Scanln()

	shutdown()
}
