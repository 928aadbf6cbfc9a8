package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dynfpv/extension/internal/bridge"
	"github.com/dynfpv/extension/internal/camera"
	"github.com/dynfpv/extension/internal/config"
	"github.com/dynfpv/extension/internal/database"
	"github.com/dynfpv/extension/internal/influx"
	"github.com/dynfpv/extension/internal/monitor"
	"github.com/dynfpv/extension/internal/shake"
	"github.com/dynfpv/extension/internal/storage"

	"gorm.io/gorm"
)

// ErrNotReady is returned by commands that need the camera before :INIT: finished.
var ErrNotReady = errors.New("not initialized, send :INIT: first")

// services is everything built by :INIT:.
type services struct {
	script  *camera.Script
	bridge  *bridge.Bridge
	store   storage.Store
	db      *database.Manager
	influx  *influx.Manager
	monitor *monitor.Service
	watcher *storage.Watcher
	cancel  context.CancelFunc
}

var (
	current   atomic.Pointer[services]
	startOnce sync.Once
	startErr  error
)

func getServices() (*services, error) {
	svc := current.Load()
	if svc == nil {
		return nil, ErrNotReady
	}
	return svc, nil
}

// startServices builds the camera and its support services once.
func startServices(ctx context.Context) error {
	startOnce.Do(func() {
		startErr = buildServices(ctx)
		if startErr != nil {
			Logger.Error("Failed to start services", "error", startErr)
		}
	})
	return startErr
}

func buildServices(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	svc := &services{cancel: cancel}
	fail := func(err error) error {
		cancel()
		if svc.store != nil {
			_ = svc.store.Close()
		}
		if svc.influx != nil {
			_ = svc.influx.Close()
		}
		if svc.db != nil {
			_ = svc.db.Close()
		}
		return err
	}

	storageCfg := config.GetStorageConfig()
	storageCfg.ConfigsDir = resolvePath(storageCfg.ConfigsDir)

	svc.db = connectDatabase(storageCfg)
	storeType := storageCfg.Type
	if storeType != storage.TypeYAML && (svc.db == nil || !svc.db.IsValid) {
		Logger.Warn("Database unavailable, using YAML configs", "storage", storeType)
		storeType = storage.TypeYAML
	}

	var err error
	svc.store, err = storage.NewStore(storeType, storageCfg.ConfigsDir, svc.gormDB(), Logger)
	if err != nil {
		return fail(fmt.Errorf("open config store: %w", err))
	}

	configs, err := storage.Load(ctx, svc.store, ModelNames, Logger)
	if err != nil {
		return fail(fmt.Errorf("load configs: %w", err))
	}
	Logger.Info("Vehicle configs loaded", "count", len(configs), "storage", storeType)

	table := shake.DefaultTable()
	if path := resolvePath(config.GetString("shake.file")); path != "" {
		if t, err := shake.LoadTable(path); err != nil {
			Logger.Warn("Failed to load shake table, using built-in", "error", err)
		} else {
			table = t
		}
	}

	var recorder camera.Recorder
	if ic := config.GetInfluxConfig(); ic.Enabled {
		svc.influx = influx.NewManager(ZLogger.With().Str("component", "influx").Logger(), influx.Config{
			Enabled:     ic.Enabled,
			Protocol:    ic.Protocol,
			Host:        ic.Host,
			Port:        ic.Port,
			Token:       ic.Token,
			Org:         ic.Org,
			BackupPath:  resolvePath(fmt.Sprintf("%s_frames_%s.lp.gz", ExtensionName, Session.Start.Format("20060102_150405"))),
			SampleEvery: ic.SampleEvery,
		})
		connectCtx, done := context.WithTimeout(ctx, 5*time.Second)
		err := svc.influx.Connect(connectCtx)
		done()
		if err != nil {
			Logger.Error("InfluxDB setup failed, frames are not recorded", "error", err)
		} else {
			recorder = influx.NewFrameRecorder(svc.influx, ic.SampleEvery)
		}
	}

	svc.bridge = bridge.New(bridge.DefaultQueueLimit)
	svc.script, err = camera.New(camera.Dependencies{
		Host:       svc.bridge.Host(),
		Compat:     svc.bridge.Host(),
		Settings:   config.GetScriptSettings(),
		Configs:    configs,
		ShakeTable: table,
		ModelNames: ModelNames,
		Session:    Session,
		Recorder:   recorder,
		Logger:     Logger.With("component", "camera"),
		Seed:       time.Now().UnixNano(),
	})
	if err != nil {
		return fail(err)
	}

	if storageCfg.Watch && storeType == storage.TypeYAML {
		svc.watcher, err = storage.NewWatcher(storageCfg.ConfigsDir)
		if err != nil {
			Logger.Warn("Config hot reload disabled", "error", err)
		} else {
			go storage.WatchReload(ctx, svc.watcher, svc.store, ModelNames, Logger, svc.script.RequestReload)
		}
	}

	if mc := config.GetMonitorConfig(); mc.Enabled {
		deps := monitor.Dependencies{
			Camera:      svc.script,
			Session:     Session,
			Logger:      Logger.With("component", "monitor"),
			AddonFolder: AddonFolder,
			Interval:    mc.Interval,
			Pending:     svc.bridge.Pending,
		}
		if mc.DBStats && svc.db != nil && svc.db.IsValid {
			deps.DB = svc.db
		}
		if svc.influx != nil {
			deps.Influx = svc.influx
		}
		svc.monitor = monitor.NewService(deps)
		if err := svc.monitor.Start(); err != nil {
			Logger.Warn("Status monitor not started", "error", err)
		}
	}

	current.Store(svc)
	Logger.Info("Camera ready", "configs", len(configs))
	return nil
}

func (s *services) gormDB() *gorm.DB {
	if s.db == nil || !s.db.IsValid {
		return nil
	}
	return s.db.DB
}

// connectDatabase opens the database when the store or the monitor needs it.
func connectDatabase(sc config.StorageConfig) *database.Manager {
	needed := sc.Type == storage.TypeSQLite || sc.Type == storage.TypePostgres || config.GetMonitorConfig().DBStats
	if !needed {
		return nil
	}

	dc := config.GetDBConfig()
	driver := database.DriverSQLite
	if sc.Type == storage.TypePostgres {
		driver = database.DriverPostgres
	}
	m := database.NewManager(ZLogger.With().Str("component", "database").Logger(), database.Config{
		Driver:     driver,
		SQLitePath: resolvePath(sc.SQLitePath),
		Host:       dc.Host,
		Port:       dc.Port,
		Username:   dc.Username,
		Password:   dc.Password,
		Database:   dc.Database,
	})
	if err := m.Connect(); err != nil {
		Logger.Error("Database connection failed", "error", err)
		return nil
	}
	if err := m.Setup(); err != nil {
		Logger.Error("Database setup failed", "error", err)
		return nil
	}
	if m.Fallback {
		Logger.Warn("Postgres unreachable, configs are stored in SQLite", "path", sc.SQLitePath)
	}
	return m
}

// stopServices tears down everything started by startServices.
func stopServices() {
	svc := current.Swap(nil)
	if svc == nil {
		return
	}
	svc.cancel()

	if svc.monitor != nil {
		svc.monitor.Stop()
	}
	if svc.watcher != nil {
		_ = svc.watcher.Close()
	}
	svc.bridge.Do(svc.script.Cancel)

	var errs []error
	errs = append(errs, svc.store.Close())
	if svc.influx != nil {
		errs = append(errs, svc.influx.Close())
	}
	if svc.db != nil {
		errs = append(errs, svc.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		Logger.Warn("Errors while stopping services", "error", err)
	}
	Logger.Info("Services stopped")
}
