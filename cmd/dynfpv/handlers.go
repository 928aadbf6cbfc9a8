package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dynfpv/extension/internal/bridge"
	"github.com/dynfpv/extension/internal/config"
	"github.com/dynfpv/extension/internal/dispatcher"
	"github.com/dynfpv/extension/internal/influx"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/monitor"
	"github.com/dynfpv/extension/internal/storage"
	"github.com/dynfpv/extension/internal/util"
)

const storeTimeout = 10 * time.Second

// activeConfigReply describes the config resolved for the current vehicle.
type activeConfigReply struct {
	Name     string   `json:"name"`
	SaveType string   `json:"saveType"`
	Model    string   `json:"model,omitempty"`
	Plate    string   `json:"plate,omitempty"`
	CamIndex int      `json:"camIndex"`
	Mounts   []string `json:"mounts"`
}

// commandsReply carries the camera calls a command produced outside a frame.
type commandsReply struct {
	Value    any              `json:"value,omitempty"`
	Commands []bridge.Command `json:"commands"`
}

func arg(e dispatcher.Event, i int) (string, error) {
	if i >= len(e.Args) {
		return "", fmt.Errorf("%s: missing argument %d", e.Command, i+1)
	}
	return util.CleanArg(e.Args[i]), nil
}

func intArg(e dispatcher.Event, i int) (int, error) {
	s, err := arg(e, i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d: %w", e.Command, i+1, err)
	}
	return n, nil
}

func boolArg(e dispatcher.Event, i int) (bool, error) {
	s, err := arg(e, i)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%s: argument %d: %w", e.Command, i+1, err)
	}
	return b, nil
}

func registerHandlers(d *dispatcher.Dispatcher) {
	registerLifecycleHandlers(d)
	registerCameraHandlers(d)
	registerConfigHandlers(d)
	registerTelemetryHandlers(d)
}

func registerLifecycleHandlers(d *dispatcher.Dispatcher) {
	d.Register(":VERSION:", func(e dispatcher.Event) (any, error) {
		return []string{CurrentExtensionVersion, BuildDate}, nil
	})

	d.Register(":GETDIR:MODULE:", func(e dispatcher.Event) (any, error) {
		return ModulePath, nil
	})

	d.Register(":GETDIR:LOG:", func(e dispatcher.Event) (any, error) {
		return LogFilePath, nil
	})

	d.Register(":INIT:", func(e dispatcher.Event) (any, error) {
		if err := startServices(context.Background()); err != nil {
			return nil, err
		}
		return d.Commands(), nil
	}, dispatcher.Logged())

	d.Register(":SHUTDOWN:", func(e dispatcher.Event) (any, error) {
		shutdown()
		return "ok", nil
	}, dispatcher.Logged())

	d.Register(":STATUS:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		mon := svc.monitor
		if mon == nil {
			mon = monitor.NewService(monitor.Dependencies{
				Camera:  svc.script,
				Session: Session,
				Pending: svc.bridge.Pending,
			})
		}
		st, _ := mon.GetProgramStatus(time.Now())
		return st, nil
	})
}

func registerCameraHandlers(d *dispatcher.Dispatcher) {
	// one tick; the reply carries the camera calls for this frame
	d.Register(":FRAME:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		if len(e.Args) == 0 {
			return nil, fmt.Errorf("%s: missing frame", e.Command)
		}
		frame, err := bridge.ParseFrame(e.Args[0])
		if err != nil {
			return nil, err
		}
		return svc.bridge.Step(frame, svc.script), nil
	})

	d.Register(":CANCEL:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		return commandsReply{Commands: svc.bridge.Do(svc.script.Cancel)}, nil
	}, dispatcher.Logged())

	d.Register(":HIDEHEAD:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		hide, err := boolArg(e, 0)
		if err != nil {
			return nil, err
		}
		cmds := svc.bridge.Do(func() { svc.script.HideHead(hide) })
		return commandsReply{Value: hide, Commands: cmds}, nil
	})

	d.Register(":SETTINGS:ENABLE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		enable, err := boolArg(e, 0)
		if err != nil {
			return nil, err
		}
		st := svc.script.Settings()
		st.Enable = enable
		svc.script.SetSettings(st)
		if err := config.SaveScriptSettings(st); err != nil {
			Logger.Warn("Settings not persisted", "error", err)
		}
		return enable, nil
	}, dispatcher.Logged())

	d.Register(":MOUNT:SELECT:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		i, err := intArg(e, 0)
		if err != nil {
			return nil, err
		}
		var sel int
		svc.bridge.Do(func() { sel, err = svc.script.SelectMount(i) })
		return sel, err
	})

	d.Register(":MOUNT:ADD:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		name, _ := arg(e, 0)
		var i int
		svc.bridge.Do(func() { i, err = svc.script.AddMount(name) })
		return i, err
	}, dispatcher.Logged())

	d.Register(":MOUNT:REMOVE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		i, err := intArg(e, 0)
		if err != nil {
			return nil, err
		}
		svc.bridge.Do(func() { err = svc.script.RemoveMount(i) })
		if err != nil {
			return nil, err
		}
		return "ok", nil
	}, dispatcher.Logged())

	d.Register(":MOUNT:MOVE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		from, err := intArg(e, 0)
		if err != nil {
			return nil, err
		}
		to, err := intArg(e, 1)
		if err != nil {
			return nil, err
		}
		svc.bridge.Do(func() { err = svc.script.MoveMount(from, to) })
		if err != nil {
			return nil, err
		}
		return "ok", nil
	}, dispatcher.Logged())
}

func registerConfigHandlers(d *dispatcher.Dispatcher) {
	d.Register(":CONFIG:ACTIVE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		var reply *activeConfigReply
		svc.bridge.Do(func() {
			cfg := svc.script.ActiveConfig()
			if cfg == nil {
				return
			}
			reply = &activeConfigReply{
				Name:     cfg.Name,
				SaveType: model.SaveTypeOf(*cfg).String(),
				Model:    cfg.ModelName,
				Plate:    cfg.Plate,
				CamIndex: cfg.CamIndex,
			}
			for _, m := range cfg.Mounts {
				reply.Mounts = append(reply.Mounts, m.Name)
			}
		})
		if reply == nil {
			return nil, fmt.Errorf("%s: no active config", e.Command)
		}
		return reply, nil
	})

	d.Register(":CONFIG:RELOAD:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		configs, err := storage.Load(ctx, svc.store, ModelNames, Logger)
		if err != nil {
			return nil, err
		}
		svc.script.RequestReload(configs)
		return len(configs), nil
	}, dispatcher.Logged())

	d.Register(":CONFIG:SAVE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		var configs []model.VehicleConfig
		svc.bridge.Do(func() { configs = svc.script.Configs() })
		for i := range configs {
			configs[i] = storage.ForSave(configs[i])
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := svc.store.SaveAll(ctx, configs); err != nil {
			return nil, err
		}
		return len(configs), nil
	}, dispatcher.Buffered(4), dispatcher.Logged())

	// args: name, withPlate
	d.Register(":CONFIG:CREATE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		name, err := arg(e, 0)
		if err != nil {
			return nil, err
		}
		withPlate := false
		if len(e.Args) > 1 {
			if withPlate, err = boolArg(e, 1); err != nil {
				return nil, err
			}
		}

		var cfg model.VehicleConfig
		svc.bridge.Do(func() { cfg, err = svc.script.CreateConfig(name, withPlate) })
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := svc.store.Save(ctx, storage.ForSave(cfg)); err != nil {
			return nil, fmt.Errorf("config %q created but not saved: %w", cfg.Name, err)
		}
		return model.SaveTypeOf(cfg).String(), nil
	}, dispatcher.Logged())

	d.Register(":CONFIG:DELETE:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		name, err := arg(e, 0)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(name, model.DefaultConfigName) {
			return nil, fmt.Errorf("%s: %s cannot be deleted", e.Command, model.DefaultConfigName)
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := svc.store.Delete(ctx, name); err != nil {
			return nil, err
		}
		configs, err := storage.Load(ctx, svc.store, ModelNames, Logger)
		if err != nil {
			return nil, err
		}
		svc.script.RequestReload(configs)
		return "ok", nil
	}, dispatcher.Logged())

	d.Register(":MODEL:NAMES:", func(e dispatcher.Event) (any, error) {
		names := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			names = append(names, util.CleanArg(a))
		}
		added := ModelNames.AddNames(names)
		Logger.Debug("Model names added", "added", added, "total", ModelNames.Len())
		return added, nil
	})
}

func registerTelemetryHandlers(d *dispatcher.Dispatcher) {
	// args: function, message, level
	d.Register(":LOG:", func(e dispatcher.Event) (any, error) {
		if len(e.Args) < 2 {
			return nil, fmt.Errorf("%s: need function and message", e.Command)
		}
		level := "INFO"
		if len(e.Args) > 2 {
			level = util.CleanArg(e.Args[2])
		}
		SlogManager.WriteLog(util.CleanArg(e.Args[0]), util.CleanArg(e.Args[1]), level)
		return nil, nil
	}, dispatcher.Buffered(500))

	d.Register(":METRIC:", func(e dispatcher.Event) (any, error) {
		svc, err := getServices()
		if err != nil {
			return nil, err
		}
		if svc.influx == nil {
			return nil, influx.ErrDisabled
		}
		bucket, point, err := influx.ParseMetric(e.Args)
		if err != nil {
			return nil, err
		}
		return nil, svc.influx.WritePoint(bucket, point)
	}, dispatcher.Buffered(1000))
}
