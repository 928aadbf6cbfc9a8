package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/dynfpv/extension/internal/model"
)

// reloadSettle waits for a burst of file events to finish before reloading.
const reloadSettle = 250 * time.Millisecond

// WatchReload reloads the store after file changes settle and hands the
// result to apply. It returns when ctx is done or the watcher closes.
func WatchReload(ctx context.Context, w *Watcher, s Store, names ModelNames, log *slog.Logger, apply func([]model.VehicleConfig)) {
	if log == nil {
		log = slog.Default()
	}
	timer := time.NewTimer(reloadSettle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			log.Debug("config file changed", "file", name)
			timer.Reset(reloadSettle)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "error", err)
		case <-timer.C:
			configs, err := Load(ctx, s, names, log)
			if err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}
			apply(configs)
		}
	}
}
