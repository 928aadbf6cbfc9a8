package fpvinterface

import (
	"sync"

	"github.com/dynfpv/extension/internal/dispatcher"
)

type configStruct struct {
	mu sync.RWMutex

	// version is returned by FpvVersion before any handler is registered
	version string

	dispatcher *dispatcher.Dispatcher
}

// Config defines how calls into the module are handled
var Config = &configStruct{version: "No version set"}

// SetVersion sets the string returned by FpvVersion
func SetVersion(version string) {
	Config.mu.Lock()
	defer Config.mu.Unlock()
	Config.version = version
}

// Version returns the configured version string
func Version() string {
	Config.mu.RLock()
	defer Config.mu.RUnlock()
	return Config.version
}

// SetDispatcher sets the event dispatcher for handling commands
func SetDispatcher(d *dispatcher.Dispatcher) {
	Config.mu.Lock()
	defer Config.mu.Unlock()
	Config.dispatcher = d
}

// GetDispatcher returns the configured dispatcher, or nil if not set
func GetDispatcher() *dispatcher.Dispatcher {
	Config.mu.RLock()
	defer Config.mu.RUnlock()
	return Config.dispatcher
}
