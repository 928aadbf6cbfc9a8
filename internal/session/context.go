package session

import (
	"sync"
	"time"
)

// Vehicle describes the vehicle the player currently occupies.
type Vehicle struct {
	ModelHash uint32
	ModelName string
	Plate     string
}

// Context holds the live session state shared with logging and the status monitor.
type Context struct {
	mu           sync.RWMutex
	Start        time.Time
	Vehicle      Vehicle
	ActiveConfig string
	ActiveMount  string
	CameraActive bool
}

// NewContext creates a new Context with default values
func NewContext() *Context {
	return &Context{
		Start:        time.Now(),
		ActiveConfig: "No config loaded",
	}
}

// GetVehicle returns the occupied vehicle
func (c *Context) GetVehicle() Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Vehicle
}

// SetVehicle sets the occupied vehicle
func (c *Context) SetVehicle(v Vehicle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Vehicle = v
}

// GetActiveConfig returns the active config and mount names
func (c *Context) GetActiveConfig() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ActiveConfig, c.ActiveMount
}

// SetActiveConfig sets the active config and mount names
func (c *Context) SetActiveConfig(config, mount string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ActiveConfig = config
	c.ActiveMount = mount
}

// IsCameraActive reports whether the scripted camera is rendering
func (c *Context) IsCameraActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CameraActive
}

// SetCameraActive records whether the scripted camera is rendering
func (c *Context) SetCameraActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CameraActive = active
}
