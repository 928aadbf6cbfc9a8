// Package bridge runs the camera against frames pushed by the game-side
// shim and turns the camera calls into a command list for the reply.
package bridge

import (
	"sync"
)

// DefaultQueueLimit bounds the commands held between two replies.
const DefaultQueueLimit = 512

// Ticker is the part of camera.Script driven by Step.
type Ticker interface {
	Tick()
	Active() bool
}

// Response is returned to the shim for every frame.
type Response struct {
	Active   bool      `json:"active"`
	Commands []Command `json:"commands"`
	// Dropped counts commands lost to the queue limit since startup.
	Dropped uint64 `json:"dropped,omitempty"`
}

// Bridge serializes every call into the camera.
type Bridge struct {
	mu   sync.Mutex
	host *Host
}

func New(limit int) *Bridge {
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	return &Bridge{host: newHost(limit)}
}

// Host is the surface to build the camera.Script with.
func (b *Bridge) Host() *Host {
	return b.host
}

// Step installs f and runs one tick.
func (b *Bridge) Step(f Frame, t Ticker) Response {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.host.setFrame(f)
	t.Tick()
	return Response{
		Active:   t.Active(),
		Commands: b.drain(),
		Dropped:  b.host.cmds.Dropped(),
	}
}

// Do runs fn under the tick lock against the last frame and returns the
// commands it produced.
func (b *Bridge) Do(fn func()) []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
	return b.drain()
}

// Pending returns how many commands wait for the next reply.
func (b *Bridge) Pending() int {
	return b.host.cmds.Len()
}

func (b *Bridge) drain() []Command {
	cmds := b.host.cmds.Drain()
	if cmds == nil {
		return []Command{}
	}
	return cmds
}
