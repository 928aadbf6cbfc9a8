package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_Defaults(t *testing.T) {
	ctx := NewContext()

	cfg, mount := ctx.GetActiveConfig()
	assert.Equal(t, "No config loaded", cfg)
	assert.Empty(t, mount)
	assert.False(t, ctx.IsCameraActive())
	assert.Equal(t, Vehicle{}, ctx.GetVehicle())
	assert.False(t, ctx.Start.IsZero())
}

func TestContext_ThreadSafe(t *testing.T) {
	ctx := NewContext()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			ctx.SetVehicle(Vehicle{ModelHash: uint32(i), ModelName: "adder"})
			ctx.SetActiveConfig("Adder", "Hood")
			ctx.SetCameraActive(i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = ctx.GetVehicle()
			_, _ = ctx.GetActiveConfig()
			_ = ctx.IsCameraActive()
		}()
	}
	wg.Wait()

	assert.Equal(t, "adder", ctx.GetVehicle().ModelName)
	cfg, mount := ctx.GetActiveConfig()
	assert.Equal(t, "Adder", cfg)
	assert.Equal(t, "Hood", mount)
}
