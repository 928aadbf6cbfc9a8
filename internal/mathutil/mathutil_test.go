package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name                            string
		x, inMin, inMax, outMin, outMax float32
		want                            float32
	}{
		{"midpoint", 5, 0, 10, 0, 100, 50},
		{"inverted output", 0.25, 0, 1, 1, 0, 0.75},
		{"extrapolates", 20, 0, 10, 0, 1, 2},
		{"degenerate range", 3, 1, 1, 7, 9, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Map(tt.x, tt.inMin, tt.inMax, tt.outMin, tt.outMax), 1e-5)
		})
	}
}

func TestMapClamped(t *testing.T) {
	assert.InDelta(t, 1.0, MapClamped(20, 0, 10, 0, 1), 1e-6)
	assert.InDelta(t, 0.0, MapClamped(20, 0, 10, 1, 0), 1e-6)
	assert.InDelta(t, 1.0, MapClamped(-5, 0, 10, 1, 0), 1e-6)
}

func TestSmoothFactor(t *testing.T) {
	assert.Equal(t, float32(0), SmoothFactor(0.5, 0))
	assert.Equal(t, float32(0), SmoothFactor(0.5, -1))
	assert.InDelta(t, 0.5, SmoothFactor(0.5, 1), 1e-6)
	assert.InDelta(t, 0.75, SmoothFactor(0.5, 2), 1e-6)
}

func TestSmooth_ConvergesMonotonically(t *testing.T) {
	for _, dt := range []float32{0.001, 0.016, 0.1, 0.5, 1} {
		v := float32(0)
		prevDist := float32(10)
		for i := 0; i < 20000; i++ {
			v = Smooth(v, 10, 1e-3, dt)
			dist := 10 - v
			assert.GreaterOrEqual(t, dist, float32(0))
			assert.LessOrEqual(t, dist, prevDist)
			prevDist = dist
		}
		assert.InDelta(t, 10, v, 1e-3, "dt=%v", dt)
	}
}

func TestSmooth_ZeroDtKeepsValue(t *testing.T) {
	assert.Equal(t, float32(3), Smooth(3, 10, 0.1, 0))
}

func TestWrap360(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap360(tt.in), 1e-4, "in=%v", tt.in)
	}
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, float32(1), Min(1, 2))
	assert.Equal(t, float32(2), Max(1, 2))
}

func TestSgn(t *testing.T) {
	assert.Equal(t, float32(1), Sgn(3))
	assert.Equal(t, float32(-1), Sgn(-0.1))
	assert.Equal(t, float32(0), Sgn(0))
}
