// Package shake produces procedural camera jitter from speed and road surface.
package shake

import (
	"github.com/aquilax/go-perlin"
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
)

const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// metresPerUnit scales unit amplitude to camera displacement.
	metresPerUnit = 0.01
	// degreesPerUnit scales unit amplitude to camera roll.
	degreesPerUnit = 0.5

	// terrainFadeInSpeed is the speed in m/s at which terrain shake is fully on.
	terrainFadeInSpeed = 3.0
)

// channel offsets sample independent rows of the 2D noise field.
const (
	rowLateral  = 0.37
	rowVertical = 11.71
	rowRoll     = 23.13
)

// Input is the per-frame state the engine reads.
type Input struct {
	Speed      float32
	SpeedRatio float32
	RPM        float32
	Grounded   []bool
	Materials  []uint16
	FrameTime  float32
	TimeScale  float32
}

func (in Input) allGrounded() bool {
	if len(in.Grounded) == 0 {
		return false
	}
	for _, g := range in.Grounded {
		if !g {
			return false
		}
	}
	return true
}

// Output is the combined jitter: lateral and vertical in metres, roll in degrees.
type Output struct {
	Lateral  float32
	Vertical float32
	Roll     float32
}

func (o Output) add(p Output) Output {
	return Output{o.Lateral + p.Lateral, o.Vertical + p.Vertical, o.Roll + p.Roll}
}

// Engine owns two noise generators and their phases.
type Engine struct {
	table   *Table
	speed   *perlin.Perlin
	terrain *perlin.Perlin

	speedPhase   float64
	terrainPhase float64
}

// New creates an engine over table. A nil table uses DefaultTable.
func New(table *Table, seed int64) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	return &Engine{
		table:   table,
		speed:   perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		terrain: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+1),
	}
}

// Reset zeroes both phases. Called only when the camera is (re)created.
func (e *Engine) Reset() {
	e.speedPhase = 0
	e.terrainPhase = 0
}

// Phases returns the speed and terrain phases.
func (e *Engine) Phases() (float64, float64) {
	return e.speedPhase, e.terrainPhase
}

// Update advances both phases and returns the summed jitter for movement m.
func (e *Engine) Update(in Input, m model.Movement) Output {
	elapsed := float64(in.FrameTime * in.TimeScale)
	sr := mathutil.Clamp(in.SpeedRatio, 0, 1)
	env := e.table.Envelope
	rates := e.table.BaseRates

	speedRate := mathutil.Lerp(rates.MinRateModSpd, rates.MaxRateModSpd, sr)
	e.speedPhase += elapsed * float64(speedRate)

	var speedAmp float32
	if in.allGrounded() {
		speedAmp = m.ShakeSpeed *
			mathutil.MapClamped(in.SpeedRatio, env.SpeedRatioMin, env.SpeedRatioMax, 0, 1) *
			mathutil.MapClamped(in.RPM, env.RPMMin, env.RPMMax, 0, 1)
	}

	amp, freq := e.surface(in)
	terrainRate := freq * mathutil.Lerp(rates.MinRateModTrn, rates.MaxRateModTrn, sr)
	e.terrainPhase += elapsed * float64(terrainRate)

	terrainAmp := m.ShakeTerrain * amp *
		mathutil.MapClamped(in.Speed, 0, terrainFadeInSpeed, 0, 1) *
		(1 - mathutil.MapClamped(in.SpeedRatio, env.SpeedRatioMin, env.SpeedRatioMax, 0, 1))

	return sample(e.speed, e.speedPhase, speedAmp).add(sample(e.terrain, e.terrainPhase, terrainAmp))
}

// surface averages reaction amplitude and frequency over grounded wheels.
func (e *Engine) surface(in Input) (amp, freq float32) {
	var n int
	for i, g := range in.Grounded {
		if !g || i >= len(in.Materials) {
			continue
		}
		r := e.table.Reaction(in.Materials[i])
		amp += r.Amplitude
		freq += r.Frequency
		n++
	}
	if n == 0 {
		return 0, 1
	}
	return amp / float32(n), freq / float32(n)
}

func sample(p *perlin.Perlin, phase float64, amp float32) Output {
	if amp == 0 {
		return Output{}
	}
	return Output{
		Lateral:  amp * metresPerUnit * float32(p.Noise2D(phase, rowLateral)),
		Vertical: amp * metresPerUnit * float32(p.Noise2D(phase, rowVertical)),
		Roll:     amp * degreesPerUnit * float32(p.Noise2D(phase, rowRoll)),
	}
}
