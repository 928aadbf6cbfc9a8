package camera

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/dynfpv/extension/internal/camera"

type metrics struct {
	frames       metric.Int64Counter
	activations  metric.Int64Counter
	cancels      metric.Int64Counter
	tickDuration metric.Float64Histogram
}

// newMetrics uses the global OTel meter (no-op if not configured).
func newMetrics() (*metrics, error) {
	m := otel.Meter(instrumentationName)
	out := &metrics{}

	var err error
	out.frames, err = m.Int64Counter(
		"camera.frames",
		metric.WithDescription("Frames ticked while the camera was active"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	out.activations, err = m.Int64Counter(
		"camera.activations",
		metric.WithDescription("Times the scripted camera was created"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating activations counter: %w", err)
	}

	out.cancels, err = m.Int64Counter(
		"camera.cancels",
		metric.WithDescription("Times the scripted camera was torn down"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cancels counter: %w", err)
	}

	out.tickDuration, err = m.Float64Histogram(
		"camera.tick.duration",
		metric.WithDescription("Time spent in one tick"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick histogram: %w", err)
	}

	return out, nil
}
