package influx

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dynfpv/extension/internal/camera"
	"github.com/dynfpv/extension/internal/util"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementFrame  = "camera_frame"
	MeasurementStatus = "extension_status"
)

// FramePoint converts a camera frame to a point.
func FramePoint(f camera.Frame, at time.Time) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MeasurementFrame).
		AddTag("model", fmt.Sprintf("0x%08X", f.ModelHash)).
		AddTag("config", f.Config).
		AddTag("mount", f.Mount).
		AddTag("lookSource", f.LookSource).
		AddField("speed", f.Speed).
		AddField("accelX", f.Acceleration.X()).
		AddField("accelY", f.Acceleration.Y()).
		AddField("accelZ", f.Acceleration.Z()).
		AddField("centripetalX", f.Centripetal.X()).
		AddField("inertiaYaw", f.Inertia.DirectionYaw).
		AddField("inertiaPitch", f.Inertia.Pitch).
		AddField("moveX", f.Inertia.Move.X()).
		AddField("moveY", f.Inertia.Move.Y()).
		AddField("moveZ", f.Inertia.Move.Z()).
		AddField("lookPitch", f.LookPitch).
		AddField("lookYaw", f.LookYaw).
		AddField("rotPitch", f.Rotation.X()).
		AddField("rotRoll", f.Rotation.Y()).
		AddField("rotYaw", f.Rotation.Z()).
		AddField("dofNearOut", f.DoF.NearOut()).
		AddField("dofNearIn", f.DoF.NearIn()).
		AddField("dofFarIn", f.DoF.FarIn()).
		AddField("dofFarOut", f.DoF.FarOut()).
		AddField("shakeLateral", f.Shake.Lateral).
		AddField("shakeVertical", f.Shake.Vertical).
		AddField("shakeRoll", f.Shake.Roll)
	return p.SetTime(at)
}

// StatusPoint converts the camera counters to a point.
func StatusPoint(s camera.Stats, active bool, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement(MeasurementStatus).
		AddField("frames", int64(s.Frames)).
		AddField("activeFrames", int64(s.ActiveFrames)).
		AddField("activations", int64(s.Activations)).
		AddField("cancels", int64(s.Cancels)).
		AddField("cameraActive", active).
		SetTime(at)
}

// PointWriter is the write side of Manager.
type PointWriter interface {
	WritePoint(bucket string, point *influxdb2_write.Point) error
}

// FrameRecorder samples camera frames into the frames bucket.
type FrameRecorder struct {
	w     PointWriter
	every uint64
	n     atomic.Uint64
	now   func() time.Time
	// Errors counts failed writes.
	Errors atomic.Uint64
}

// NewFrameRecorder records one frame out of every n (n < 1 records all).
func NewFrameRecorder(w PointWriter, every int) *FrameRecorder {
	if every < 1 {
		every = 1
	}
	return &FrameRecorder{w: w, every: uint64(every), now: time.Now}
}

// RecordFrame implements camera.Recorder.
func (r *FrameRecorder) RecordFrame(f camera.Frame) {
	if (r.n.Add(1)-1)%r.every != 0 {
		return
	}
	if err := r.w.WritePoint(BucketFrames, FramePoint(f, r.now())); err != nil {
		r.Errors.Add(1)
	}
}

// ParseMetric builds a point from a metric sent by the game-side script.
// Arguments: bucket, measurement, then any number of "tag::name::value" and
// "field::type::name::value" entries where type is string, int, float or bool.
func ParseMetric(args []string) (string, *influxdb2_write.Point, error) {
	if len(args) < 2 {
		return "", nil, fmt.Errorf("influx: metric needs bucket and measurement, got %d args", len(args))
	}
	data := make([]string, len(args))
	for i, v := range args {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	bucket := data[0]
	point := influxdb2_write.NewPointWithMeasurement(data[1])

	for _, entry := range data[2:] {
		parts := strings.Split(entry, "::")
		switch {
		case parts[0] == "tag" && len(parts) >= 3:
			point.AddTag(parts[1], parts[2])
		case parts[0] == "field" && len(parts) >= 4:
			name, value := parts[2], parts[3]
			switch parts[1] {
			case "string":
				point.AddField(name, value)
			case "int":
				v, err := strconv.Atoi(value)
				if err != nil {
					return "", nil, fmt.Errorf("influx: field %s: %w", name, err)
				}
				point.AddField(name, v)
			case "float":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return "", nil, fmt.Errorf("influx: field %s: %w", name, err)
				}
				point.AddField(name, v)
			case "bool":
				v, err := strconv.ParseBool(value)
				if err != nil {
					return "", nil, fmt.Errorf("influx: field %s: %w", name, err)
				}
				point.AddField(name, v)
			}
		}
	}
	return bucket, point.SetTime(time.Now()), nil
}
