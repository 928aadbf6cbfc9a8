package camera

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dynfpv/extension/internal/host"
	"github.com/dynfpv/extension/internal/host/hosttest"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/session"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adder = 0xB779A091

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newScript(t *testing.T, h host.Host, compat host.Compat, configs []model.VehicleConfig, opts ...func(*Dependencies)) *Script {
	t.Helper()
	deps := Dependencies{
		Host:     h,
		Compat:   compat,
		Settings: model.DefaultScriptSettings(),
		Configs:  configs,
		Logger:   quietLogger(),
		Seed:     1,
	}
	for _, o := range opts {
		o(&deps)
	}
	s, err := New(deps)
	require.NoError(t, err)
	return s
}

func adderConfig(name, plate string) model.VehicleConfig {
	c := model.DefaultVehicleConfig()
	c.Name = name
	c.ModelHash = adder
	c.Plate = plate
	return c
}

func tickN(s *Script, f *hosttest.Fake, n int) {
	for i := 0; i < n; i++ {
		f.Advance()
		s.Tick()
	}
}

func TestNew_RequiresHost(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err)
}

func TestNew_EnsuresDefaultFirst(t *testing.T) {
	f := hosttest.New()

	s := newScript(t, f, f, []model.VehicleConfig{adderConfig("Adder", "")})
	cfgs := s.Configs()
	require.Len(t, cfgs, 2)
	assert.Equal(t, model.DefaultConfigName, cfgs[0].Name)
	assert.Equal(t, "Adder", cfgs[1].Name)

	def := model.DefaultVehicleConfig()
	def.Look.MouseSensitivity = 1
	s = newScript(t, f, f, []model.VehicleConfig{adderConfig("Adder", ""), def})
	cfgs = s.Configs()
	require.Len(t, cfgs, 2)
	assert.Equal(t, model.DefaultConfigName, cfgs[0].Name)
	assert.Equal(t, float32(1), cfgs[0].Look.MouseSensitivity)
}

func TestTick_ActivatesInDriverSeat(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, nil)

	s.Tick()

	require.True(t, s.Active())
	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.True(t, f.RenderingScript)
	assert.True(t, f.ParticleInside)
	assert.True(t, f.MinimapLocked)
	assert.Equal(t, 1, f.FirstPersonMarks)
	assert.Equal(t, host.Handle(100), cam.Vehicle)
	assert.Equal(t, float32(55), cam.FOV)

	stats := s.Stats()
	assert.Equal(t, uint64(1), stats.Frames)
	assert.Equal(t, uint64(1), stats.ActiveFrames)
	assert.Equal(t, uint64(1), stats.Activations)
}

func TestTick_ActivationGates(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *hosttest.Fake, st *model.ScriptSettings, cfg *model.VehicleConfig)
		active bool
	}{
		{"all conditions met", func(*hosttest.Fake, *model.ScriptSettings, *model.VehicleConfig) {}, true},
		{"on foot", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) { f.InVehicle = 0 }, false},
		{"passenger", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) { f.Driver = false }, false},
		{"third person", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) { f.FirstPerson = false }, false},
		{"no control", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) { f.Control = false }, false},
		{"aiming in car", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) { f.Aiming = true }, false},
		{"aiming in helicopter", func(f *hosttest.Fake, _ *model.ScriptSettings, _ *model.VehicleConfig) {
			f.Aiming = true
			f.Vehicle().Class = host.ClassHeli
		}, true},
		{"globally disabled", func(_ *hosttest.Fake, st *model.ScriptSettings, _ *model.VehicleConfig) { st.Enable = false }, false},
		{"config disabled", func(_ *hosttest.Fake, _ *model.ScriptSettings, cfg *model.VehicleConfig) { cfg.Enable = false }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := hosttest.New()
			st := model.DefaultScriptSettings()
			cfg := adderConfig("Adder", "")
			tt.setup(f, &st, &cfg)

			s := newScript(t, f, f, []model.VehicleConfig{cfg}, func(d *Dependencies) { d.Settings = st })
			s.Tick()

			assert.Equal(t, tt.active, s.Active())
			assert.Equal(t, tt.active, f.ActiveCamera() != nil)
		})
	}
}

func TestTick_LeavingVehicleCancels(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, nil)
	s.Tick()
	require.True(t, s.Active())

	f.InVehicle = 0
	s.Tick()

	assert.False(t, s.Active())
	assert.Nil(t, f.ActiveCamera())
	assert.False(t, f.RenderingScript)
	assert.False(t, f.MinimapLocked)
	assert.False(t, f.ParticleInside)
	assert.Nil(t, s.Vehicle())
}

func TestCancel_Idempotent(t *testing.T) {
	f := hosttest.New()
	f.LookLR = 1
	s := newScript(t, f, f, nil)
	tickN(s, f, 30)
	require.True(t, s.Active())
	require.NotZero(t, s.rt.look.Yaw)

	s.Cancel()
	assert.Equal(t, runtimeState{}, s.rt)
	assert.Equal(t, uint64(1), s.Stats().Cancels)
	sp, tp := s.shake.Phases()
	assert.Zero(t, sp)
	assert.Zero(t, tp)

	f.RenderingScript = true
	s.Cancel()
	assert.Equal(t, runtimeState{}, s.rt)
	assert.Equal(t, uint64(1), s.Stats().Cancels)
	assert.True(t, f.RenderingScript, "second cancel must not touch the host")
}

func TestTick_ResolvesOnlyOnHandleChange(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, []model.VehicleConfig{
		adderConfig("Adder", ""),
		adderConfig("Adder plate", "46EEK572"),
	})

	s.Tick()
	require.NotNil(t, s.ActiveConfig())
	assert.Equal(t, "Adder", s.ActiveConfig().Name)

	f.Vehicle().Plate = "46 eek 572"
	s.Tick()
	assert.Equal(t, "Adder", s.ActiveConfig().Name)

	car := hosttest.NewCar(adder)
	car.Plate = "46EEK572"
	f.Vehicles[101] = car
	f.InVehicle = 101
	s.Tick()
	assert.Equal(t, "Adder plate", s.ActiveConfig().Name)
	assert.Equal(t, host.Handle(101), s.Vehicle().Handle())
}

func TestTick_ConfigWithoutMountsStaysInactive(t *testing.T) {
	f := hosttest.New()
	broken := adderConfig("Broken", "")
	broken.Mounts = nil
	s := newScript(t, f, f, []model.VehicleConfig{broken})

	tickN(s, f, 3)
	assert.False(t, s.Active())

	s.RequestReload([]model.VehicleConfig{adderConfig("Fixed", "")})
	s.Tick()
	assert.True(t, s.Active())
	assert.Equal(t, "Fixed", s.ActiveConfig().Name)
}

func TestTick_ClampsCamIndex(t *testing.T) {
	f := hosttest.New()
	cfg := adderConfig("Adder", "")
	cfg.CamIndex = 5
	s := newScript(t, f, f, []model.VehicleConfig{cfg})

	s.Tick()
	assert.True(t, s.Active())
	assert.Equal(t, 0, s.ActiveConfig().CamIndex)
}

func TestTick_StationaryConverges(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, nil)
	tickN(s, f, 600)

	assert.InDelta(t, 0, s.rt.inertia.DirectionYaw, 1e-5)
	assert.InDelta(t, 0, s.rt.inertia.Move.Len(), 1e-6)
	assert.InDelta(t, 0, s.rt.inertia.Pitch, 1e-5)

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	d := model.DefaultDoF()
	assert.Equal(t, [4]float32{
		d.NearOutFocusMinSpeedDist,
		d.NearInFocusMinSpeedDist,
		d.FarInFocusMinSpeedDist,
		d.FarOutFocusMinSpeedDist,
	}, cam.DoFPlanes)
	assert.False(t, cam.DoFEnabled)

	assert.InDelta(t, 0, cam.Rotation.Len(), 1e-5)
	assert.InDelta(t, -0.4, cam.Offset.X(), 1e-5)
	assert.InDelta(t, 0.05, cam.Offset.Y(), 1e-5)
	assert.InDelta(t, 0.34, cam.Offset.Z(), 1e-5)
}

func TestTick_GamepadIntoGlass(t *testing.T) {
	f := hosttest.New()
	f.LookLR = 1
	s := newScript(t, f, f, nil)
	tickN(s, f, 300)

	assert.True(t, s.rt.intoGlass)
	assert.InDelta(t, -135, s.rt.look.Yaw, 1e-3)

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.InDelta(t, -135, cam.Rotation.Z(), 1e-3)
	assert.Equal(t, 225, f.MinimapAngle)
}

func TestTick_BrokenWindowAllowsFullYaw(t *testing.T) {
	f := hosttest.New()
	f.LookLR = 1
	f.Vehicle().BrokenWindows = map[int]bool{0: true}
	s := newScript(t, f, f, nil)
	tickN(s, f, 300)

	assert.False(t, s.rt.intoGlass)
	assert.InDelta(t, -179, s.rt.look.Yaw, 1e-3)
}

func TestTick_WheelGlance(t *testing.T) {
	f := hosttest.New()
	f.Wheel = true
	f.WheelLeft = true
	f.LookLR = 1
	s := newScript(t, f, f, nil)
	tickN(s, f, 300)

	assert.InDelta(t, 90, s.rt.look.Yaw, 1e-3)
	assert.False(t, s.rt.intoGlass)
}

func TestTick_VehicleOnlyPitchFollowsVehicle(t *testing.T) {
	f := hosttest.New()
	f.Vehicle().Rotation = mgl32.Vec3{20, 10, 0}
	cfg := adderConfig("Adder", "")
	cfg.Mounts[0].HorizonLock.Lock = true
	cfg.Mounts[0].HorizonLock.PitchMode = model.PitchVehicleOnly
	s := newScript(t, f, f, []model.VehicleConfig{cfg})

	tickN(s, f, 10)

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.InDelta(t, 20, cam.Rotation.X(), 1e-4)
	assert.InDelta(t, 0, cam.Rotation.Y(), 1e-4)
}

func TestTick_PitchBiasFollowsHeadWhenLookingSideways(t *testing.T) {
	f := hosttest.New()
	f.Wheel = true
	f.WheelLeft = true
	cfg := adderConfig("Adder", "")
	cfg.Mounts[0].Pitch = -5
	s := newScript(t, f, f, []model.VehicleConfig{cfg})

	tickN(s, f, 300)

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	// looking left at 90 degrees turns the pitch bias into roll
	assert.InDelta(t, 0, cam.Rotation.X(), 1e-3)
	assert.InDelta(t, 5, cam.Rotation.Y(), 1e-3)
}

func TestTick_PedMount(t *testing.T) {
	f := hosttest.New()
	cfg := adderConfig("Adder", "")
	cfg.Mounts[0].MountPoint = model.MountPed
	s := newScript(t, f, f, []model.VehicleConfig{cfg})

	s.Tick()

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, f.Ped, cam.Ped)
	assert.Equal(t, host.BoneHead, cam.Bone)
	assert.InDelta(t, 0.05, cam.Offset.Y(), 1e-5)
}

func TestTick_SeatCalibrationAddsToOffset(t *testing.T) {
	f := hosttest.New()
	calib := mgl32.Vec3{0, -0.1, 0.2}
	f.Vehicle().SeatCalibration = &calib
	s := newScript(t, f, f, nil)

	s.Tick()

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.InDelta(t, -0.05, cam.Offset.Y(), 1e-5)
	assert.InDelta(t, 0.54, cam.Offset.Z(), 1e-5)
}

func TestTick_NearClip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *hosttest.Fake, st *model.ScriptSettings)
		want  float32
	}{
		{"default", func(*hosttest.Fake, *model.ScriptSettings) {}, 0.15},
		{"helmet", func(f *hosttest.Fake, _ *model.ScriptSettings) { f.Helmet = true }, 0.2},
		{"head removed", func(f *hosttest.Fake, _ *model.ScriptSettings) {
			f.Dismemberment = true
			f.Helmet = true
		}, 0.05},
		{"head removal disabled", func(f *hosttest.Fake, st *model.ScriptSettings) {
			f.Dismemberment = true
			st.DisableRemoveHead = true
		}, 0.15},
		{"override", func(f *hosttest.Fake, st *model.ScriptSettings) {
			f.Dismemberment = true
			st.NearClipOverride = true
			st.NearClipDistance = 0.3
		}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := hosttest.New()
			st := model.DefaultScriptSettings()
			tt.setup(f, &st)
			s := newScript(t, f, f, nil, func(d *Dependencies) { d.Settings = st })

			s.Tick()

			cam := f.ActiveCamera()
			require.NotNil(t, cam)
			assert.InDelta(t, tt.want, cam.NearClip, 1e-6)
		})
	}
}

func TestTick_DoFOverride(t *testing.T) {
	f := hosttest.New()
	st := model.DefaultScriptSettings()
	st.DoFOverride = true
	st.DoFPlanes = [4]float32{1, 2, 3, 4}
	cfg := adderConfig("Adder", "")
	cfg.Mounts[0].DoF.Enable = true
	s := newScript(t, f, f, []model.VehicleConfig{cfg}, func(d *Dependencies) { d.Settings = st })

	s.Tick()

	cam := f.ActiveCamera()
	require.NotNil(t, cam)
	assert.True(t, cam.DoFEnabled)
	assert.Equal(t, [4]float32{1, 2, 3, 4}, cam.DoFPlanes)
}

func TestHeadAndProps(t *testing.T) {
	f := hosttest.New()
	f.Dismemberment = true
	s := newScript(t, f, f, nil)

	s.Tick()
	assert.Equal(t, host.BoneHead, f.BoneDrawn[f.Ped])
	assert.Equal(t, -1, f.PropIndex(f.Ped, host.PropAnchorHat))
	assert.Equal(t, -1, f.PropIndex(f.Ped, host.PropAnchorEye))

	s.Cancel()
	_, drawn := f.BoneDrawn[f.Ped]
	assert.False(t, drawn)
	assert.Equal(t, 3, f.PropIndex(f.Ped, host.PropAnchorHat))
	assert.Equal(t, 1, f.PropTexture(f.Ped, host.PropAnchorHat))
	assert.Equal(t, 2, f.PropIndex(f.Ped, host.PropAnchorEye))
}

func TestHeadAndProps_Disabled(t *testing.T) {
	f := hosttest.New()
	f.Dismemberment = true
	st := model.DefaultScriptSettings()
	st.DisableRemoveHead = true
	st.DisableRemoveProps = true
	s := newScript(t, f, f, nil, func(d *Dependencies) { d.Settings = st })

	s.Tick()
	assert.Empty(t, f.BoneDrawn)
	assert.Equal(t, 3, f.PropIndex(f.Ped, host.PropAnchorHat))
}

func TestHideHead(t *testing.T) {
	f := hosttest.New()
	f.Dismemberment = true
	s := newScript(t, f, f, nil)

	s.HideHead(true)
	assert.Equal(t, host.BoneHead, f.BoneDrawn[f.Ped])
	assert.Equal(t, -1, f.PropIndex(f.Ped, host.PropAnchorHat))

	s.HideHead(false)
	assert.Empty(t, f.BoneDrawn)
	assert.Equal(t, 3, f.PropIndex(f.Ped, host.PropAnchorHat))
}

func TestHideHead_WhileInactiveRestoredOnCancel(t *testing.T) {
	f := hosttest.New()
	f.Dismemberment = true
	f.FirstPerson = false
	s := newScript(t, f, f, nil)
	s.Tick()
	require.False(t, s.Active())

	s.HideHead(true)
	f.FirstPerson = true
	f.Advance()
	s.Tick()
	require.True(t, s.Active())
	assert.Equal(t, -1, f.PropIndex(f.Ped, host.PropAnchorHat))

	s.Cancel()
	assert.Empty(t, f.BoneDrawn)
	assert.Equal(t, 3, f.PropIndex(f.Ped, host.PropAnchorHat))
	assert.Equal(t, 2, f.PropIndex(f.Ped, host.PropAnchorEye))
}

func TestTick_LogsMissingCapabilitiesOnce(t *testing.T) {
	tests := []struct {
		name          string
		dismemberment bool
		wheel         bool
		want          []string
	}{
		{"none reported", false, false, []string{"dismemberment not available", "wheel look buttons not available"}},
		{"wheel only", false, true, []string{"dismemberment not available"}},
		{"both reported", true, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := hosttest.New()
			s := newScript(t, f, f, nil, func(d *Dependencies) {
				d.Logger = slog.New(slog.NewTextHandler(&buf, nil))
			})
			assert.Empty(t, buf.String(), "nothing is known before the first frame")

			// the host fills its compatibility flags with the first frame
			f.Dismemberment, f.Wheel = tt.dismemberment, tt.wheel
			tickN(s, f, 3)

			out := buf.String()
			for _, msg := range tt.want {
				assert.Equal(t, 1, strings.Count(out, msg), msg)
			}
			if tt.want == nil {
				assert.NotContains(t, out, "not available")
			}
		})
	}
}

func TestTick_YawFollowSuppressed(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(v *hosttest.Vehicle)
		suppress bool
	}{
		{"car follows", func(*hosttest.Vehicle) {}, false},
		{"helicopter", func(v *hosttest.Vehicle) { v.Class = host.ClassHeli }, true},
		{"hovering VTOL", func(v *hosttest.Vehicle) {
			v.Class = host.ClassPlane
			v.VTOLHovering = true
		}, true},
		{"hover mode", func(v *hosttest.Vehicle) { v.HoverTransformRatio = 0.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := hosttest.New()
			v := f.Vehicle()
			v.LocalVelocity = mgl32.Vec3{15, 15, 0}
			v.RotationVelocity = mgl32.Vec3{0, 0, 1.2}
			v.Speed = v.LocalVelocity.Len()
			tt.setup(v)

			s := newScript(t, f, f, nil)
			tickN(s, f, 60)
			require.True(t, s.Active())

			if tt.suppress {
				assert.Equal(t, float32(0), s.rt.inertia.DirectionYaw)
			} else {
				assert.NotZero(t, s.rt.inertia.DirectionYaw)
			}
		})
	}
}

func TestTick_SessionContext(t *testing.T) {
	f := hosttest.New()
	sess := session.NewContext()
	names := nameMap{adder: "adder"}
	s := newScript(t, f, f, []model.VehicleConfig{adderConfig("Adder", "")}, func(d *Dependencies) {
		d.Session = sess
		d.ModelNames = names
	})

	s.Tick()

	assert.True(t, sess.IsCameraActive())
	assert.Equal(t, "adder", sess.GetVehicle().ModelName)
	cfg, mount := sess.GetActiveConfig()
	assert.Equal(t, "Adder", cfg)
	assert.Equal(t, "Default", mount)

	s.Cancel()
	assert.False(t, sess.IsCameraActive())
}

type nameMap map[uint32]string

func (n nameMap) Get(h uint32) (string, bool) {
	v, ok := n[h]
	return v, ok
}

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) RecordFrame(f Frame) { r.frames = append(r.frames, f) }

func TestTick_RecordsActiveFrames(t *testing.T) {
	f := hosttest.New()
	rec := &frameRecorder{}
	s := newScript(t, f, f, nil, func(d *Dependencies) { d.Recorder = rec })

	tickN(s, f, 5)
	f.FirstPerson = false
	tickN(s, f, 5)

	require.Len(t, rec.frames, 5)
	assert.Equal(t, model.DefaultConfigName, rec.frames[0].Config)
	assert.Equal(t, "gamepad", rec.frames[0].LookSource)
	assert.Equal(t, uint32(adder), rec.frames[0].ModelHash)
}

type panickingHost struct {
	*hosttest.Fake
}

func (panickingHost) Rotation(host.Handle) mgl32.Vec3 { panic("rotation unavailable") }

func TestTick_RecoversFromPanic(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, panickingHost{f}, f, nil)

	assert.NotPanics(t, s.Tick)
	assert.False(t, s.Active())
	assert.Nil(t, f.ActiveCamera())
}

func TestRequestReload_AppliedOnNextTick(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, nil)
	s.Tick()
	assert.Equal(t, model.DefaultConfigName, s.ActiveConfig().Name)

	s.RequestReload([]model.VehicleConfig{adderConfig("Adder", "")})
	assert.Equal(t, model.DefaultConfigName, s.ActiveConfig().Name)

	s.Tick()
	assert.Equal(t, "Adder", s.ActiveConfig().Name)
	assert.Len(t, s.Configs(), 2)
}

func TestSetSettings(t *testing.T) {
	f := hosttest.New()
	s := newScript(t, f, f, nil)
	s.Tick()
	require.True(t, s.Active())

	st := s.Settings()
	st.Enable = false
	s.SetSettings(st)
	s.Tick()
	assert.False(t, s.Active())
}
