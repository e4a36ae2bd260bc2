package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/Carmen-Shannon/oxy-cam/engine/controls"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "orbit", cfg.Camera.Behavior)
	assert.Equal(t, []float32{0, 1, 0}, cfg.Camera.Position)
	assert.Equal(t, float32(90), cfg.Camera.Fov)
	assert.Equal(t, float32(1.5), cfg.Camera.Orbit.MinZoom)
	assert.Equal(t, float32(5), cfg.Camera.Orbit.MaxZoom)
	assert.True(t, cfg.Camera.Orbit.PreferTargetYAxis)
	require.Len(t, cfg.Cinematic.KeyFrames, 2)
	assert.Equal(t, float32(5), cfg.Cinematic.KeyFrames[1].Time)
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "oxy-cam.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be written to disk")

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_OverridesOnlyGivenValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cam.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
camera:
  behavior: flight
  orbit:
    max_zoom: 12
cinematic:
  easing: in_out_quad
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flight", cfg.Camera.Behavior)
	assert.Equal(t, float32(12), cfg.Camera.Orbit.MaxZoom)
	assert.Equal(t, float32(1.5), cfg.Camera.Orbit.MinZoom, "untouched values keep their defaults")
	assert.Equal(t, "in_out_quad", cfg.Cinematic.Easing)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("camera: [not, a, map"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("camera:\n  behavior: hover\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cam.yaml")
	cfg := DefaultConfig()
	cfg.Camera.Behavior = "spectator"
	cfg.Controls.ClickAndDrag = true

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown behavior", func(c *Config) { c.Camera.Behavior = "hover" }},
		{"zero fov", func(c *Config) { c.Camera.Fov = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near / 2 }},
		{"non-positive rotation speed", func(c *Config) { c.Camera.RotationSpeed = 0 }},
		{"zoom bounds inverted", func(c *Config) { c.Camera.Orbit.MinZoom, c.Camera.Orbit.MaxZoom = 5, 1 }},
		{"zero min zoom", func(c *Config) { c.Camera.Orbit.MinZoom = 0 }},
		{"bounds inverted", func(c *Config) { c.Camera.Bounds.Min = []float32{5, 0, 0} }},
		{"unknown easing", func(c *Config) { c.Cinematic.Easing = "wobble" }},
		{"keyframes out of order", func(c *Config) { c.Cinematic.KeyFrames[1].Time = 0 }},
		{"single keyframe", func(c *Config) { c.Cinematic.KeyFrames = c.Cinematic.KeyFrames[:1] }},
		{"empty window", func(c *Config) { c.Window.Width = 0 }},
		{"negative tick rate", func(c *Config) { c.Engine.TickRate = -1 }},
		{"zero segment duration", func(c *Config) { c.Controls.SegmentDuration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("no keyframes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cinematic.KeyFrames = nil
		assert.NoError(t, cfg.Validate())
	})
}

func TestEasingByName(t *testing.T) {
	fn, err := EasingByName("")
	require.NoError(t, err)
	assert.Equal(t, ease.Linear(1, 0, 4, 2), fn(1, 0, 4, 2))

	fn, err = EasingByName("IN_QUAD")
	require.NoError(t, err)
	assert.Equal(t, ease.InQuad(1, 0, 4, 2), fn(1, 0, 4, 2))

	_, err = EasingByName("wobble")
	assert.Error(t, err)
}

func TestKeyFrameConfig_KeyFrame(t *testing.T) {
	k := KeyFrameConfig{Position: []float32{1, 2, 3}, Rotation: []float32{90}, Time: 4}.KeyFrame()

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, k.Position)
	assert.Equal(t, float32(4), k.Time)
	fwd := k.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1, fwd.X(), 1e-5)
	assert.InDelta(t, 0, fwd.Z(), 1e-5)
}

func TestCameraOptions(t *testing.T) {
	cfg := DefaultConfig()
	options, err := cfg.CameraOptions()
	require.NoError(t, err)

	c := camera.NewCamera(options...)
	assert.Equal(t, camera.BehaviorOrbit, c.Behavior())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.OrbitTarget())
	assert.Equal(t, float32(1.5), c.OrbitOffsetDistance())
	assert.InDelta(t, 1280.0/720.0, c.Aspect(), 1e-5)
	assert.InDelta(t, mgl32.DegToRad(90), c.Fov(), 1e-5)

	a, b, ok := c.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, float32(0), a.Time)
	assert.Equal(t, mgl32.Vec3{2, 2, 3}, b.Position)

	// Bounds apply once the camera leaves orbit.
	c.SetBehavior(camera.BehaviorSpectator)
	for i := 0; i < 100; i++ {
		c.ApplyInput(0.1, camera.Input{Move: mgl32.Vec3{0, -1, 0}})
	}
	assert.InDelta(t, 0.5, c.Position().Y(), 1e-5)
}

func TestCameraOptions_UnknownBehavior(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Behavior = "hover"
	_, err := cfg.CameraOptions()
	assert.Error(t, err)
}

func TestWatcher_DeliversReloadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cam.yaml")
	require.NoError(t, Save(path, DefaultConfig()))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	cfg := DefaultConfig()
	cfg.Camera.RotationSpeed = 0.75
	require.NoError(t, Save(path, cfg))

	select {
	case got := <-w.Events:
		assert.Equal(t, float32(0.75), got.Camera.RotationSpeed)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	require.NoError(t, os.WriteFile(path, []byte("camera:\n  fov: 0\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error")
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cam.yaml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel left open")
	}
}

func TestControlsOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controls.ClickAndDrag = true

	ctl := controls.NewControls(camera.NewCamera(), cfg.ControlsOptions()...)
	assert.True(t, ctl.ClickAndDrag())
}

func TestWindowOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Window.Resizable)
	assert.Len(t, cfg.WindowOptions(), 3)
}

func TestApply_UpdatesRunningCamera(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{1, 1, 1}), camera.WithBehavior(camera.BehaviorSpectator))

	cfg := DefaultConfig()
	cfg.Camera.RotationSpeed = 0.6
	cfg.Camera.Fov = 60
	cfg.Camera.Orbit.MaxZoom = 9
	cfg.Camera.Bounds.Enabled = false
	cfg.Apply(cam, nil)

	assert.Equal(t, float32(0.6), cam.RotationSpeed())
	assert.InDelta(t, mgl32.DegToRad(60), cam.Fov(), 1e-5)
	_, maxZoom := cam.OrbitZoomBounds()
	assert.Equal(t, float32(9), maxZoom)
	assert.Equal(t, camera.BehaviorSpectator, cam.Behavior())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cam.Position())

	_, b, ok := cam.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, float32(5), b.Time)
}

func TestApply_KeepsRuntimeStateWhenUnchanged(t *testing.T) {
	prev := DefaultConfig()
	options, err := prev.CameraOptions()
	require.NoError(t, err)
	cam := camera.NewCamera(options...)

	// Runtime toggle, then play the cinematic halfway.
	cam.SetPreferTargetYAxisOrbiting(false)
	cam.SetBehavior(camera.BehaviorCinematic)
	cam.ApplyInput(2.5, camera.Input{})

	next := DefaultConfig()
	next.Camera.RotationSpeed = 0.5
	next.Apply(cam, prev)

	assert.Equal(t, float32(0.5), cam.RotationSpeed())
	assert.False(t, cam.PreferTargetYAxisOrbiting(), "unchanged setting keeps the runtime toggle")
	cam.ApplyInput(0.1, camera.Input{})
	assert.InDelta(t, 2*2.6/5, cam.Position().X(), 1e-3, "playback continues from 2.5s")

	changed := DefaultConfig()
	changed.Cinematic.KeyFrames[1].Time = 10
	changed.Apply(cam, next)
	_, b, ok := cam.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, float32(10), b.Time, "changed keyframes are applied")
	assert.False(t, cam.PreferTargetYAxisOrbiting())

	cam.SetPreferTargetYAxisOrbiting(true)
	off := DefaultConfig()
	off.Camera.Orbit.PreferTargetYAxis = false
	off.Apply(cam, next)
	assert.False(t, cam.PreferTargetYAxisOrbiting(), "changed preference is applied")
}
