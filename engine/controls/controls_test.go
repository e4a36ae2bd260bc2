package controls

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60.0)

// fakeWindow stands in for a window.Window and replays events through its callbacks.
type fakeWindow struct {
	keyDown   func(uint32)
	keyUp     func(uint32)
	scroll    func(float32)
	mouseDown func(int, int32, int32)
	mouseUp   func(int, int32, int32)
	mouseMove func(int32, int32)
}

func (f *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))           { f.keyDown = cb }
func (f *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))             { f.keyUp = cb }
func (f *fakeWindow) SetScrollCallback(cb func(delta float32))             { f.scroll = cb }
func (f *fakeWindow) SetMouseDownCallback(cb func(button int, x, y int32)) { f.mouseDown = cb }
func (f *fakeWindow) SetMouseUpCallback(cb func(button int, x, y int32))   { f.mouseUp = cb }
func (f *fakeWindow) SetMouseMoveCallback(cb func(x, y int32))             { f.mouseMove = cb }

func (f *fakeWindow) tap(key uint32) {
	f.keyDown(key)
	f.keyUp(key)
}

func setup(t *testing.T, cam camera.Camera, options ...ControlsBuilderOption) (Controls, *fakeWindow) {
	t.Helper()
	ctl := NewControls(cam, options...)
	win := &fakeWindow{}
	ctl.Attach(win)
	require.NotNil(t, win.keyDown)
	return ctl, win
}

func TestBehaviorKeys(t *testing.T) {
	cam := camera.NewCamera()
	ctl, win := setup(t, cam)

	tests := []struct {
		key  uint32
		want camera.Behavior
	}{
		{common.Key4, camera.BehaviorOrbit},
		{common.Key3, camera.BehaviorFlight},
		{common.Key2, camera.BehaviorSpectator},
		{common.Key5, camera.BehaviorCinematic},
		{common.Key1, camera.BehaviorFirstPerson},
	}
	for _, tt := range tests {
		win.tap(tt.key)
		ctl.Update(frame)
		assert.Equal(t, tt.want, cam.Behavior())
	}
}

func TestKeyCommands_AreEdgeTriggered(t *testing.T) {
	cam := camera.NewCamera(camera.WithBehavior(camera.BehaviorOrbit))
	ctl, win := setup(t, cam)
	require.True(t, cam.PreferTargetYAxisOrbiting())

	// Key repeat while held must toggle only once.
	win.keyDown(common.KeySpace)
	win.keyDown(common.KeySpace)
	ctl.Update(frame)
	win.keyDown(common.KeySpace)
	ctl.Update(frame)
	assert.False(t, cam.PreferTargetYAxisOrbiting())

	win.keyUp(common.KeySpace)
	win.tap(common.KeySpace)
	ctl.Update(frame)
	assert.True(t, cam.PreferTargetYAxisOrbiting())
}

func TestSpaceOnlyTogglesInOrbit(t *testing.T) {
	cam := camera.NewCamera()
	ctl, win := setup(t, cam)

	win.tap(common.KeySpace)
	ctl.Update(frame)
	assert.True(t, cam.PreferTargetYAxisOrbiting())
}

func TestHeldKeysMoveCamera(t *testing.T) {
	cam := camera.NewCamera()
	ctl, win := setup(t, cam)

	win.keyDown(common.KeyW)
	win.keyDown(common.KeyD)
	for i := 0; i < 60; i++ {
		ctl.Update(frame)
	}
	win.keyUp(common.KeyW)
	win.keyUp(common.KeyD)

	p := cam.Position()
	assert.Less(t, p.Z(), float32(0))
	assert.Greater(t, p.X(), float32(0))
	assert.InDelta(t, p.X(), -p.Z(), 1e-4)

	win.keyDown(common.KeyE)
	for i := 0; i < 60; i++ {
		ctl.Update(frame)
	}
	assert.Greater(t, cam.Position().Y(), float32(0))
}

func TestFlight_ADTurnsInsteadOfStrafing(t *testing.T) {
	cam := camera.NewCamera(camera.WithBehavior(camera.BehaviorFlight))
	ctl, win := setup(t, cam)

	win.keyDown(common.KeyD)
	for i := 0; i < 30; i++ {
		ctl.Update(frame)
	}

	assert.InDelta(t, 0, cam.Position().X(), 1e-6, "no strafing")
	assert.Greater(t, cam.Forward().X(), float32(0.05), "turned right")
}

func TestBehaviorSwitch_UsesNewMappingSameFrame(t *testing.T) {
	cam := camera.NewCamera()
	ctl, win := setup(t, cam)

	win.keyDown(common.KeyD)
	win.tap(common.Key3)
	ctl.Update(frame)

	require.Equal(t, camera.BehaviorFlight, cam.Behavior())
	assert.InDelta(t, 0, cam.Position().X(), 1e-6, "D turns in Flight on the switching frame")
	assert.Less(t, cam.Snapshot().AngularVelocity.X(), float32(0), "D yaws right in Flight")
}

func TestMouseLook(t *testing.T) {
	cam := camera.NewCamera(camera.WithRotationSpeed(1))
	ctl, win := setup(t, cam, WithMouseSensitivity(0.5))

	win.mouseMove(100, 100)
	win.mouseMove(120, 100)
	ctl.Update(frame)

	// 20 px right at 0.5 deg/px turns 10 degrees right.
	want := mgl32.QuatRotate(mgl32.DegToRad(-10), common.WorldY).Rotate(common.LocalForward)
	fwd := cam.Forward()
	assert.InDelta(t, want.X(), fwd.X(), 1e-4)
	assert.InDelta(t, want.Z(), fwd.Z(), 1e-4)

	// Accumulated motion is consumed by the frame.
	ctl.Update(frame)
	assert.InDelta(t, want.X(), cam.Forward().X(), 1e-4)

	win.mouseMove(120, 80)
	ctl.Update(frame)
	assert.InDelta(t, 10, common.PitchDegrees(cam.Forward()), 1e-2)
}

func TestFlight_MouseXRolls(t *testing.T) {
	cam := camera.NewCamera(camera.WithBehavior(camera.BehaviorFlight))
	ctl, win := setup(t, cam)

	win.mouseMove(0, 0)
	for i := 1; i <= 30; i++ {
		win.mouseMove(int32(i*10), 0)
		ctl.Update(frame)
	}

	assert.Greater(t, float32(mgl32.Abs(cam.Right().Y())), float32(0.05))
	assert.InDelta(t, -1, cam.Forward().Z(), 1e-3, "look direction unchanged by roll")
}

func TestClickAndDrag(t *testing.T) {
	cam := camera.NewCamera(camera.WithRotationSpeed(1))
	ctl, win := setup(t, cam)

	win.tap(common.KeyC)
	ctl.Update(frame)
	require.True(t, ctl.ClickAndDrag())

	win.mouseMove(0, 0)
	win.mouseMove(50, 0)
	ctl.Update(frame)
	assertForward(t, common.LocalForward, cam.Forward())

	win.mouseDown(common.MouseButtonLeft, 50, 0)
	win.mouseMove(100, 0)
	ctl.Update(frame)
	assert.Greater(t, cam.Forward().X(), float32(0.01))

	win.mouseUp(common.MouseButtonLeft, 100, 0)
	before := cam.Forward()
	win.mouseMove(150, 0)
	ctl.Update(frame)
	assertForward(t, before, cam.Forward())
}

func TestScrollZoomsOrbit(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithOrbitZoomBounds(1, 10),
		camera.WithOrbitOffsetDistance(5),
		camera.WithZoomSpeed(1),
		camera.WithBehavior(camera.BehaviorOrbit),
	)
	ctl, win := setup(t, cam)

	win.scroll(1)
	win.scroll(1)
	ctl.Update(frame)
	assert.InDelta(t, 3, cam.OrbitOffsetDistance(), 1e-5)

	ctl.Update(frame)
	assert.InDelta(t, 3, cam.OrbitOffsetDistance(), 1e-5)
}

func TestRotationSpeedIsClamped(t *testing.T) {
	cam := camera.NewCamera(camera.WithRotationSpeed(0.5))
	ctl, win := setup(t, cam)

	win.tap(common.KeyKPAdd)
	ctl.Update(frame)
	assert.InDelta(t, 0.51, cam.RotationSpeed(), 1e-5)

	for i := 0; i < 100; i++ {
		win.tap(common.KeyKPAdd)
		ctl.Update(frame)
	}
	assert.Equal(t, float32(1), cam.RotationSpeed())

	for i := 0; i < 200; i++ {
		win.tap(common.KeyKPSubtract)
		ctl.Update(frame)
	}
	assert.Equal(t, float32(0.01), cam.RotationSpeed())
}

func TestKeyFrameCapture(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{1, 1, 1}))
	ctl, win := setup(t, cam, WithSegmentDuration(3))

	win.tap(common.Key9)
	ctl.Update(0)
	a, b, ok := cam.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Position)
	assert.Equal(t, float32(0), a.Time)
	assert.Equal(t, float32(3), b.Time)

	cam.SetPosition(mgl32.Vec3{4, 2, -6})
	cam.Rotate(90, 0, 0)
	win.tap(common.Key0)
	ctl.Update(0)

	a, b, ok = cam.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Position)
	assert.Equal(t, mgl32.Vec3{4, 2, -6}, b.Position)
	assert.Equal(t, float32(3), b.Time)

	// Playing the captured segment ends on the captured pose.
	win.tap(common.Key5)
	ctl.Update(frame)
	ctl.Update(10)
	assertForward(t, mgl32.Vec3{-1, 0, 0}, cam.Forward())
	assert.InDelta(t, 0, cam.Position().Sub(mgl32.Vec3{4, 2, -6}).Len(), 1e-4)
}

func TestKeyFrameCapture_RejectsBackwardSegment(t *testing.T) {
	a := camera.NewKeyFrame(mgl32.Vec3{}, mgl32.QuatIdent(), 8)
	b := camera.NewKeyFrame(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), 10)
	cam := camera.NewCamera(camera.WithKeyFrames(a, b))
	ctl, win := setup(t, cam, WithSegmentDuration(5))

	win.tap(common.Key0)
	ctl.Update(0)

	gotA, gotB, ok := cam.KeyFrames()
	require.True(t, ok)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
}

func TestCinematicKeys(t *testing.T) {
	a := camera.NewKeyFrame(mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent(), 0)
	b := camera.NewKeyFrame(mgl32.Vec3{2, 2, 3}, mgl32.QuatIdent(), 5)
	cam := camera.NewCamera(camera.WithKeyFrames(a, b), camera.WithBehavior(camera.BehaviorSpectator))
	ctl, win := setup(t, cam)

	win.tap(common.Key5)
	ctl.Update(0)
	ctl.Update(2)
	require.Equal(t, float32(2), cam.CinematicTime())

	// 5 again restarts playback.
	win.tap(common.Key5)
	ctl.Update(0)
	assert.Zero(t, cam.CinematicTime())

	win.tap(common.KeyP)
	ctl.Update(1)
	assert.True(t, cam.CinematicPaused())
	assert.Zero(t, cam.CinematicTime())

	win.tap(common.KeyX)
	ctl.Update(frame)
	assert.Equal(t, camera.BehaviorSpectator, cam.Behavior())
}

func TestUndoRollKey(t *testing.T) {
	cam := camera.NewCamera(camera.WithBehavior(camera.BehaviorFlight))
	ctl, win := setup(t, cam)
	cam.Rotate(0, 0, 30)
	require.Greater(t, float32(mgl32.Abs(cam.Right().Y())), float32(0.1))

	win.tap(common.KeyBackspace)
	ctl.Update(0)
	assert.InDelta(t, 0, cam.Right().Y(), 1e-4)
}

func TestHelpToggle(t *testing.T) {
	ctl, win := setup(t, camera.NewCamera())
	assert.False(t, ctl.HelpVisible())

	win.tap(common.KeyH)
	ctl.Update(frame)
	assert.True(t, ctl.HelpVisible())
	assert.Contains(t, HelpText, "Backspace")
}

func assertForward(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, "axis %d: want %v, got %v", i, want, got)
	}
}

// capturingWindow also records cursor capture requests.
type capturingWindow struct {
	fakeWindow
	captures []bool
}

func (w *capturingWindow) SetCursorCaptured(captured bool) { w.captures = append(w.captures, captured) }

func TestCursorCapture_FollowsClickAndDrag(t *testing.T) {
	ctl := NewControls(camera.NewCamera(), WithCursorCapture(true))
	win := &capturingWindow{}
	ctl.Attach(win)
	assert.Equal(t, []bool{true}, win.captures, "free look captures on attach")

	win.tap(common.KeyC)
	ctl.Update(frame)
	win.tap(common.KeyC)
	ctl.Update(frame)
	assert.Equal(t, []bool{true, false, true}, win.captures)
}

func TestCursorCapture_Disabled(t *testing.T) {
	ctl := NewControls(camera.NewCamera())
	win := &capturingWindow{}
	ctl.Attach(win)

	win.tap(common.KeyC)
	ctl.Update(frame)
	assert.Empty(t, win.captures)
}
