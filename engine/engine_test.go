package engine

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/Carmen-Shannon/oxy-cam/engine/controls"
	"github.com/Carmen-Shannon/oxy-cam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cam/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-cam/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step every time it is read.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

// fakeWindow runs the message loop in memory.
type fakeWindow struct {
	width, height int
	running       bool
	closed        int

	onUpdate  func()
	onResize  func(int, int)
	onKeyDown func(uint32)
	onKeyUp   func(uint32)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func())                       { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))      { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(delta float32))             {}
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))        { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))          { w.onKeyUp = cb }
func (w *fakeWindow) SetMouseDownCallback(func(button int, x, y int32)) {}
func (w *fakeWindow) SetMouseUpCallback(func(button int, x, y int32))   {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y int32))             {}
func (w *fakeWindow) SetCursorCaptured(bool)                            {}
func (w *fakeWindow) CursorCaptured() bool                              { return false }
func (w *fakeWindow) SetTitle(string)                                   {}
func (w *fakeWindow) IsRunning() bool                                   { return w.running }
func (w *fakeWindow) Width() int                                        { return w.width }
func (w *fakeWindow) Height() int                                       { return w.height }

func (w *fakeWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.running {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func TestRun_HeadlessUntilQuit(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	e := NewEngine(WithClock(clock.now, clock.sleep))

	var deltas []float32
	e.SetTickCallback(func(dt float32) {
		deltas = append(deltas, dt)
		if len(deltas) == 3 {
			e.Quit()
		}
	})
	rendered := 0
	e.SetRenderCallback(func(float32) { rendered++ })

	e.Run()

	require.Len(t, deltas, 3)
	for _, dt := range deltas {
		assert.InDelta(t, 0.01, dt, 1e-6)
	}
	assert.Equal(t, 3, rendered)
	assert.Empty(t, clock.slept, "uncapped loop never sleeps")
}

func TestRun_TickRateCapsFrames(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: 2 * time.Millisecond}
	e := NewEngine(WithClock(clock.now, clock.sleep), WithTickRate(100))

	frames := 0
	e.SetTickCallback(func(float32) {
		frames++
		if frames == 2 {
			e.Quit()
		}
	})
	e.Run()

	require.Len(t, clock.slept, 2)
	assert.Equal(t, 8*time.Millisecond, clock.slept[0])
}

func TestStep_DrivesCameraThroughControls(t *testing.T) {
	cam := camera.NewCamera()
	ctl := controls.NewControls(cam)
	e := NewEngine(WithCamera(cam), WithControls(ctl))

	ctl.KeyDown(common.KeyW)
	for range 30 {
		e.Step(1.0 / 30)
	}
	assert.Less(t, cam.Position().Z(), float32(0))
	assert.Same(t, cam, e.Camera())
	assert.Same(t, ctl, e.Controls())
	assert.Nil(t, e.Window())
}

func TestNewEngine_WiresWindow(t *testing.T) {
	win := &fakeWindow{width: 1600, height: 800, running: true}
	cam := camera.NewCamera()
	ctl := controls.NewControls(cam)
	e := NewEngine(WithWindow(win), WithCamera(cam), WithControls(ctl))

	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
	require.NotNil(t, win.onResize)
	win.onResize(300, 600)
	assert.InDelta(t, 0.5, cam.Aspect(), 1e-6)
	win.onResize(300, 0)
	assert.InDelta(t, 0.5, cam.Aspect(), 1e-6, "minimized windows keep the last aspect")

	// Key events reach the camera through the attached controls.
	require.NotNil(t, win.onKeyDown)
	win.onKeyDown(common.Key4)
	e.Step(0.016)
	assert.Equal(t, camera.BehaviorOrbit, cam.Behavior())
}

func TestRun_ClosesWindowOnQuit(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600, running: true}
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Millisecond}
	e := NewEngine(WithWindow(win), WithClock(clock.now, clock.sleep))

	frames := 0
	e.SetTickCallback(func(float32) {
		frames++
		if frames == 5 {
			e.Quit()
		}
	})
	e.Run()

	assert.Equal(t, 5, frames)
	assert.Equal(t, 1, win.closed)
}

func TestProfiler_ReportsCameraStatus(t *testing.T) {
	var lines []string
	now := time.Unix(0, 0)
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{1, 2, 3}))
	e := NewEngine(
		WithCamera(cam),
		WithProfiling(true),
		WithProfilerOptions(
			profiler.WithClock(func() time.Time { now = now.Add(600 * time.Millisecond); return now }),
			profiler.WithLogger(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }),
		),
	)

	e.Step(0.016)
	e.Step(0.016)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Camera: Behavior: FirstPerson | Position: x:1.00 y:2.00 z:3.00")

	e.DisableProfiler()
	n := len(lines)
	e.Step(0.016)
	e.Step(0.016)
	assert.Len(t, lines, n)
}

func TestStep_RecordsPoses(t *testing.T) {
	var buf bytes.Buffer
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 1, 0}))
	ctl := controls.NewControls(cam)
	e := NewEngine(WithCamera(cam), WithControls(ctl), WithRecorder(telemetry.NewWriterRecorder(&buf)))

	ctl.KeyDown(common.KeyW)
	for range 3 {
		e.Step(0.5)
	}

	poses, err := telemetry.ReadPoses(&buf)
	require.NoError(t, err)
	require.Len(t, poses, 3)
	assert.Equal(t, 2, poses[2].Frame)
	assert.InDelta(t, 1.5, poses[2].Time, 1e-6)
	assert.Equal(t, "FirstPerson", poses[2].Behavior)
	assert.Less(t, poses[2].Z, poses[0].Z)
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestStep_StopsRecordingOnWriteError(t *testing.T) {
	w := &failingWriter{}
	e := NewEngine(WithCamera(camera.NewCamera()), WithRecorder(telemetry.NewWriterRecorder(w)))

	e.Step(0.1)
	n := w.writes
	require.Positive(t, n)
	e.Step(0.1)
	assert.Equal(t, n, w.writes)
}
