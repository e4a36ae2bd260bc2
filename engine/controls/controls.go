// Package controls turns window input events into per-frame camera input and handles the
// demo key commands (behavior switching, keyframe capture, rotation speed).
package controls

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	rotationSpeedStep float32 = 0.01
	minRotationSpeed  float32 = 0.01
	maxRotationSpeed  float32 = 1.0
)

// HelpText lists the key bindings.
const HelpText = `1-5        FirstPerson, Spectator, Flight, Orbit, Cinematic (5 restarts playback)
W/S        forward / back
A/D        strafe (yaw in Flight)
E/Q        up / down
Mouse      look (Flight: horizontal motion rolls)
Wheel      orbit zoom
Backspace  undo roll (Flight, free Orbit)
Space      toggle target Y axis orbiting
9 / 0      capture cinematic start / end keyframe
P / X      pause / cancel cinematic
C          toggle click-and-drag look
KP+ / KP-  rotation speed
H          toggle this help`

// behaviorKeys maps keys 1-5 onto the behaviors in declaration order.
var behaviorKeys = []uint32{common.Key1, common.Key2, common.Key3, common.Key4, common.Key5}

// Source is the part of a window the controls subscribe to.
type Source interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetScrollCallback(callback func(delta float32))
	SetMouseDownCallback(callback func(button int, x, y int32))
	SetMouseUpCallback(callback func(button int, x, y int32))
	SetMouseMoveCallback(callback func(x, y int32))
}

// cursorCapturer is implemented by windows that can lock the cursor for mouse look.
type cursorCapturer interface {
	SetCursorCaptured(captured bool)
}

// Controls collects input events between frames and drives a camera once per frame.
type Controls interface {
	// Attach registers the input callbacks on a window.
	//
	// Parameters:
	//   - src: the window to listen to
	Attach(src Source)

	// KeyDown records a key press. Repeated presses of a held key are ignored.
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	KeyUp(keyCode uint32)

	// Scroll accumulates mouse wheel motion. Positive values zoom in.
	Scroll(delta float32)

	// MouseDown records a mouse button press.
	MouseDown(button int, x, y int32)

	// MouseUp records a mouse button release.
	MouseUp(button int, x, y int32)

	// MouseMove accumulates cursor motion since the previous frame.
	MouseMove(x, y int32)

	// Update runs the key commands pressed since the previous frame, then applies the
	// sampled movement and look input to the camera.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds since the previous frame
	Update(deltaTime float32)

	// ClickAndDrag reports whether mouse look requires the left button to be held.
	ClickAndDrag() bool

	// HelpVisible reports whether the help overlay is toggled on.
	HelpVisible() bool
}

type controlsImpl struct {
	mu  *sync.Mutex
	cam camera.Camera

	held    map[uint32]bool
	pressed map[uint32]bool
	buttons map[int]bool

	mouseDelta [2]float32
	lastMouse  [2]int32
	hasMouse   bool
	scroll     float32

	mouseSensitivity float32
	clickAndDrag     bool
	captureCursor    bool
	cursor           cursorCapturer
	segmentDuration  float32
	helpVisible      bool
}

var _ Controls = &controlsImpl{}

// NewControls creates the input controls for a camera.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controls
//
// Returns:
//   - Controls: the newly created controls
func NewControls(cam camera.Camera, options ...ControlsBuilderOption) Controls {
	c := &controlsImpl{
		mu:               &sync.Mutex{},
		cam:              cam,
		held:             make(map[uint32]bool),
		pressed:          make(map[uint32]bool),
		buttons:          make(map[int]bool),
		mouseSensitivity: 0.1,
		segmentDuration:  5.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controlsImpl) Attach(src Source) {
	src.SetKeyDownCallback(c.KeyDown)
	src.SetKeyUpCallback(c.KeyUp)
	src.SetScrollCallback(c.Scroll)
	src.SetMouseDownCallback(c.MouseDown)
	src.SetMouseUpCallback(c.MouseUp)
	src.SetMouseMoveCallback(c.MouseMove)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cc, ok := src.(cursorCapturer); ok {
		c.cursor = cc
	}
	c.syncCursor()
}

// syncCursor captures the cursor while mouse look is free and releases it in
// click-and-drag mode. Caller must hold the mutex.
func (c *controlsImpl) syncCursor() {
	if c.cursor == nil || !c.captureCursor {
		return
	}
	c.cursor.SetCursorCaptured(!c.clickAndDrag)
}

func (c *controlsImpl) KeyDown(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.held[keyCode] {
		c.pressed[keyCode] = true
	}
	c.held[keyCode] = true
}

func (c *controlsImpl) KeyUp(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.held, keyCode)
}

func (c *controlsImpl) Scroll(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll += delta
}

func (c *controlsImpl) MouseDown(button int, x, y int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons[button] = true
}

func (c *controlsImpl) MouseUp(button int, x, y int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buttons, button)
}

func (c *controlsImpl) MouseMove(x, y int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasMouse {
		c.mouseDelta[0] += float32(x - c.lastMouse[0])
		c.mouseDelta[1] += float32(y - c.lastMouse[1])
	}
	c.lastMouse = [2]int32{x, y}
	c.hasMouse = true
}

func (c *controlsImpl) ClickAndDrag() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clickAndDrag
}

func (c *controlsImpl) HelpVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.helpVisible
}

func (c *controlsImpl) Update(deltaTime float32) {
	c.mu.Lock()
	pressed := c.pressed
	c.pressed = make(map[uint32]bool)
	c.mu.Unlock()

	// Commands run first so a behavior switch applies its input mapping on the same frame.
	c.runCommands(pressed)

	c.mu.Lock()
	in := c.sample()
	c.mu.Unlock()
	in.Pause = pressed[common.KeyP]
	in.Cancel = pressed[common.KeyX]
	c.cam.ApplyInput(deltaTime, in)
}

// sample builds the frame input from held keys and accumulated mouse motion, and resets
// the accumulators. Caller must hold the mutex.
func (c *controlsImpl) sample() camera.Input {
	var in camera.Input
	axis := func(pos, neg uint32) float32 {
		var v float32
		if c.held[pos] {
			v++
		}
		if c.held[neg] {
			v--
		}
		return v
	}

	flight := c.cam.Behavior() == camera.BehaviorFlight
	in.Move = mgl32.Vec3{axis(common.KeyD, common.KeyA), axis(common.KeyE, common.KeyQ), axis(common.KeyW, common.KeyS)}
	if flight {
		// A/D bank the heading instead of strafing.
		in.Look[0] = in.Move[0] * -1
		in.Move[0] = 0
	}

	if !c.clickAndDrag || c.buttons[common.MouseButtonLeft] {
		dx := -c.mouseDelta[0] * c.mouseSensitivity
		dy := -c.mouseDelta[1] * c.mouseSensitivity
		if flight {
			in.Look[2] += dx
		} else {
			in.Look[0] += dx
		}
		in.Look[1] += dy
	}
	in.Zoom = c.scroll

	c.mouseDelta = [2]float32{}
	c.scroll = 0
	return in
}

// runCommands executes the edge-triggered key commands for this frame.
func (c *controlsImpl) runCommands(pressed map[uint32]bool) {
	for i, key := range behaviorKeys {
		if !pressed[key] {
			continue
		}
		b := camera.Behavior(i)
		if b == camera.BehaviorCinematic && c.cam.Behavior() == camera.BehaviorCinematic {
			c.restartCinematic()
			continue
		}
		c.cam.SetBehavior(b)
		log.Printf("[Controls] behavior: %s", b)
	}

	behavior := c.cam.Behavior()
	if pressed[common.KeyBackspace] && (behavior == camera.BehaviorFlight || behavior == camera.BehaviorOrbit) {
		c.cam.UndoRoll()
	}
	if pressed[common.KeySpace] && behavior == camera.BehaviorOrbit {
		prefer := !c.cam.PreferTargetYAxisOrbiting()
		c.cam.SetPreferTargetYAxisOrbiting(prefer)
		log.Printf("[Controls] target Y axis orbiting: %v", prefer)
	}
	if pressed[common.Key9] {
		c.captureKeyFrame(false)
	}
	if pressed[common.Key0] {
		c.captureKeyFrame(true)
	}
	if pressed[common.KeyKPAdd] {
		c.adjustRotationSpeed(rotationSpeedStep)
	}
	if pressed[common.KeyKPSubtract] {
		c.adjustRotationSpeed(-rotationSpeedStep)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if pressed[common.KeyC] {
		c.clickAndDrag = !c.clickAndDrag
		log.Printf("[Controls] click-and-drag look: %v", c.clickAndDrag)
		c.syncCursor()
	}
	if pressed[common.KeyH] {
		c.helpVisible = !c.helpVisible
		if c.helpVisible {
			log.Printf("[Controls] key bindings:\n%s", HelpText)
		}
	}
}

// restartCinematic rewinds playback by reapplying the current segment.
func (c *controlsImpl) restartCinematic() {
	a, b, ok := c.cam.KeyFrames()
	if !ok {
		return
	}
	if err := c.cam.SetKeyFrames(a, b); err != nil {
		log.Printf("[Controls] restart cinematic: %v", err)
	}
}

// captureKeyFrame stores the current camera pose as the start (time 0) or end
// (time segmentDuration) of the cinematic segment.
func (c *controlsImpl) captureKeyFrame(end bool) {
	pose := camera.NewKeyFrame(c.cam.Position(), c.cam.Orientation(), 0)

	a, b, ok := c.cam.KeyFrames()
	if !ok {
		a = pose
		b = pose
		b.Time = c.segmentDuration
	}
	which := "start"
	if end {
		which = "end"
		pose.Time = c.segmentDuration
		b = pose
	} else {
		a = pose
	}

	if err := c.cam.SetKeyFrames(a, b); err != nil {
		log.Printf("[Controls] %s keyframe capture rejected: %v", which, err)
		return
	}
	log.Printf("[Controls] captured %s keyframe at (%.2f, %.2f, %.2f), t=%.2fs",
		which, pose.Position[0], pose.Position[1], pose.Position[2], pose.Time)
}

func (c *controlsImpl) adjustRotationSpeed(step float32) {
	speed := mgl32.Clamp(c.cam.RotationSpeed()+step, minRotationSpeed, maxRotationSpeed)
	c.cam.SetRotationSpeed(speed)
	log.Printf("[Controls] rotation speed: %.2f", speed)
}
