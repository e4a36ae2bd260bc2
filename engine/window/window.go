// Package window opens the native window that feeds keyboard and mouse input to the camera
// controls and runs the frame loop's message pump.
package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-cam/common"
)

const defaultQuitKey = common.KeyEsc

// Window provides platform windowing and input event handling.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code (common.Key*)
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button press.
	//
	// Parameters:
	//   - callback: function receiving the button (common.MouseButton*) and cursor position
	SetMouseDownCallback(callback func(button int, x, y int32))

	// SetMouseUpCallback sets the callback for mouse button release.
	//
	// Parameters:
	//   - callback: function receiving the button (common.MouseButton*) and cursor position
	SetMouseUpCallback(callback func(button int, x, y int32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	// While the cursor is captured the position is virtual and unbounded.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SetCursorCaptured hides the cursor and locks it to the window so mouse look
	// is not stopped by the screen edge. Passing false releases it.
	//
	// Parameters:
	//   - captured: whether the cursor is captured
	SetCursorCaptured(captured bool)

	// CursorCaptured reports whether the cursor is currently captured.
	CursorCaptured() bool

	// SetTitle replaces the text in the title bar.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// IsRunning returns true if the window is still open.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages runs the message loop until the window closes,
	// calling the update callback once per iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// sizeLimits bounds interactive resizing. Zero values leave a side unbounded.
type sizeLimits struct {
	minWidth, minHeight int
	maxWidth, maxHeight int
}

// callbacks are the event sinks registered through the Set*Callback methods.
type callbacks struct {
	update    func()
	resize    func(width, height int)
	scroll    func(delta float32)
	keyDown   func(keyCode uint32)
	keyUp     func(keyCode uint32)
	mouseDown func(button int, x, y int32)
	mouseUp   func(button int, x, y int32)
	mouseMove func(x, y int32)
}

type engineWindow struct {
	title         string
	width, height int
	limits        sizeLimits
	resizable     bool
	captured      bool

	// quitKey closes the window when pressed; 0 forwards every key to the callbacks.
	quitKey uint32

	on callbacks

	// platform is the GLFW window; nil until opened.
	platform *glfwWindow
}

var _ Window = &engineWindow{}

// NewWindow opens a window with the given options.
// Defaults: 1280x720, resizable between 320x240 and unbounded, ESC quits, cursor free.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := openPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies the defaults and options without touching the platform.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-cam",
		width:     1280,
		height:    720,
		limits:    sizeLimits{minWidth: 320, minHeight: 240},
		resizable: true,
		quitKey:   defaultQuitKey,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) { w.on.update = callback }

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) { w.on.resize = callback }

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) { w.on.scroll = callback }

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.on.keyDown = callback }

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) { w.on.keyUp = callback }

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y int32)) {
	w.on.mouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y int32)) {
	w.on.mouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) { w.on.mouseMove = callback }

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.captured = captured
	if w.platform != nil {
		w.platform.applyCursorMode(captured)
	}
}

func (w *engineWindow) CursorCaptured() bool { return w.captured }

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	if w.platform != nil {
		w.platform.window.SetTitle(title)
	}
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && w.platform.isRunning()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return fmt.Errorf("window is not open")
	}
	w.platform.close()
	w.platform = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !w.platform.poll() {
			break
		}
		if w.on.update != nil {
			w.on.update()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int { return w.width }

func (w *engineWindow) Height() int { return w.height }

// keyDown routes a key press to the quit handling or the key callback.
// Returns true if the key closed the window.
func (w *engineWindow) keyDown(keyCode uint32) bool {
	if w.quitKey != 0 && keyCode == w.quitKey {
		return true
	}
	if w.on.keyDown != nil {
		w.on.keyDown(keyCode)
	}
	return false
}

func (w *engineWindow) keyUp(keyCode uint32) {
	if w.on.keyUp != nil {
		w.on.keyUp(keyCode)
	}
}

func (w *engineWindow) mouseButton(pressed bool, button int, x, y int32) {
	switch {
	case pressed && w.on.mouseDown != nil:
		w.on.mouseDown(button, x, y)
	case !pressed && w.on.mouseUp != nil:
		w.on.mouseUp(button, x, y)
	}
}

func (w *engineWindow) mouseMove(x, y int32) {
	if w.on.mouseMove != nil {
		w.on.mouseMove(x, y)
	}
}

func (w *engineWindow) scroll(delta float32) {
	if w.on.scroll != nil {
		w.on.scroll(delta)
	}
}

// framebufferResized records the new size and forwards it. Minimized windows report 0x0,
// which is recorded but not forwarded.
func (w *engineWindow) framebufferResized(width, height int) {
	w.width, w.height = width, height
	if width > 0 && height > 0 && w.on.resize != nil {
		w.on.resize(width, height)
	}
}
