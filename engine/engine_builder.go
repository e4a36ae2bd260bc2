package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/Carmen-Shannon/oxy-cam/engine/controls"
	"github.com/Carmen-Shannon/oxy-cam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cam/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-cam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerOptions passes options through to the engine's profiler.
// The camera status is appended to profiler lines automatically when a camera is set.
//
// Parameters:
//   - options: profiler options, e.g. profiler.WithUpdateInterval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerOptions(options ...profiler.ProfilerOption) EngineBuilderOption {
	return func(e *engine) {
		e.profilerOptions = append(e.profilerOptions, options...)
	}
}

// WithTickRate caps the frame loop at the given rate.
// Values <= 0 leave the loop uncapped (default).
//
// Parameters:
//   - fps: maximum frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// WithWindow sets the window that provides input events and the message loop.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera driven by the engine.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithControls sets the controls that turn window input into camera input.
// The controls are attached to the window, if one is configured.
//
// Parameters:
//   - c: the controls
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithControls(c controls.Controls) EngineBuilderOption {
	return func(e *engine) {
		e.controls = c
	}
}

// WithClock replaces the time source and sleep function used by the frame loop.
//
// Parameters:
//   - now: returns the current time
//   - sleep: blocks for the given duration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time, sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
		e.sleep = sleep
	}
}

// WithRecorder appends the camera pose to r after every frame.
// The engine does not close r. A write error stops recording.
//
// Parameters:
//   - r: the pose recorder, nil disables recording
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRecorder(r *telemetry.Recorder) EngineBuilderOption {
	return func(e *engine) {
		e.recorder = r
	}
}
