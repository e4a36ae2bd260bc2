package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/Carmen-Shannon/oxy-cam/engine/controls"
	"github.com/Carmen-Shannon/oxy-cam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cam/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-cam/engine/window"
)

type engine struct {
	mu *sync.Mutex

	running bool
	quit    bool

	window   window.Window
	camera   camera.Camera
	controls controls.Controls

	profiler         *profiler.Profiler
	profilingEnabled bool
	profilerOptions  []profiler.ProfilerOption

	// recorder is nil when pose recording is off.
	recorder *telemetry.Recorder

	// frameLimit is the minimum frame duration; 0 = uncapped.
	frameLimit time.Duration

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine drives the camera frame loop.
// Everything runs on the calling goroutine: each frame samples input, steps the camera,
// then hands the frame to the tick and render callbacks.
type Engine interface {
	// Window returns the engine's window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the engine's window instance
	Window() window.Window

	// Camera returns the camera driven by the engine.
	//
	// Returns:
	//   - camera.Camera: the camera, or nil if none was configured
	Camera() camera.Camera

	// Controls returns the input controls feeding the camera.
	//
	// Returns:
	//   - controls.Controls: the controls, or nil if the camera is driven by the tick callback
	Controls() controls.Controls

	// EnableProfiler enables performance profiling output.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate caps the frame rate.
	//
	// Parameters:
	//   - fps: frames per second, 0 or less uncaps the loop
	SetTickRate(fps float64)

	// SetTickCallback sets the function called every frame after the camera has been updated.
	//
	// Parameters:
	//   - callback: function receiving delta time in seconds since the last frame
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback sets the function called every frame after the tick callback. A render
	// target reads the camera matrices or uniform here.
	//
	// Parameters:
	//   - callback: function receiving delta time in seconds since the last frame
	SetRenderCallback(callback func(deltaTime float32))

	// Step runs a single frame with the given delta time.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Step(deltaTime float32)

	// Run starts the frame loop and blocks until Quit is called or the window is closed.
	Run()

	// Quit stops the frame loop after the current frame.
	Quit()
}

// NewEngine creates a new Engine with the given options.
// If a window and a camera are both configured, window resizes update the camera aspect ratio.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the configured engine instance
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:    &sync.Mutex{},
		now:   time.Now,
		sleep: time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.camera != nil {
		cam := e.camera
		e.profilerOptions = append([]profiler.ProfilerOption{profiler.WithStatus(cam.Status)}, e.profilerOptions...)
	}
	e.profiler = profiler.NewProfiler(e.profilerOptions...)

	if e.window != nil {
		if e.controls != nil {
			e.controls.Attach(e.window)
		}
		e.window.SetResizeCallback(func(width, height int) {
			if e.camera == nil || width <= 0 || height <= 0 {
				return
			}
			e.camera.SetAspect(float32(width) / float32(height))
		})
		if e.camera != nil && e.window.Height() > 0 {
			e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
		}
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controls() controls.Controls {
	return e.controls
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) Step(deltaTime float32) {
	e.mu.Lock()
	tick, render := e.tickCallback, e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if e.controls != nil {
		e.controls.Update(deltaTime)
	}
	if tick != nil {
		tick(deltaTime)
	}
	if render != nil {
		render(deltaTime)
	}
	if profiling {
		e.profiler.Tick()
	}
	if e.recorder != nil && e.camera != nil {
		if err := e.recorder.Record(deltaTime, e.camera); err != nil {
			log.Printf("[Engine] pose recording stopped: %v", err)
			e.recorder = nil
		}
	}
}

func (e *engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		log.Printf("[Engine] Run called while already running")
		return
	}
	e.running = true
	e.quit = false
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	last := e.now()
	frame := func() bool {
		start := e.now()
		dt := float32(start.Sub(last).Seconds())
		last = start

		e.Step(dt)

		e.mu.Lock()
		limit, quit := e.frameLimit, e.quit
		e.mu.Unlock()
		if limit > 0 {
			if remaining := limit - e.now().Sub(start); remaining > 0 {
				e.sleep(remaining)
			}
		}
		return !quit
	}

	if e.window == nil {
		for frame() {
		}
		return
	}

	e.window.SetUpdateCallback(func() {
		if !frame() {
			if err := e.window.Close(); err != nil {
				log.Printf("[Engine] failed to close window: %v", err)
			}
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quit = true
}

// frameDuration converts a frame rate into a minimum frame duration; 0 = uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
