// Package config loads, validates and saves the YAML configuration for the camera rig,
// its cinematic segment, the window, the engine loop and the input controls.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/Carmen-Shannon/oxy-cam/engine/controls"
	"github.com/Carmen-Shannon/oxy-cam/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned by Validate when a value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the full application configuration.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Cinematic CinematicConfig `yaml:"cinematic"`
	Window    WindowConfig    `yaml:"window"`
	Engine    EngineConfig    `yaml:"engine"`
	Controls  ControlsConfig  `yaml:"controls"`
}

// CameraConfig holds the initial rig state.
type CameraConfig struct {
	Behavior      string    `yaml:"behavior"`
	Position      []float32 `yaml:"position"`
	Velocity      []float32 `yaml:"velocity"`
	Acceleration  []float32 `yaml:"acceleration"`
	RotationSpeed float32   `yaml:"rotation_speed"`
	Fov           float32   `yaml:"fov"` // degrees
	Near          float32   `yaml:"near"`
	Far           float32   `yaml:"far"`

	Orbit  OrbitConfig  `yaml:"orbit"`
	Flight FlightConfig `yaml:"flight"`
	Bounds BoundsConfig `yaml:"bounds"`
}

// OrbitConfig holds the orbit distance limits.
type OrbitConfig struct {
	MinZoom           float32 `yaml:"min_zoom"`
	MaxZoom           float32 `yaml:"max_zoom"`
	OffsetDistance    float32 `yaml:"offset_distance"`
	ZoomSpeed         float32 `yaml:"zoom_speed"`
	PreferTargetYAxis bool    `yaml:"prefer_target_y_axis"`
}

// FlightConfig holds the flight turn response.
type FlightConfig struct {
	TurnRate            float32 `yaml:"turn_rate"`            // degrees per second at full input
	AngularAcceleration float32 `yaml:"angular_acceleration"` // easing rate toward the turn rate
}

// BoundsConfig restricts the camera position outside Orbit mode.
type BoundsConfig struct {
	Enabled bool      `yaml:"enabled"`
	Min     []float32 `yaml:"min"`
	Max     []float32 `yaml:"max"`
}

// CinematicConfig holds the cinematic segment.
type CinematicConfig struct {
	Easing    string           `yaml:"easing"`
	KeyFrames []KeyFrameConfig `yaml:"keyframes"`
}

// KeyFrameConfig is a keyframe in file form.
type KeyFrameConfig struct {
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"` // heading, pitch, roll in degrees
	Time     float32   `yaml:"time"`
}

// WindowConfig holds the window settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// EngineConfig holds the frame loop settings.
type EngineConfig struct {
	TickRate    float32 `yaml:"tick_rate"`    // frames per second, 0 = uncapped
	Profiling   bool    `yaml:"profiling"`    // log FPS and camera status
	LogInterval float32 `yaml:"log_interval"` // seconds between profiler lines
	RecordPath  string  `yaml:"record_path"`  // CSV file for per-frame camera poses, empty = off
}

// ControlsConfig holds the input mapping settings.
type ControlsConfig struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // degrees per pixel of mouse motion
	ClickAndDrag     bool    `yaml:"click_and_drag"`
	CaptureCursor    bool    `yaml:"capture_cursor"`   // hide and lock the cursor during free mouse look
	SegmentDuration  float32 `yaml:"segment_duration"` // time given to a captured end keyframe
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_bounce":   ease.OutBounce,
}

// EasingByName resolves a cinematic easing function. An empty name means linear.
//
// Parameters:
//   - name: the easing name, e.g. "in_out_quad"
//
// Returns:
//   - ease.TweenFunc: the easing function
//   - error: error if the name is unknown
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the configuration at path on top of the embedded defaults, so the file only
// needs the values it overrides. If the file does not exist it is created with the defaults.
// The result is validated.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or fails validation
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
		return cfg, nil
	}
	return cfg, err
}

// read parses and validates an existing config file on top of the defaults.
func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
//
// Parameters:
//   - path: the YAML file path
//   - cfg: the configuration to write
//
// Returns:
//   - error: error if the file cannot be written
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values the camera rig itself does not check.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig describing the first bad value
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if _, err := camera.ParseBehavior(c.Camera.Behavior); err != nil {
		return invalid("camera.behavior: %v", err)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return invalid("camera.fov must be in (0, 180), got %v", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera.near and camera.far must satisfy 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.RotationSpeed <= 0 {
		return invalid("camera.rotation_speed must be positive, got %v", c.Camera.RotationSpeed)
	}
	o := c.Camera.Orbit
	if o.MinZoom <= 0 || o.MaxZoom < o.MinZoom {
		return invalid("camera.orbit zoom bounds must satisfy 0 < min_zoom <= max_zoom, got %v and %v", o.MinZoom, o.MaxZoom)
	}
	if b := c.Camera.Bounds; b.Enabled {
		lo := common.Vec3FromSlice(b.Min, mgl32.Vec3{})
		hi := common.Vec3FromSlice(b.Max, mgl32.Vec3{})
		for i := range 3 {
			if lo[i] > hi[i] {
				return invalid("camera.bounds min %v exceeds max %v", lo, hi)
			}
		}
	}

	if _, err := EasingByName(c.Cinematic.Easing); err != nil {
		return invalid("cinematic.easing: %v", err)
	}
	switch len(c.Cinematic.KeyFrames) {
	case 0:
	case 2:
		a, b := c.Cinematic.KeyFrames[0], c.Cinematic.KeyFrames[1]
		if !(b.Time > a.Time) {
			return invalid("cinematic keyframe times must increase, got %v then %v", a.Time, b.Time)
		}
	default:
		return invalid("cinematic.keyframes needs exactly 0 or 2 entries, got %d", len(c.Cinematic.KeyFrames))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Engine.TickRate < 0 {
		return invalid("engine.tick_rate must not be negative, got %v", c.Engine.TickRate)
	}
	if c.Controls.SegmentDuration <= 0 {
		return invalid("controls.segment_duration must be positive, got %v", c.Controls.SegmentDuration)
	}
	return nil
}

// KeyFrame converts the keyframe to its runtime form.
func (k KeyFrameConfig) KeyFrame() camera.KeyFrame {
	rot := common.Vec3FromSlice(k.Rotation, mgl32.Vec3{})
	return camera.NewKeyFrame(
		common.Vec3FromSlice(k.Position, mgl32.Vec3{}),
		common.YawPitchRoll(rot[0], rot[1], rot[2]),
		k.Time,
	)
}

// AspectRatio returns the window aspect ratio.
func (w WindowConfig) AspectRatio() float32 {
	if w.Height == 0 {
		return 1
	}
	return float32(w.Width) / float32(w.Height)
}

// CameraOptions translates the configuration into camera builder options.
// Missing vector entries fall back to the rig defaults.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
//   - error: error if the behavior or easing name is unknown
func (c *Config) CameraOptions() ([]camera.CameraBuilderOption, error) {
	behavior, err := camera.ParseBehavior(c.Camera.Behavior)
	if err != nil {
		return nil, err
	}
	easing, err := EasingByName(c.Cinematic.Easing)
	if err != nil {
		return nil, err
	}

	cc := c.Camera
	options := []camera.CameraBuilderOption{
		camera.WithPosition(common.Vec3FromSlice(cc.Position, mgl32.Vec3{})),
		camera.WithVelocity(common.Vec3FromSlice(cc.Velocity, mgl32.Vec3{1, 1, 1})),
		camera.WithAcceleration(common.Vec3FromSlice(cc.Acceleration, mgl32.Vec3{4, 4, 4})),
		camera.WithRotationSpeed(common.Coalesce(cc.RotationSpeed, 0.3)),
		camera.WithPerspective(
			common.Coalesce(cc.Fov, 90),
			c.Window.AspectRatio(),
			common.Coalesce(cc.Near, 0.01),
			common.Coalesce(cc.Far, 100),
		),
		camera.WithFlightRates(common.Coalesce(cc.Flight.TurnRate, 90), common.Coalesce(cc.Flight.AngularAcceleration, 8)),
		camera.WithOrbitZoomBounds(cc.Orbit.MinZoom, cc.Orbit.MaxZoom),
		camera.WithOrbitOffsetDistance(common.Coalesce(cc.Orbit.OffsetDistance, cc.Orbit.MinZoom)),
		camera.WithZoomSpeed(common.Coalesce(cc.Orbit.ZoomSpeed, 0.25)),
		camera.WithPreferTargetYAxisOrbiting(cc.Orbit.PreferTargetYAxis),
		camera.WithCinematicEasing(easing),
	}
	if cc.Bounds.Enabled {
		options = append(options, camera.WithBounds(
			common.Vec3FromSlice(cc.Bounds.Min, mgl32.Vec3{}),
			common.Vec3FromSlice(cc.Bounds.Max, mgl32.Vec3{}),
		))
	}
	if len(c.Cinematic.KeyFrames) == 2 {
		options = append(options, camera.WithKeyFrames(
			c.Cinematic.KeyFrames[0].KeyFrame(),
			c.Cinematic.KeyFrames[1].KeyFrame(),
		))
	}
	// Last, so the behavior switch sees every other setting.
	options = append(options, camera.WithBehavior(behavior))
	return options, nil
}

// ControlsOptions translates the controls section into controls builder options.
func (c *Config) ControlsOptions() []controls.ControlsBuilderOption {
	return []controls.ControlsBuilderOption{
		controls.WithMouseSensitivity(common.Coalesce(c.Controls.MouseSensitivity, 0.1)),
		controls.WithClickAndDrag(c.Controls.ClickAndDrag),
		controls.WithCursorCapture(c.Controls.CaptureCursor),
		controls.WithSegmentDuration(c.Controls.SegmentDuration),
	}
}

// WindowOptions converts the window section into window builder options.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithResizable(c.Window.Resizable),
	}
}

// Apply pushes the live-reloadable settings into a running camera. The behavior and pose
// are left alone so a reload does not move the camera. The orbit Y axis preference and the
// cinematic keyframes are only pushed when they differ from prev, so a reload keeps runtime
// toggles and does not rewind playback.
//
// Parameters:
//   - cam: the camera to update
//   - prev: the configuration applied before, or nil to push everything
func (c *Config) Apply(cam camera.Camera, prev *Config) {
	cc := c.Camera
	cam.SetVelocity(common.Vec3FromSlice(cc.Velocity, cam.Velocity()))
	cam.SetAcceleration(common.Vec3FromSlice(cc.Acceleration, cam.Acceleration()))
	cam.SetRotationSpeed(common.Coalesce(cc.RotationSpeed, cam.RotationSpeed()))
	cam.SetOrbitZoomBounds(cc.Orbit.MinZoom, cc.Orbit.MaxZoom)
	if prev == nil || prev.Camera.Orbit.PreferTargetYAxis != cc.Orbit.PreferTargetYAxis {
		cam.SetPreferTargetYAxisOrbiting(cc.Orbit.PreferTargetYAxis)
	}
	cam.SetPerspective(cc.Fov, cam.Aspect(), cc.Near, cc.Far)
	if cc.Bounds.Enabled {
		cam.SetBounds(common.Vec3FromSlice(cc.Bounds.Min, mgl32.Vec3{}), common.Vec3FromSlice(cc.Bounds.Max, mgl32.Vec3{}))
	} else {
		cam.ClearBounds()
	}
	if len(c.Cinematic.KeyFrames) == 2 && (prev == nil || !keyFramesEqual(prev.Cinematic.KeyFrames, c.Cinematic.KeyFrames)) {
		if err := cam.SetKeyFrames(c.Cinematic.KeyFrames[0].KeyFrame(), c.Cinematic.KeyFrames[1].KeyFrame()); err != nil {
			log.Printf("[Config] keyframes not applied: %v", err)
		}
	}
	log.Printf("[Config] applied reloaded settings")
}

func keyFramesEqual(a, b []KeyFrameConfig) bool {
	return slices.EqualFunc(a, b, func(x, y KeyFrameConfig) bool {
		return x.Time == y.Time && slices.Equal(x.Position, y.Position) && slices.Equal(x.Rotation, y.Rotation)
	})
}
