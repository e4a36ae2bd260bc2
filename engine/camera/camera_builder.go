package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithBehavior selects the behavior the camera switches into once construction finishes.
// The switch runs the normal transition side effects, so WithBehavior(BehaviorOrbit)
// orbits around the configured position.
//
// Parameters:
//   - b: the initial behavior
//
// Returns:
//   - CameraBuilderOption: functional option to set the initial behavior
func WithBehavior(b Behavior) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.initialBehavior = b
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - p: the camera position
//
// Returns:
//   - CameraBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithOrientation sets the initial orientation. The quaternion is normalized.
//
// Parameters:
//   - q: the camera orientation
//
// Returns:
//   - CameraBuilderOption: functional option to set the orientation
func WithOrientation(q mgl32.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orientation = q.Normalize()
	}
}

// WithVelocity sets the per-axis top speed in units per second.
//
// Parameters:
//   - v: strafe, vertical and forward top speed
//
// Returns:
//   - CameraBuilderOption: functional option to set the velocity
func WithVelocity(v mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.velocity = v
	}
}

// WithAcceleration sets the per-axis easing rate toward the requested velocity.
//
// Parameters:
//   - a: easing rate per axis (1/s)
//
// Returns:
//   - CameraBuilderOption: functional option to set the acceleration
func WithAcceleration(a mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.acceleration = a
	}
}

// WithRotationSpeed sets the multiplier applied to angular input.
//
// Parameters:
//   - speed: rotation multiplier
//
// Returns:
//   - CameraBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotationSpeed = speed
	}
}

// WithFlightRates sets how flight mode converts look input into angular velocity.
//
// Parameters:
//   - turnRate: degrees per second for one unit of (speed-scaled) look input
//   - angularAcceleration: easing rate toward the requested angular velocity
//
// Returns:
//   - CameraBuilderOption: functional option to set the flight rates
func WithFlightRates(turnRate, angularAcceleration float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.flightTurnRate = turnRate
		c.angularAcceleration = angularAcceleration
	}
}

// WithBounds restricts the camera position to an axis-aligned box outside Orbit mode.
//
// Parameters:
//   - min: lower corner
//   - max: upper corner
//
// Returns:
//   - CameraBuilderOption: functional option to set the bounds
func WithBounds(min, max mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.hasBounds = true
		c.boundsMin = min
		c.boundsMax = max
	}
}

// WithOrbitZoomBounds sets the minimum and maximum orbit distance.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the zoom bounds
func WithOrbitZoomBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orbitMinZoom = min
		c.orbitMaxZoom = max
	}
}

// WithOrbitOffsetDistance sets the initial orbit distance. It is clamped to the zoom bounds
// after all options have been applied.
//
// Parameters:
//   - d: distance from the orbit target
//
// Returns:
//   - CameraBuilderOption: functional option to set the orbit distance
func WithOrbitOffsetDistance(d float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orbitOffsetDistance = d
	}
}

// WithZoomSpeed sets the multiplier applied to zoom input.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraBuilderOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomSpeed = speed
	}
}

// WithPreferTargetYAxisOrbiting enables or disables world Y constrained orbiting.
//
// Parameters:
//   - prefer: true to orbit strictly about world Y
//
// Returns:
//   - CameraBuilderOption: functional option to set the orbiting mode
func WithPreferTargetYAxisOrbiting(prefer bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.preferTargetYAxisOrbiting = prefer
	}
}

// WithPerspective sets the projection parameters.
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width / height)
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the projection
func WithPerspective(fovDegrees, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = mgl32.DegToRad(fovDegrees)
		c.aspect = aspect
		c.near = near
		c.far = far
	}
}

// WithKeyFrames configures the cinematic segment. An invalid segment (b.Time not after
// a.Time) is ignored, leaving the camera without a segment.
//
// Parameters:
//   - a: the segment start
//   - b: the segment end
//
// Returns:
//   - CameraBuilderOption: functional option to set the cinematic segment
func WithKeyFrames(a, b KeyFrame) CameraBuilderOption {
	return func(c *cameraImpl) {
		_ = c.cinematic().setSegment(a, b)
	}
}

// WithCinematicEasing sets the easing curve used to advance through the cinematic segment.
// The default is ease.Linear, which plays the segment at constant speed.
//
// Parameters:
//   - easing: a gween easing function
//
// Returns:
//   - CameraBuilderOption: functional option to set the cinematic easing
func WithCinematicEasing(easing ease.TweenFunc) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.cinematic().setEasing(easing)
	}
}
