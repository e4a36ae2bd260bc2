package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitElevationLimit keeps spherical placement off the poles, where heading is undefined.
const orbitElevationLimit = float32(math.Pi/2 - 0.01)

// orbitBehavior keeps the camera on a sphere of radius orbitOffsetDistance around
// orbitTarget, always facing the target.
type orbitBehavior struct{}

// enter snapshots the current pose. The position becomes the orbit target, the pose is
// saved so it can be restored on exit, and the camera is tilted above and behind the target.
func (b orbitBehavior) enter(c *cameraImpl, _ Behavior) {
	c.savedPosition = c.position
	c.savedOrientation = c.orientation

	// orientation maps camera space into world space, which is the inverse of the view
	// rotation: the target inherits it as its own world orientation.
	c.orbitTarget = c.position
	c.orbitTargetOrientation = c.orientation
	c.orbitOffsetDistance = c.clampZoom(c.orbitOffsetDistance)

	if c.preferTargetYAxisOrbiting {
		c.level()
	}
	c.reposition()
	b.rotate(c, 0, orbitEntryPitchDegrees, 0)
}

func (orbitBehavior) exit(c *cameraImpl, _ Behavior) {
	c.position = c.savedPosition
	c.orientation = c.savedOrientation
}

func (b orbitBehavior) advance(c *cameraImpl, _ float32, in Input) Behavior {
	look := in.Look.Mul(c.rotationSpeed)
	if look[0] != 0 || look[1] != 0 || look[2] != 0 {
		b.rotate(c, look[0], look[1], look[2])
	}
	c.zoom(in.Zoom)
	return BehaviorOrbit
}

// rotate turns the camera around the target. With target Y axis orbiting, heading turns
// strictly about world Y and pitch is clamped, so roll never accumulates; otherwise the
// rotation follows the camera's local axes.
func (orbitBehavior) rotate(c *cameraImpl, heading, pitch, roll float32) {
	if c.preferTargetYAxisOrbiting {
		c.rotateLevel(heading, pitch)
	} else {
		c.rotateLocal(heading, pitch, roll)
	}
	c.reposition()
}

// reposition places the camera behind the target along the current look direction.
// Caller must hold the mutex.
func (c *cameraImpl) reposition() {
	c.position = c.orbitTarget.Sub(c.forward().Mul(c.orbitOffsetDistance))
}

// zoom moves the camera toward the target by delta*zoomSpeed, clamped to the zoom bounds.
// Caller must hold the mutex.
func (c *cameraImpl) zoom(delta float32) {
	c.orbitOffsetDistance = c.clampZoom(c.orbitOffsetDistance - delta*c.zoomSpeed)
	c.reposition()
}

// orbitAngles reads the camera's spherical coordinates around the target. Azimuth is
// measured about world Y from +Z toward +X, elevation from the horizontal plane.
// Caller must hold the mutex.
func (c *cameraImpl) orbitAngles() (azimuth, elevation float32) {
	dir := c.forward().Mul(-1)
	azimuth = float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
	elevation = mgl32.DegToRad(common.PitchDegrees(dir))
	return azimuth, elevation
}

// placeOnSphere turns the camera level toward the target from the given spherical
// coordinates. Elevation is clamped to ±orbitElevationLimit. Caller must hold the mutex.
func (c *cameraImpl) placeOnSphere(azimuth, elevation float32) {
	elevation = mgl32.Clamp(elevation, -orbitElevationLimit, orbitElevationLimit)
	sinAzim, cosAzim := math.Sincos(float64(azimuth))
	sinElev, cosElev := math.Sincos(float64(elevation))
	back := mgl32.Vec3{
		float32(cosElev * sinAzim),
		float32(sinElev),
		float32(cosElev * cosAzim),
	}
	right := common.WorldY.Cross(back).Normalize()
	up := back.Cross(right)
	c.orientation = common.QuatFromBasis(right, up, back)
	c.reposition()
}
