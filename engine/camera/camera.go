package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// maxPitchDegrees bounds free-look pitch so the camera never flips past vertical.
	maxPitchDegrees float32 = 90.0

	// orbitEntryPitchDegrees tilts the camera above and behind the target when orbiting starts.
	orbitEntryPitchDegrees float32 = -30.0
)

type cameraImpl struct {
	mu *sync.Mutex

	behavior        Behavior
	initialBehavior Behavior
	controllers     map[Behavior]behaviorController

	position    mgl32.Vec3
	orientation mgl32.Quat

	// Motion easing. velocity holds the per-axis top speed, acceleration the easing rate.
	velocity        mgl32.Vec3
	acceleration    mgl32.Vec3
	currentVelocity mgl32.Vec3
	rotationSpeed   float32

	hasBounds bool
	boundsMin mgl32.Vec3
	boundsMax mgl32.Vec3

	// Flight
	flightTurnRate      float32
	angularAcceleration float32
	angularVelocity     mgl32.Vec3

	// Orbit
	orbitTarget               mgl32.Vec3
	orbitTargetOrientation    mgl32.Quat
	orbitOffsetDistance       float32
	orbitMinZoom              float32
	orbitMaxZoom              float32
	zoomSpeed                 float32
	preferTargetYAxisOrbiting bool
	savedPosition             mgl32.Vec3
	savedOrientation          mgl32.Quat

	// Projection
	fov    float32
	aspect float32
	near   float32
	far    float32

	projectionMatrix mgl32.Mat4
}

// Camera defines the camera rig: a behavior state machine that turns per-frame input into
// a camera pose and derives view and projection matrices from it.
type Camera interface {
	// Behavior returns the active behavior.
	//
	// Returns:
	//   - Behavior: the active behavior
	Behavior() Behavior

	// SetBehavior switches the active behavior. Requesting the active behavior is a no-op.
	// Switching into Orbit makes the current position the orbit target and tilts the camera
	// 30 degrees above and behind it. Switching into Cinematic rewinds the segment timer.
	//
	// Parameters:
	//   - b: the behavior to activate
	SetBehavior(b Behavior)

	// ApplyInput advances the camera by one frame.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds since the previous frame
	//   - in: the input sampled for this frame
	ApplyInput(deltaTime float32, in Input)

	// Rotate applies heading, pitch and roll in degrees using the active behavior's rules.
	// RotationSpeed is not applied.
	//
	// Parameters:
	//   - heading: rotation about the vertical axis (positive turns left)
	//   - pitch: rotation about the right axis (positive looks up)
	//   - roll: rotation about the view axis
	Rotate(heading, pitch, roll float32)

	// UndoRoll levels the camera, removing roll while keeping the look direction.
	// Does nothing in Orbit mode while target Y axis orbiting is enabled.
	UndoRoll()

	// LookAt orients the camera toward a world-space point keeping the world up axis.
	//
	// Parameters:
	//   - target: the point to face
	LookAt(target mgl32.Vec3)

	// Position returns the world-space camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera. In Orbit mode this moves the orbit target instead,
	// keeping the current offset.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Orientation returns the unit quaternion mapping camera-local space into world space.
	//
	// Returns:
	//   - mgl32.Quat: the camera orientation
	Orientation() mgl32.Quat

	// SetOrientation replaces the orientation. The quaternion is normalized.
	//
	// Parameters:
	//   - q: the new orientation
	SetOrientation(q mgl32.Quat)

	// Forward returns the world-space look direction.
	Forward() mgl32.Vec3

	// Right returns the world-space right direction.
	Right() mgl32.Vec3

	// Up returns the world-space up direction.
	Up() mgl32.Vec3

	// Velocity returns the per-axis top speed in units per second.
	Velocity() mgl32.Vec3

	// SetVelocity sets the per-axis top speed in units per second.
	SetVelocity(v mgl32.Vec3)

	// Acceleration returns the per-axis easing rate.
	Acceleration() mgl32.Vec3

	// SetAcceleration sets the per-axis easing rate. Higher values approach the target
	// velocity faster.
	SetAcceleration(a mgl32.Vec3)

	// CurrentVelocity returns the eased camera-local velocity.
	CurrentVelocity() mgl32.Vec3

	// RotationSpeed returns the multiplier applied to angular input.
	RotationSpeed() float32

	// SetRotationSpeed sets the multiplier applied to angular input.
	SetRotationSpeed(speed float32)

	// SetBounds restricts the camera position to an axis-aligned box outside Orbit mode.
	//
	// Parameters:
	//   - min: lower corner
	//   - max: upper corner
	SetBounds(min, max mgl32.Vec3)

	// ClearBounds removes the position restriction.
	ClearBounds()

	// OrbitTarget returns the point the camera orbits around.
	OrbitTarget() mgl32.Vec3

	// OrbitTargetOrientation returns the world orientation the camera had when orbiting
	// started, i.e. the inverse of its view rotation at that moment.
	OrbitTargetOrientation() mgl32.Quat

	// OrbitOffsetDistance returns the distance between the camera and the orbit target.
	OrbitOffsetDistance() float32

	// SetOrbitOffsetDistance sets the orbit distance, clamped to the zoom bounds.
	SetOrbitOffsetDistance(d float32)

	// OrbitZoomBounds returns the minimum and maximum orbit distance.
	OrbitZoomBounds() (min, max float32)

	// SetOrbitZoomBounds sets the orbit distance bounds and re-clamps the current distance.
	SetOrbitZoomBounds(min, max float32)

	// OrbitAngles returns the camera's spherical coordinates around the orbit target in
	// radians. Azimuth 0 puts the camera on the target's +Z side; positive elevation is above it.
	OrbitAngles() (azimuth, elevation float32)

	// SetOrbitAngles places the camera on the orbit sphere at the given angles, level and
	// facing the target. Elevation is clamped just short of the poles.
	// Does nothing outside Orbit mode.
	//
	// Parameters:
	//   - azimuth: angle about world Y in radians
	//   - elevation: angle above the horizontal plane in radians
	SetOrbitAngles(azimuth, elevation float32)

	// PreferTargetYAxisOrbiting reports whether heading input orbits strictly about world Y.
	PreferTargetYAxisOrbiting() bool

	// SetPreferTargetYAxisOrbiting enables or disables world Y constrained orbiting.
	SetPreferTargetYAxisOrbiting(prefer bool)

	// SetKeyFrames configures the cinematic segment and rewinds its timer.
	//
	// Parameters:
	//   - a: the segment start
	//   - b: the segment end
	//
	// Returns:
	//   - error: ErrInvalidSegment if b.Time is not after a.Time
	SetKeyFrames(a, b KeyFrame) error

	// KeyFrames returns the configured cinematic segment.
	//
	// Returns:
	//   - a, b: the segment endpoints
	//   - ok: false if no segment has been configured
	KeyFrames() (a, b KeyFrame, ok bool)

	// CinematicTime returns the elapsed playback time in seconds, in [0, segment duration].
	CinematicTime() float32

	// CinematicPaused reports whether cinematic playback is paused.
	CinematicPaused() bool

	// SetPerspective recomputes the projection matrix.
	//
	// Parameters:
	//   - fovDegrees: vertical field of view in degrees
	//   - aspect: viewport aspect ratio (width / height)
	//   - near: near plane distance
	//   - far: far plane distance
	SetPerspective(fovDegrees, aspect, near, far float32)

	// SetAspect updates the aspect ratio, e.g. on window resize.
	SetAspect(aspect float32)

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns lookAt(position, position + forward, up) for the current pose.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the world-space view frustum of the current pose.
	Frustum() common.Frustum

	// Uniform returns the GPU camera uniform for the current pose.
	Uniform() GPUCameraUniform

	// Snapshot returns a copy of the camera state.
	Snapshot() State

	// Status returns a single-line human readable summary of the camera state.
	Status() string
}

// State is a value copy of the camera state.
type State struct {
	Behavior                  Behavior
	Position                  mgl32.Vec3
	Orientation               mgl32.Quat
	Velocity                  mgl32.Vec3
	Acceleration              mgl32.Vec3
	CurrentVelocity           mgl32.Vec3
	AngularVelocity           mgl32.Vec3
	RotationSpeed             float32
	OrbitTarget               mgl32.Vec3
	OrbitOffsetDistance       float32
	OrbitMinZoom              float32
	OrbitMaxZoom              float32
	PreferTargetYAxisOrbiting bool
	CinematicTime             float32
	CinematicPaused           bool
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new camera rig.
// The rig starts in FirstPerson at the origin looking down -Z, unless WithBehavior selects
// another behavior, in which case the switch (and its side effects) happens after all other
// options have been applied.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:              &sync.Mutex{},
		behavior:        BehaviorFirstPerson,
		initialBehavior: BehaviorFirstPerson,
		orientation:     mgl32.QuatIdent(),

		velocity:      mgl32.Vec3{1, 1, 1},
		acceleration:  mgl32.Vec3{4, 4, 4},
		rotationSpeed: 0.3,

		flightTurnRate:      90.0,
		angularAcceleration: 8.0,

		orbitTargetOrientation:    mgl32.QuatIdent(),
		orbitOffsetDistance:       1.5,
		orbitMinZoom:              1.5,
		orbitMaxZoom:              5.0,
		zoomSpeed:                 0.25,
		preferTargetYAxisOrbiting: true,
		savedOrientation:          mgl32.QuatIdent(),

		fov:    mgl32.DegToRad(90),
		aspect: 1.0,
		near:   0.01,
		far:    100.0,
	}
	c.controllers = map[Behavior]behaviorController{
		BehaviorFirstPerson: &firstPersonBehavior{},
		BehaviorSpectator:   &spectatorBehavior{},
		BehaviorFlight:      &flightBehavior{},
		BehaviorOrbit:       &orbitBehavior{},
		BehaviorCinematic:   newCinematicBehavior(),
	}

	for _, option := range options {
		option(c)
	}
	c.orbitOffsetDistance = c.clampZoom(c.orbitOffsetDistance)
	c.updateProjection()
	c.setBehavior(c.initialBehavior)
	return c
}

// --- internal helpers ---

func (c *cameraImpl) forward() mgl32.Vec3 { return c.orientation.Rotate(common.LocalForward) }
func (c *cameraImpl) right() mgl32.Vec3   { return c.orientation.Rotate(common.WorldX) }
func (c *cameraImpl) up() mgl32.Vec3      { return c.orientation.Rotate(common.WorldY) }

// setBehavior performs the state machine transition. Caller must hold the mutex.
func (c *cameraImpl) setBehavior(b Behavior) {
	if b == c.behavior {
		return
	}
	next, ok := c.controllers[b]
	if !ok {
		return
	}
	prev := c.behavior
	c.controllers[prev].exit(c, b)
	c.currentVelocity = mgl32.Vec3{}
	c.angularVelocity = mgl32.Vec3{}
	c.behavior = b
	next.enter(c, prev)
}

// easeToward moves current toward target per axis with an exponential approach.
// Each axis closes 1 - e^(-rate*dt) of the remaining gap, so it never overshoots.
func easeToward(current, target, rate mgl32.Vec3, dt float32) mgl32.Vec3 {
	for i := range 3 {
		alpha := 1 - float32(math.Exp(-float64(rate[i]*dt)))
		current[i] += (target[i] - current[i]) * alpha
	}
	return current
}

// clampAxis clamps each movement axis into [-1, 1].
func clampAxis(v mgl32.Vec3) mgl32.Vec3 {
	return common.ClampVec3(v, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
}

// updateVelocity eases currentVelocity toward the velocity requested by the move axis.
// Caller must hold the mutex.
func (c *cameraImpl) updateVelocity(dt float32, move mgl32.Vec3) {
	move = clampAxis(move)
	target := mgl32.Vec3{move[0] * c.velocity[0], move[1] * c.velocity[1], move[2] * c.velocity[2]}
	c.currentVelocity = easeToward(c.currentVelocity, target, c.acceleration, dt)
}

// translate moves the camera by currentVelocity along the given world-space axes.
// Caller must hold the mutex.
func (c *cameraImpl) translate(dt float32, right, up, forward mgl32.Vec3) {
	v := c.currentVelocity
	d := right.Mul(v[0]).Add(up.Mul(v[1])).Add(forward.Mul(v[2])).Mul(dt)
	c.position = c.position.Add(d)
	if c.hasBounds {
		c.position = common.ClampVec3(c.position, c.boundsMin, c.boundsMax)
	}
}

// rotateLevel yaws about world Y and pitches about the local X axis, keeping pitch within
// ±maxPitchDegrees. Caller must hold the mutex.
func (c *cameraImpl) rotateLevel(heading, pitch float32) {
	cur := common.PitchDegrees(c.forward())
	pitch = mgl32.Clamp(cur+pitch, -maxPitchDegrees, maxPitchDegrees) - cur

	if heading != 0 {
		c.orientation = mgl32.QuatRotate(mgl32.DegToRad(heading), common.WorldY).Mul(c.orientation)
	}
	if pitch != 0 {
		c.orientation = c.orientation.Mul(mgl32.QuatRotate(mgl32.DegToRad(pitch), common.WorldX))
	}
	c.orientation = c.orientation.Normalize()
}

// rotateLocal applies a yaw-pitch-roll rotation about the camera's own axes.
// Caller must hold the mutex.
func (c *cameraImpl) rotateLocal(heading, pitch, roll float32) {
	c.orientation = c.orientation.Mul(common.YawPitchRoll(heading, pitch, roll)).Normalize()
}

// level removes roll while keeping the look direction. Caller must hold the mutex.
func (c *cameraImpl) level() {
	fwd := c.forward()
	right := fwd.Cross(common.WorldY)
	if right.Len() < 1e-6 {
		// Looking straight up or down: keep the current heading.
		right = c.right()
		right[1] = 0
		if right.Len() < 1e-6 {
			return
		}
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()
	c.orientation = common.QuatFromBasis(right, up, fwd.Mul(-1))
}

// clampZoom clamps an orbit distance to the zoom bounds. Caller must hold the mutex.
func (c *cameraImpl) clampZoom(d float32) float32 {
	return mgl32.Clamp(d, c.orbitMinZoom, c.orbitMaxZoom)
}

// updateProjection recomputes the projection matrix. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
}

// viewMatrix derives the view matrix from the pose. Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.forward()), c.up())
}

// --- Camera implementation ---

func (c *cameraImpl) Behavior() Behavior {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.behavior
}

func (c *cameraImpl) SetBehavior(b Behavior) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBehavior(b)
}

func (c *cameraImpl) ApplyInput(deltaTime float32, in Input) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if deltaTime < 0 {
		deltaTime = 0
	}
	next := c.controllers[c.behavior].advance(c, deltaTime, in)
	c.setBehavior(next)
}

func (c *cameraImpl) Rotate(heading, pitch, roll float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controllers[c.behavior].rotate(c, heading, pitch, roll)
}

func (c *cameraImpl) UndoRoll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.behavior == BehaviorOrbit && c.preferTargetYAxisOrbiting {
		return
	}
	c.level()
	c.angularVelocity[2] = 0
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dir := target.Sub(c.position)
	if dir.Len() < 1e-6 {
		return
	}
	fwd := dir.Normalize()
	right := fwd.Cross(common.WorldY)
	if right.Len() < 1e-6 {
		right = common.WorldX
	}
	right = right.Normalize()
	c.orientation = common.QuatFromBasis(right, right.Cross(fwd).Normalize(), fwd.Mul(-1))
	if c.behavior == BehaviorOrbit {
		c.orbitTarget = target
		c.orbitOffsetDistance = c.clampZoom(dir.Len())
		c.reposition()
	}
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.behavior == BehaviorOrbit {
		c.orbitTarget = c.orbitTarget.Add(p.Sub(c.position))
	}
	c.position = p
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(q mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = q.Normalize()
	if c.behavior == BehaviorOrbit {
		c.reposition()
	}
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward()
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right()
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up()
}

func (c *cameraImpl) Velocity() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

func (c *cameraImpl) SetVelocity(v mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = v
}

func (c *cameraImpl) Acceleration() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acceleration
}

func (c *cameraImpl) SetAcceleration(a mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acceleration = a
}

func (c *cameraImpl) CurrentVelocity() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentVelocity
}

func (c *cameraImpl) RotationSpeed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotationSpeed
}

func (c *cameraImpl) SetRotationSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotationSpeed = speed
}

func (c *cameraImpl) SetBounds(min, max mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasBounds = true
	c.boundsMin = min
	c.boundsMax = max
}

func (c *cameraImpl) ClearBounds() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasBounds = false
}

func (c *cameraImpl) OrbitTarget() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitTarget
}

func (c *cameraImpl) OrbitTargetOrientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitTargetOrientation
}

func (c *cameraImpl) OrbitOffsetDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitOffsetDistance
}

func (c *cameraImpl) SetOrbitOffsetDistance(d float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbitOffsetDistance = c.clampZoom(d)
	if c.behavior == BehaviorOrbit {
		c.reposition()
	}
}

func (c *cameraImpl) OrbitZoomBounds() (min, max float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitMinZoom, c.orbitMaxZoom
}

func (c *cameraImpl) SetOrbitZoomBounds(min, max float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbitMinZoom = min
	c.orbitMaxZoom = max
	c.orbitOffsetDistance = c.clampZoom(c.orbitOffsetDistance)
	if c.behavior == BehaviorOrbit {
		c.reposition()
	}
}

func (c *cameraImpl) OrbitAngles() (azimuth, elevation float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitAngles()
}

func (c *cameraImpl) SetOrbitAngles(azimuth, elevation float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.behavior == BehaviorOrbit {
		c.placeOnSphere(azimuth, elevation)
	}
}

func (c *cameraImpl) PreferTargetYAxisOrbiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preferTargetYAxisOrbiting
}

func (c *cameraImpl) SetPreferTargetYAxisOrbiting(prefer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preferTargetYAxisOrbiting = prefer
	if prefer && c.behavior == BehaviorOrbit {
		// Constrained orbiting assumes a level camera.
		c.level()
		c.reposition()
	}
}

func (c *cameraImpl) SetKeyFrames(a, b KeyFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cinematic().setSegment(a, b)
}

func (c *cameraImpl) KeyFrames() (a, b KeyFrame, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cb := c.cinematic()
	return cb.from, cb.to, cb.hasSegment
}

func (c *cameraImpl) CinematicTime() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cinematic().elapsed
}

func (c *cameraImpl) CinematicPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cinematic().paused
}

func (c *cameraImpl) SetPerspective(fovDegrees, aspect, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = mgl32.DegToRad(fovDegrees)
	c.aspect = aspect
	c.near = near
	c.far = far
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix())
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.projectionMatrix.Mul4(c.viewMatrix()))
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.viewMatrix()
	return GPUCameraUniform{
		View:           view,
		Proj:           c.projectionMatrix,
		ViewProj:       c.projectionMatrix.Mul4(view),
		CameraPosition: c.position,
		Near:           c.near,
		CameraForward:  c.forward(),
		Far:            c.far,
	}
}

func (c *cameraImpl) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	cb := c.cinematic()
	return State{
		Behavior:                  c.behavior,
		Position:                  c.position,
		Orientation:               c.orientation,
		Velocity:                  c.velocity,
		Acceleration:              c.acceleration,
		CurrentVelocity:           c.currentVelocity,
		AngularVelocity:           c.angularVelocity,
		RotationSpeed:             c.rotationSpeed,
		OrbitTarget:               c.orbitTarget,
		OrbitOffsetDistance:       c.orbitOffsetDistance,
		OrbitMinZoom:              c.orbitMinZoom,
		OrbitMaxZoom:              c.orbitMaxZoom,
		PreferTargetYAxisOrbiting: c.preferTargetYAxisOrbiting,
		CinematicTime:             cb.elapsed,
		CinematicPaused:           cb.paused,
	}
}

func (c *cameraImpl) Status() string {
	s := c.Snapshot()
	status := fmt.Sprintf("Behavior: %s | Position: x:%.2f y:%.2f z:%.2f | Velocity: x:%.2f y:%.2f z:%.2f | Rotation speed: %.2f",
		s.Behavior,
		s.Position[0], s.Position[1], s.Position[2],
		s.CurrentVelocity[0], s.CurrentVelocity[1], s.CurrentVelocity[2],
		s.RotationSpeed,
	)
	switch s.Behavior {
	case BehaviorOrbit:
		if s.PreferTargetYAxisOrbiting {
			status += " | Target Y axis orbiting"
		} else {
			status += " | Free orbiting"
		}
	case BehaviorCinematic:
		status += fmt.Sprintf(" | Timer: %.2fs", s.CinematicTime)
		if s.CinematicPaused {
			status += " (paused)"
		}
	}
	return status
}
