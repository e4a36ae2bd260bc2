package camera

import (
	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// firstPersonBehavior walks on the horizontal plane: looking up or down does not change
// the direction of travel.
type firstPersonBehavior struct{}

func (firstPersonBehavior) enter(c *cameraImpl, _ Behavior) {
	c.level()
}

func (firstPersonBehavior) exit(*cameraImpl, Behavior) {}

func (b firstPersonBehavior) advance(c *cameraImpl, dt float32, in Input) Behavior {
	look := in.Look.Mul(c.rotationSpeed)
	b.rotate(c, look[0], look[1], 0)

	right := c.right()
	right[1] = 0
	if right.Len() < 1e-6 {
		right = common.WorldX
	}
	right = right.Normalize()
	forward := common.WorldY.Cross(right)

	c.updateVelocity(dt, in.Move)
	c.translate(dt, right, common.WorldY, forward)
	return BehaviorFirstPerson
}

func (firstPersonBehavior) rotate(c *cameraImpl, heading, pitch, _ float32) {
	c.rotateLevel(heading, pitch)
}

// spectatorBehavior flies where the camera looks, with vertical motion along world Y.
type spectatorBehavior struct{}

func (spectatorBehavior) enter(c *cameraImpl, _ Behavior) {
	c.level()
}

func (spectatorBehavior) exit(*cameraImpl, Behavior) {}

func (b spectatorBehavior) advance(c *cameraImpl, dt float32, in Input) Behavior {
	look := in.Look.Mul(c.rotationSpeed)
	b.rotate(c, look[0], look[1], 0)

	c.updateVelocity(dt, in.Move)
	c.translate(dt, c.right(), common.WorldY, c.forward())
	return BehaviorSpectator
}

func (spectatorBehavior) rotate(c *cameraImpl, heading, pitch, _ float32) {
	c.rotateLevel(heading, pitch)
}

// flightBehavior treats look input as angular rates. The angular velocity is eased toward
// the requested rate and integrated over time, so the camera keeps turning briefly after
// input stops and accumulates roll.
type flightBehavior struct{}

func (flightBehavior) enter(*cameraImpl, Behavior) {}

func (flightBehavior) exit(*cameraImpl, Behavior) {}

func (b flightBehavior) advance(c *cameraImpl, dt float32, in Input) Behavior {
	target := in.Look.Mul(c.rotationSpeed * c.flightTurnRate)
	rate := mgl32.Vec3{c.angularAcceleration, c.angularAcceleration, c.angularAcceleration}
	c.angularVelocity = easeToward(c.angularVelocity, target, rate, dt)

	turn := c.angularVelocity.Mul(dt)
	b.rotate(c, turn[0], turn[1], turn[2])

	c.updateVelocity(dt, in.Move)
	c.translate(dt, c.right(), c.up(), c.forward())
	return BehaviorFlight
}

func (flightBehavior) rotate(c *cameraImpl, heading, pitch, roll float32) {
	c.rotateLocal(heading, pitch, roll)
}
