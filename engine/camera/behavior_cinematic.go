package camera

import (
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cinematicBehavior plays back the segment between two keyframes. Live input is ignored
// except Pause and Cancel; the pose is overwritten from Interpolate every frame.
// The timer saturates at the segment duration and the camera then holds the final pose.
type cinematicBehavior struct {
	from, to   KeyFrame
	hasSegment bool

	easing ease.TweenFunc
	tween  *gween.Tween

	// elapsed is the playback timer in [0, duration]; at is the (eased) keyframe time
	// passed to Interpolate.
	elapsed float32
	at      float32
	paused  bool

	previous Behavior
}

func newCinematicBehavior() *cinematicBehavior {
	return &cinematicBehavior{easing: ease.Linear, previous: BehaviorFirstPerson}
}

// cinematic returns the cinematic payload. Caller must hold the mutex.
func (c *cameraImpl) cinematic() *cinematicBehavior {
	return c.controllers[BehaviorCinematic].(*cinematicBehavior)
}

func (cb *cinematicBehavior) duration() float32 {
	return cb.to.Time - cb.from.Time
}

// setSegment validates and stores a keyframe pair and rewinds the timer.
func (cb *cinematicBehavior) setSegment(a, b KeyFrame) error {
	if _, err := Interpolate(a, b, a.Time); err != nil {
		return err
	}
	cb.from, cb.to = a, b
	cb.hasSegment = true
	cb.rebuild()
	return nil
}

func (cb *cinematicBehavior) setEasing(easing ease.TweenFunc) {
	if easing == nil {
		easing = ease.Linear
	}
	cb.easing = easing
	if cb.hasSegment {
		cb.rebuild()
	}
}

// rebuild creates a fresh tween over the segment and rewinds the timer.
func (cb *cinematicBehavior) rebuild() {
	cb.tween = gween.New(cb.from.Time, cb.to.Time, cb.duration(), cb.easing)
	cb.rewind()
}

func (cb *cinematicBehavior) rewind() {
	if cb.tween != nil {
		cb.tween.Reset()
	}
	cb.elapsed = 0
	cb.at = cb.from.Time
}

func (cb *cinematicBehavior) enter(_ *cameraImpl, prev Behavior) {
	cb.previous = prev
	cb.paused = false
	cb.rewind()
}

func (cb *cinematicBehavior) exit(*cameraImpl, Behavior) {
	cb.paused = false
}

func (cb *cinematicBehavior) advance(c *cameraImpl, dt float32, in Input) Behavior {
	if in.Cancel {
		return cb.previous
	}
	if in.Pause {
		cb.paused = !cb.paused
	}
	if !cb.hasSegment {
		return BehaviorCinematic
	}

	if !cb.paused && cb.elapsed < cb.duration() {
		cb.elapsed = min(cb.elapsed+dt, cb.duration())
		cb.at, _ = cb.tween.Update(dt)
		if cb.elapsed >= cb.duration() {
			cb.at = cb.to.Time
		}
	}

	tr, err := Interpolate(cb.from, cb.to, cb.at)
	if err != nil {
		log.Printf("[Camera] cinematic playback stopped: %v", err)
		return cb.previous
	}
	c.position = tr.Position
	c.orientation = tr.Orientation
	return BehaviorCinematic
}

// rotate is a no-op: the pose is driven by the keyframes.
func (cb *cinematicBehavior) rotate(*cameraImpl, float32, float32, float32) {}
