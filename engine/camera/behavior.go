package camera

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Behavior identifies one of the camera control schemes.
type Behavior int

const (
	// BehaviorFirstPerson walks on the horizontal plane with free look and clamped pitch.
	BehaviorFirstPerson Behavior = iota
	// BehaviorSpectator flies along the current look direction with free look.
	BehaviorSpectator
	// BehaviorFlight integrates yaw, pitch and roll rates over time.
	BehaviorFlight
	// BehaviorOrbit rotates around a target point at a clamped distance.
	BehaviorOrbit
	// BehaviorCinematic plays back an interpolated keyframe segment.
	BehaviorCinematic
)

var behaviorNames = map[Behavior]string{
	BehaviorFirstPerson: "FirstPerson",
	BehaviorSpectator:   "Spectator",
	BehaviorFlight:      "Flight",
	BehaviorOrbit:       "Orbit",
	BehaviorCinematic:   "Cinematic",
}

func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Behavior(%d)", int(b))
}

// ParseBehavior resolves a behavior from its name. Matching is case-insensitive and
// ignores dashes, underscores and spaces, so "first_person" and "FirstPerson" are equal.
//
// Parameters:
//   - name: the behavior name
//
// Returns:
//   - Behavior: the matching behavior
//   - error: error if the name is not a known behavior
func ParseBehavior(name string) (Behavior, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for b, n := range behaviorNames {
		if strings.ToLower(n) == key {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown camera behavior %q", name)
}

// Input is one frame of camera input, already decoupled from any device.
type Input struct {
	// Move is the movement axis: X strafes right, Y moves up, Z moves forward. Each in [-1, 1].
	Move mgl32.Vec3
	// Look is the angular input in degrees before RotationSpeed is applied:
	// X is heading (positive turns left), Y is pitch (positive looks up), Z is roll.
	Look mgl32.Vec3
	// Zoom adjusts the orbit distance. Positive values zoom in.
	Zoom float32
	// Pause toggles cinematic playback.
	Pause bool
	// Cancel leaves cinematic playback for the behavior that was active before it.
	Cancel bool
}

// behaviorController is the per-behavior part of the camera state machine.
// All methods are called with the camera mutex held.
type behaviorController interface {
	// enter is called after the camera switched into this behavior from prev.
	enter(c *cameraImpl, prev Behavior)

	// exit is called before the camera switches from this behavior to next.
	exit(c *cameraImpl, next Behavior)

	// advance steps the behavior by one frame and returns the behavior that should be
	// active afterwards (normally its own).
	advance(c *cameraImpl, deltaTime float32, in Input) Behavior

	// rotate applies heading, pitch and roll in degrees using this behavior's rules.
	rotate(c *cameraImpl, heading, pitch, roll float32)
}
