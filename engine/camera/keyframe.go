package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-cam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidSegment is returned when a keyframe pair does not span a positive duration.
var ErrInvalidSegment = errors.New("keyframe segment must have a positive duration")

// KeyFrame is a timestamped camera pose used as one endpoint of a cinematic segment.
// KeyFrames are plain values; two of them define one segment.
type KeyFrame struct {
	// Position is the world-space camera position.
	Position mgl32.Vec3
	// Orientation is the unit quaternion mapping camera-local space into world space.
	Orientation mgl32.Quat
	// Time is the timestamp of the pose in seconds.
	Time float32
}

// NewKeyFrame creates a KeyFrame from a pose and a timestamp.
//
// Parameters:
//   - position: world-space camera position
//   - orientation: camera orientation (normalized on construction)
//   - time: timestamp in seconds
//
// Returns:
//   - KeyFrame: the keyframe value
func NewKeyFrame(position mgl32.Vec3, orientation mgl32.Quat, time float32) KeyFrame {
	return KeyFrame{
		Position:    position,
		Orientation: orientation.Normalize(),
		Time:        time,
	}
}

// Transform is a rigid camera transform: a rotation followed by a translation.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// Matrix returns the local-to-world matrix of the transform.
// The rotation is applied first, then the translation.
//
// Returns:
//   - mgl32.Mat4: column-major transform matrix
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(t.Orientation.Mat4())
}

// Interpolate computes the camera transform at the given time along the segment a → b.
// The normalized parameter is (atTime - a.Time) / (b.Time - a.Time) and is not clamped, so
// times outside the segment extrapolate. Callers that do not want overshoot clamp atTime first.
// Position is interpolated linearly; orientation uses a shortest-arc normalized linear blend.
//
// Parameters:
//   - a: the keyframe at the start of the segment
//   - b: the keyframe at the end of the segment (b.Time must be greater than a.Time)
//   - atTime: the time to evaluate
//
// Returns:
//   - Transform: the interpolated transform
//   - error: ErrInvalidSegment if the segment has no positive duration
func Interpolate(a, b KeyFrame, atTime float32) (Transform, error) {
	span := b.Time - a.Time
	if !(span > 0) {
		return Transform{}, fmt.Errorf("interpolate %.3fs -> %.3fs: %w", a.Time, b.Time, ErrInvalidSegment)
	}

	t := (atTime - a.Time) / span
	return Transform{
		Position:    common.LerpVec3(a.Position, b.Position, t),
		Orientation: common.QuatNlerp(a.Orientation, b.Orientation, t),
	}, nil
}
