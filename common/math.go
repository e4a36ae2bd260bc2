package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes in the right-handed, -Z forward convention used by the camera.
var (
	WorldX       = mgl32.Vec3{1, 0, 0}
	WorldY       = mgl32.Vec3{0, 1, 0}
	WorldZ       = mgl32.Vec3{0, 0, 1}
	LocalForward = mgl32.Vec3{0, 0, -1}
)

// Perspective creates a perspective projection matrix.
// Maps view-space depth into the [0, 1] clip range (WebGPU / Direct3D convention)
// rather than the [-1, 1] range produced by mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	out := mgl32.Ident4()

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// YawPitchRoll builds a rotation from heading, pitch and roll angles in degrees.
// The rotation order is Y * X * Z (yaw-pitch-roll), matching how model matrices are composed.
//
// Parameters:
//   - heading: rotation about the Y axis in degrees
//   - pitch: rotation about the X axis in degrees
//   - roll: rotation about the Z axis in degrees
//
// Returns:
//   - mgl32.Quat: the combined unit quaternion
func YawPitchRoll(heading, pitch, roll float32) mgl32.Quat {
	qy := mgl32.QuatRotate(mgl32.DegToRad(heading), WorldY)
	qx := mgl32.QuatRotate(mgl32.DegToRad(pitch), WorldX)
	qz := mgl32.QuatRotate(mgl32.DegToRad(roll), WorldZ)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatNlerp blends two quaternions linearly along the shortest arc and renormalizes.
// This is intentionally not a great-circle slerp: the angular speed is not constant
// across the blend, which is only noticeable for large angular deltas.
//
// Parameters:
//   - a: orientation at amount 0
//   - b: orientation at amount 1
//   - amount: blend factor, not clamped (values outside [0, 1] extrapolate)
//
// Returns:
//   - mgl32.Quat: the normalized blended quaternion
func QuatNlerp(a, b mgl32.Quat, amount float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	q := mgl32.Quat{
		W: a.W + (b.W-a.W)*amount,
		V: a.V.Add(b.V.Sub(a.V).Mul(amount)),
	}
	if q.Len() == 0 {
		return a
	}
	return q.Normalize()
}

// QuatFromBasis builds a rotation whose local X, Y and Z axes map onto right, up and back.
// The three vectors must form a right-handed orthonormal basis.
//
// Parameters:
//   - right: world-space direction of the local +X axis
//   - up: world-space direction of the local +Y axis
//   - back: world-space direction of the local +Z axis
//
// Returns:
//   - mgl32.Quat: the unit quaternion for the basis
func QuatFromBasis(right, up, back mgl32.Vec3) mgl32.Quat {
	m := mgl32.Mat4FromCols(right.Vec4(0), up.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(m).Normalize()
}

// LerpVec3 linearly interpolates between two points. The amount is not clamped.
//
// Parameters:
//   - a: point at amount 0
//   - b: point at amount 1
//   - amount: blend factor
//
// Returns:
//   - mgl32.Vec3: the interpolated point
func LerpVec3(a, b mgl32.Vec3, amount float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(amount))
}

// ClampVec3 clamps each component of v into the box spanned by lo and hi.
//
// Parameters:
//   - v: the vector to clamp
//   - lo: per-component lower bounds
//   - hi: per-component upper bounds
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampVec3(v, lo, hi mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v[0], lo[0], hi[0]),
		mgl32.Clamp(v[1], lo[1], hi[1]),
		mgl32.Clamp(v[2], lo[2], hi[2]),
	}
}

// PitchDegrees returns the elevation of a direction above the horizontal plane in degrees.
func PitchDegrees(dir mgl32.Vec3) float32 {
	l := dir.Len()
	if l == 0 {
		return 0
	}
	s := mgl32.Clamp(dir.Y()/l, -1, 1)
	return mgl32.RadToDeg(float32(math.Asin(float64(s))))
}
