package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the WGSL declaration matching GPUCameraUniform.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the per-frame camera block a render target uploads after ApplyInput.
// Size: 224 bytes. Each vec3 shares its 16-byte slot with the float that follows it,
// so the Go and WGSL layouts agree without explicit padding.
type GPUCameraUniform struct {
	View           mgl32.Mat4 // offset   0
	Proj           mgl32.Mat4 // offset  64
	ViewProj       mgl32.Mat4 // offset 128
	CameraPosition mgl32.Vec3 // offset 192
	Near           float32    // offset 204
	CameraForward  mgl32.Vec3 // offset 208
	Far            float32    // offset 220
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer in WGSL field order.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = appendFloats(buf, g.View[:]...)
	buf = appendFloats(buf, g.Proj[:]...)
	buf = appendFloats(buf, g.ViewProj[:]...)
	buf = appendFloats(buf, g.CameraPosition[0], g.CameraPosition[1], g.CameraPosition[2], g.Near)
	buf = appendFloats(buf, g.CameraForward[0], g.CameraForward[1], g.CameraForward[2], g.Far)
	return buf
}

func appendFloats(buf []byte, values ...float32) []byte {
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
