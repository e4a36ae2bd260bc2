package common

// Key codes use GLFW numbering: printable keys are their uppercase ASCII value,
// everything else starts at 256.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key

// Movement.
const (
	KeyW = 87 // forward
	KeyS = 83 // back
	KeyA = 65 // strafe left, yaw left in Flight
	KeyD = 68 // strafe right, yaw right in Flight
	KeyE = 69 // up
	KeyQ = 81 // down
)

// Behavior selection, in Behavior declaration order.
const (
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
)

// Commands.
const (
	Key0          = 48  // capture cinematic end keyframe
	Key9          = 57  // capture cinematic start keyframe
	KeyC          = 67  // toggle click-and-drag look
	KeyH          = 72  // toggle help
	KeyP          = 80  // pause cinematic
	KeyX          = 88  // cancel cinematic
	KeySpace      = 32  // toggle orbit Y axis constraint
	KeyEsc        = 256 // quit
	KeyBackspace  = 259 // undo roll
	KeyKPSubtract = 333 // rotation speed down
	KeyKPAdd      = 334 // rotation speed up
)

// Mouse buttons, matching GLFW button indices.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
