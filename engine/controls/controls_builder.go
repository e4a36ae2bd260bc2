package controls

// ControlsBuilderOption is a functional option for configuring Controls.
type ControlsBuilderOption func(*controlsImpl)

// WithMouseSensitivity sets the look angle per pixel of mouse motion.
//
// Parameters:
//   - sensitivity: degrees per pixel, before the camera rotation speed is applied
//
// Returns:
//   - ControlsBuilderOption: functional option to set the sensitivity
func WithMouseSensitivity(sensitivity float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithClickAndDrag makes mouse look require the left button to be held.
//
// Parameters:
//   - enabled: true to require the left button
//
// Returns:
//   - ControlsBuilderOption: functional option to set click-and-drag look
func WithClickAndDrag(enabled bool) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.clickAndDrag = enabled
	}
}

// WithCursorCapture lets the controls capture the window cursor whenever mouse look is
// free, releasing it in click-and-drag mode. Windows without cursor capture ignore it.
//
// Parameters:
//   - enabled: true to manage the cursor
//
// Returns:
//   - ControlsBuilderOption: functional option to enable cursor capture
func WithCursorCapture(enabled bool) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.captureCursor = enabled
	}
}

// WithSegmentDuration sets the time given to a captured end keyframe.
//
// Parameters:
//   - seconds: the segment length
//
// Returns:
//   - ControlsBuilderOption: functional option to set the segment duration
func WithSegmentDuration(seconds float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if seconds > 0 {
			c.segmentDuration = seconds
		}
	}
}
