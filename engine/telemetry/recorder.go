// Package telemetry records camera poses to CSV, either live from a running camera or
// sampled from a cinematic keyframe segment.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"
)

// PoseRecord is one camera pose in the CSV output.
type PoseRecord struct {
	Frame    int     `csv:"frame"`
	Time     float32 `csv:"time"`
	Behavior string  `csv:"behavior"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
	Z        float32 `csv:"z"`
	QW       float32 `csv:"qw"`
	QX       float32 `csv:"qx"`
	QY       float32 `csv:"qy"`
	QZ       float32 `csv:"qz"`
}

func poseRecord(frame int, t float32, behavior string, tr camera.Transform) PoseRecord {
	return PoseRecord{
		Frame:    frame,
		Time:     t,
		Behavior: behavior,
		X:        tr.Position[0],
		Y:        tr.Position[1],
		Z:        tr.Position[2],
		QW:       tr.Orientation.W,
		QX:       tr.Orientation.V[0],
		QY:       tr.Orientation.V[1],
		QZ:       tr.Orientation.V[2],
	}
}

// Transform converts the record back into a pose.
func (r PoseRecord) Transform() camera.Transform {
	return camera.Transform{
		Position:    mgl32.Vec3{r.X, r.Y, r.Z},
		Orientation: mgl32.Quat{W: r.QW, V: mgl32.Vec3{r.QX, r.QY, r.QZ}}.Normalize(),
	}
}

// Recorder appends one PoseRecord per frame to a CSV stream.
type Recorder struct {
	mu            *sync.Mutex
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	frame         int
	elapsed       float32
}

// NewRecorder creates the file at path and records into it.
// Returns nil if path is empty (recording disabled); a nil Recorder is safe to use.
//
// Parameters:
//   - path: the CSV file to create
//
// Returns:
//   - *Recorder: the recorder, or nil if disabled
//   - error: error if the file cannot be created
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating recording directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	r := NewWriterRecorder(f)
	r.closer = f
	return r, nil
}

// NewWriterRecorder records into an existing writer. Close does not close w.
func NewWriterRecorder(w io.Writer) *Recorder {
	return &Recorder{mu: &sync.Mutex{}, out: w}
}

// Record appends the camera's current pose.
//
// Parameters:
//   - deltaTime: time since the previous frame in seconds
//   - cam: the camera to sample
//
// Returns:
//   - error: error if the row cannot be written
func (r *Recorder) Record(deltaTime float32, cam camera.Camera) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.elapsed += deltaTime
	s := cam.Snapshot()
	rec := poseRecord(r.frame, r.elapsed, s.Behavior.String(), camera.Transform{Position: s.Position, Orientation: s.Orientation})
	r.frame++
	return r.write([]PoseRecord{rec})
}

// write emits rows, with the header on the first call. Caller must hold the mutex.
func (r *Recorder) write(records []PoseRecord) error {
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing poses: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("writing poses: %w", err)
	}
	return nil
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Close closes the underlying file, if the recorder created one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
