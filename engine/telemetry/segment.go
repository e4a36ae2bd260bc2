package telemetry

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-cam/engine/camera"
	"github.com/gocarina/gocsv"
)

// SampleSegment evaluates a keyframe segment every step seconds from a.Time to b.Time,
// always including both endpoints.
//
// Parameters:
//   - a: the segment start
//   - b: the segment end
//   - step: sampling interval in seconds, must be positive
//
// Returns:
//   - []PoseRecord: the sampled poses, with Behavior set to "Cinematic"
//   - error: error if the segment is invalid or step is not positive
func SampleSegment(a, b camera.KeyFrame, step float32) ([]PoseRecord, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("sample step must be positive, got %v", step)
	}

	var records []PoseRecord
	for i := 0; ; i++ {
		at := a.Time + float32(i)*step
		last := at >= b.Time
		if last {
			at = b.Time
		}
		tr, err := camera.Interpolate(a, b, at)
		if err != nil {
			return nil, err
		}
		records = append(records, poseRecord(i, at, camera.BehaviorCinematic.String(), tr))
		if last {
			return records, nil
		}
	}
}

// WritePoses writes records, including the header, as CSV.
func WritePoses(w io.Writer, records []PoseRecord) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing poses: %w", err)
	}
	return nil
}

// ReadPoses parses CSV written by WritePoses or a Recorder.
func ReadPoses(r io.Reader) ([]PoseRecord, error) {
	var records []PoseRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading poses: %w", err)
	}
	return records, nil
}
