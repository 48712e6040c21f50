package analysis

import (
	"fmt"

	"gaze-go/internal/models"
)

// MalformedSampleError is returned when a gaze sample does not have exactly
// two components. It signals a broken client, not a recoverable condition.
type MalformedSampleError struct {
	Index int
	Len   int
}

func (e *MalformedSampleError) Error() string {
	return fmt.Sprintf("malformed gaze sample at index %d: expected 2 components, got %d", e.Index, e.Len)
}

// ExtractCoordinates splits samples into parallel x and y sequences,
// preserving order. An empty input yields two empty slices.
func ExtractCoordinates(samples []models.GazeSample) (xs, ys []float64, err error) {
	xs = make([]float64, 0, len(samples))
	ys = make([]float64, 0, len(samples))

	for i, s := range samples {
		if len(s) != 2 {
			return nil, nil, &MalformedSampleError{Index: i, Len: len(s)}
		}
		xs = append(xs, s[0])
		ys = append(ys, s[1])
	}

	return xs, ys, nil
}
