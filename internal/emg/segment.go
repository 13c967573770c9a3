package emg

import (
	"fmt"

	"github.com/neubond/emgdash/internal/models"
)

// Segment derives labeled phase intervals from per-sample markers in a
// single pass: one interval per run of identical markers, offsets in
// samples, start inclusive and end exclusive. For well-formed input the
// intervals partition [0, len(markers)) with no gaps and no overlaps.
func Segment(markers []int) ([]models.PhaseInterval, error) {
	if len(markers) == 0 {
		return nil, nil
	}

	current, ok := models.PhaseFromMarker(markers[0])
	if !ok {
		return nil, fmt.Errorf("%w: marker %d at sample 0", ErrUnknownPhaseLabel, markers[0])
	}

	var intervals []models.PhaseInterval
	start := 0

	for i := 1; i < len(markers); i++ {
		phase, ok := models.PhaseFromMarker(markers[i])
		if !ok {
			return nil, fmt.Errorf("%w: marker %d at sample %d", ErrUnknownPhaseLabel, markers[i], i)
		}
		if phase == current {
			continue
		}
		// Zero-length runs cannot happen here: i > start always holds.
		intervals = append(intervals, models.PhaseInterval{Label: current, Start: start, End: i})
		current = phase
		start = i
	}

	intervals = append(intervals, models.PhaseInterval{Label: current, Start: start, End: len(markers)})
	return intervals, nil
}

// ExpandIntervals is the inverse of Segment: it rebuilds the per-sample
// marker sequence from intervals. Used by exports and tests.
func ExpandIntervals(intervals []models.PhaseInterval, samples int) []int {
	markers := make([]int, samples)
	for _, iv := range intervals {
		for i := iv.Start; i < iv.End && i < samples; i++ {
			markers[i] = iv.Label.Marker()
		}
	}
	return markers
}
