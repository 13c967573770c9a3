package emg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

func TestSegment(t *testing.T) {
	intervals, err := emg.Segment([]int{0, 0, 1, 1, 1, 0})
	require.NoError(t, err)

	require.Equal(t, []models.PhaseInterval{
		{Label: models.PhaseRest, Start: 0, End: 2},
		{Label: models.PhaseAttempt, Start: 2, End: 5},
		{Label: models.PhaseRest, Start: 5, End: 6},
	}, intervals)
}

func TestSegmentSingleRun(t *testing.T) {
	intervals, err := emg.Segment([]int{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []models.PhaseInterval{
		{Label: models.PhaseAttempt, Start: 0, End: 3},
	}, intervals)
}

func TestSegmentEmpty(t *testing.T) {
	intervals, err := emg.Segment(nil)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestSegmentUnknownMarker(t *testing.T) {
	_, err := emg.Segment([]int{0, 1, 2, 1})
	require.ErrorIs(t, err, emg.ErrUnknownPhaseLabel)
	assert.Contains(t, err.Error(), "sample 2")
}

// Intervals must partition the timeline: expanding them back to
// per-sample granularity reproduces the original marker sequence.
func TestSegmentPartitionsTimeline(t *testing.T) {
	markers := []int{0, 1, 1, 0, 0, 0, 1, 0, 1, 1, 1, 1, 0, 1}

	intervals, err := emg.Segment(markers)
	require.NoError(t, err)

	prevEnd := 0
	for _, iv := range intervals {
		assert.Equal(t, prevEnd, iv.Start, "intervals must be contiguous")
		assert.Less(t, iv.Start, iv.End, "no degenerate intervals")
		prevEnd = iv.End
	}
	assert.Equal(t, len(markers), prevEnd)

	assert.Equal(t, markers, emg.ExpandIntervals(intervals, len(markers)))
}

func TestCoerceUnknownMarkers(t *testing.T) {
	got := emg.CoerceUnknownMarkers([]int{0, 2, 1, -1, 7})
	assert.Equal(t, []int{0, 0, 1, 0, 0}, got)
}
