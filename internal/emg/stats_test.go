package emg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

func TestSummarize(t *testing.T) {
	day1 := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC)

	sessions := []models.Session{
		{ID: "a", StartTime: day1, EndTime: day1.Add(2 * time.Minute)},
		{ID: "b", StartTime: day1.Add(time.Hour), EndTime: day1.Add(time.Hour + 4*time.Minute)},
		{ID: "c", StartTime: day2, EndTime: day2.Add(3 * time.Minute)},
	}

	summary, err := emg.Summarize(sessions)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Sessions)
	assert.Equal(t, 9*time.Minute, summary.TotalDuration)
	assert.Equal(t, 3*time.Minute, summary.MeanDuration)

	require.Len(t, summary.PerDay, 2)
	assert.Equal(t, "2024-03-14", summary.PerDay[0].Day)
	assert.Equal(t, 2, summary.PerDay[0].Sessions)
	assert.Equal(t, 6*time.Minute, summary.PerDay[0].TotalDuration)
	assert.Equal(t, "2024-03-15", summary.PerDay[1].Day)
	assert.Equal(t, 1, summary.PerDay[1].Sessions)
}

func TestSummarizeEmptySelection(t *testing.T) {
	_, err := emg.Summarize(nil)
	require.ErrorIs(t, err, emg.ErrEmptySelection)
}
