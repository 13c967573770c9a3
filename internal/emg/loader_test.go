package emg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

func testRecord() models.RawRecord {
	start := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	return models.RawRecord{
		ID:         "sess-1",
		PatientID:  "pat-1",
		StartTime:  start,
		EndTime:    start.Add(3 * time.Second),
		SampleRate: 2,
		Channels: [][]float64{
			{10, 20, 30, 40, 50, 60},
			{1, 2, 3, 4, 5, 6},
		},
		PhaseMarkers: []int{0, 0, 1, 1, 1, 0},
	}
}

func TestLoad(t *testing.T) {
	rec := testRecord()

	sessions, err := emg.Load([]models.RawRecord{rec})
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions["sess-1"]
	assert.Equal(t, "pat-1", s.PatientID)
	assert.Equal(t, 3*time.Second, s.Duration())
	assert.Equal(t, 6, s.SampleCount())

	require.Len(t, s.Channels, 2)
	assert.Equal(t, 0, s.Channels[0].Index)
	assert.Equal(t, 1, s.Channels[1].Index)

	// Sample rate 2 Hz -> timestamps half a second apart.
	require.Len(t, s.Timestamps, 6)
	assert.Equal(t, rec.StartTime, s.Timestamps[0])
	assert.Equal(t, rec.StartTime.Add(2500*time.Millisecond), s.Timestamps[5])

	require.Len(t, s.Phases, 3)
	assert.Equal(t, models.PhaseAttempt, s.Phases[1].Label)
}

func TestLoadExplicitTimestamps(t *testing.T) {
	rec := testRecord()
	rec.SampleRate = 0
	rec.Timestamps = make([]time.Time, 6)
	for i := range rec.Timestamps {
		rec.Timestamps[i] = rec.StartTime.Add(time.Duration(i) * time.Second)
	}

	sessions, err := emg.Load([]models.RawRecord{rec})
	require.NoError(t, err)
	assert.Equal(t, rec.Timestamps, sessions["sess-1"].Timestamps)
}

func TestLoadMalformed(t *testing.T) {
	mutations := map[string]func(*models.RawRecord){
		"missing id":         func(r *models.RawRecord) { r.ID = "" },
		"missing patient":    func(r *models.RawRecord) { r.PatientID = "" },
		"end before start":   func(r *models.RawRecord) { r.EndTime = r.StartTime.Add(-time.Second) },
		"no channels":        func(r *models.RawRecord) { r.Channels = nil },
		"ragged channels":    func(r *models.RawRecord) { r.Channels[1] = r.Channels[1][:3] },
		"marker mismatch":    func(r *models.RawRecord) { r.PhaseMarkers = r.PhaseMarkers[:2] },
		"no time base":       func(r *models.RawRecord) { r.SampleRate = 0 },
		"timestamp mismatch": func(r *models.RawRecord) { r.Timestamps = []time.Time{r.StartTime} },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			rec := testRecord()
			mutate(&rec)
			_, err := emg.Load([]models.RawRecord{rec})
			require.ErrorIs(t, err, emg.ErrMalformedRecord)
		})
	}
}

func TestLoadUnknownMarkerHaltsPipeline(t *testing.T) {
	rec := testRecord()
	rec.PhaseMarkers[3] = 2

	_, err := emg.Load([]models.RawRecord{rec})
	require.ErrorIs(t, err, emg.ErrUnknownPhaseLabel)
	assert.Contains(t, err.Error(), "sess-1")
}
