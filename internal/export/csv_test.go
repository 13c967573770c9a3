package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/export"
	"github.com/neubond/emgdash/internal/models"
)

func makeSession(t *testing.T, id string, channels [][]float64, markers []int) models.Session {
	t.Helper()
	start := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	sessions, err := emg.Load([]models.RawRecord{{
		ID:           id,
		PatientID:    "pat-1",
		StartTime:    start,
		EndTime:      start.Add(time.Duration(len(markers)) * 250 * time.Millisecond),
		SampleRate:   4,
		Channels:     channels,
		PhaseMarkers: markers,
	}})
	require.NoError(t, err)
	return sessions[id]
}

func TestWriteCSV(t *testing.T) {
	a := makeSession(t, "a", [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}, []int{0, 1, 1, 0})
	b := makeSession(t, "b", [][]float64{{9, 10}}, []int{1, 1})
	bundle := models.ExportBundle{Sessions: []models.Session{a, b}}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, bundle))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"session_id", "channel_index", "sample_index", "timestamp", "amplitude", "phase_label"}, rows[0])

	// Row count is the sum over sessions of channels x samples.
	assert.Len(t, rows, 1+2*4+1*2)

	// Grouped by session in selection order, then channel, then sample.
	assert.Equal(t, []string{"a", "0", "0", "2024-03-14T10:00:00Z", "1", "rest"}, rows[1])
	assert.Equal(t, []string{"a", "0", "1", "2024-03-14T10:00:00.25Z", "2", "attempt"}, rows[2])
	assert.Equal(t, "1", rows[5][1], "second channel follows the first")
	assert.Equal(t, []string{"b", "0", "0", "2024-03-14T10:00:00Z", "9", "attempt"}, rows[9])
}

func TestWriteCSVEmptyBundle(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteCSV(&buf, models.ExportBundle{})
	require.ErrorIs(t, err, export.ErrEmptyBundle)
	assert.Zero(t, buf.Len(), "no partial file on failure")
}

func TestWriteCSVRaggedChannels(t *testing.T) {
	s := makeSession(t, "a", [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}, []int{0, 1, 1, 0})
	// Corrupt the bundle after load; export must re-validate.
	s.Channels[1].Samples = s.Channels[1].Samples[:2]

	var buf bytes.Buffer
	err := export.WriteCSV(&buf, models.ExportBundle{Sessions: []models.Session{s}})
	require.ErrorIs(t, err, export.ErrSerialization)
	assert.True(t, strings.Contains(err.Error(), "channel 1"))
}
