package report_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
	"github.com/neubond/emgdash/internal/report"
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

func TestWriteReport(t *testing.T) {
	a := makeSession(t, "a", [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}, []int{0, 1, 1, 0})
	b := makeSession(t, "b", [][]float64{{9, 10}}, []int{1, 1})

	var buf bytes.Buffer
	err := report.Write(&buf, []models.Session{a, b}, nil, report.Options{
		PatientName: "Maria Silva",
		Period:      "March 2024",
		Generated:   time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWriteReportEmbedsChart(t *testing.T) {
	s := makeSession(t, "a", [][]float64{{1, 2, 3, 4}}, []int{0, 0, 1, 1})

	chart := filepath.Join(t.TempDir(), "chart.png")
	f, err := os.Create(chart)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	require.NoError(t, f.Close())

	var plain, withChart bytes.Buffer
	opts := report.Options{Generated: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, report.Write(&plain, []models.Session{s}, nil, opts))
	require.NoError(t, report.Write(&withChart, []models.Session{s}, map[string]string{"a": chart}, opts))

	assert.Greater(t, withChart.Len(), plain.Len(), "embedded image should grow the document")
}

func TestWriteReportEmptySelection(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, nil, nil, report.Options{})
	assert.ErrorIs(t, err, emg.ErrEmptySelection)
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "Maria_Silva_report_20240315_093000.pdf", report.DefaultFilename("Maria Silva", now))
	assert.Equal(t, "patient_report_20240315_093000.pdf", report.DefaultFilename("", now))
	assert.Equal(t, "patient_report_20240315_093000.pdf", report.DefaultFilename("???", now))
}
