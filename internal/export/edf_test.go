package export_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenPSG/edf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neubond/emgdash/internal/export"
	"github.com/neubond/emgdash/internal/models"
)

func TestWriteEDF(t *testing.T) {
	session := makeSession(t, "sess-1",
		[][]float64{
			{10, 20, 30, 40, 15, 25, 35, 45},
			{-5, 5, -5, 5, -5, 5, -5, 5},
		},
		[]int{0, 0, 1, 1, 1, 1, 0, 0})

	f, err := os.OpenFile(filepath.Join(t.TempDir(), "session.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	require.NoError(t, export.WriteEDF(f, session))

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	er, err := edf.Open(f)
	require.NoError(t, err)

	// 8 samples at 4 Hz -> two one-second data records per signal.
	for ch, want := range [][]float64{
		{10, 20, 30, 40, 15, 25, 35, 45},
		{-5, 5, -5, 5, -5, 5, -5, 5},
	} {
		sr, err := er.Signal(ch)
		require.NoError(t, err)

		samples := make([]float64, 8)
		n, err := sr.Read(samples)
		require.NoError(t, err)
		require.Equal(t, 8, n)

		// EDF quantizes to 16 bits, so compare within tolerance.
		for i := range want {
			assert.InDelta(t, want[i], samples[i], 0.01, "channel %d sample %d", ch, i)
		}
	}

	// A third signal does not exist.
	_, err = er.Signal(2)
	assert.Error(t, err)
}

func TestWriteEDFNoSamples(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "empty.edf"))
	require.NoError(t, err)
	defer f.Close()

	err = export.WriteEDF(f, models.Session{ID: "x", PatientID: "p"})
	require.ErrorIs(t, err, export.ErrSerialization)
}
