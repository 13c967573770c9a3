package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/OpenPSG/edf"

	"github.com/neubond/emgdash/internal/models"
)

// WriteEDF writes one session's channels as an EDF+ file for use with
// clinical signal viewers. EDF quantizes to 16-bit integers, so this is
// the interop path, not the lossless one; the zip bundle is.
func WriteEDF(w io.WriteSeeker, session models.Session) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if session.SampleCount() == 0 {
		return fmt.Errorf("%w: session %s has no samples", ErrSerialization, session.ID)
	}

	perRecord := samplesPerSecond(session)
	if perRecord <= 0 {
		return fmt.Errorf("%w: session %s has no usable sample rate", ErrSerialization, session.ID)
	}

	signals := make([]edf.SignalHeader, len(session.Channels))
	for i, ch := range session.Channels {
		pmin, pmax := physicalRange(ch.Samples)
		signals[i] = edf.SignalHeader{
			Label:             fmt.Sprintf("EMG Ch%d", ch.Index+1),
			TransducerType:    "Surface electrode",
			PhysicalDimension: "uV",
			PhysicalMin:       pmin,
			PhysicalMax:       pmax,
			DigitalMin:        -32768,
			DigitalMax:        32767,
			SamplesPerRecord:  perRecord,
		}
	}

	ew, err := edf.Create(w, edf.Header{
		Version:            edf.Version0,
		PatientID:          session.PatientID,
		RecordingID:        "Session " + session.ID,
		StartTime:          session.StartTime,
		DataRecordDuration: time.Second,
		SignalCount:        len(signals),
		Signals:            signals,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	total := session.SampleCount()
	for offset := 0; offset < total; offset += perRecord {
		end := offset + perRecord
		if end > total {
			end = total
		}

		record := make([][]float64, len(session.Channels))
		for i, ch := range session.Channels {
			chunk := make([]float64, perRecord)
			copy(chunk, ch.Samples[offset:end])
			// The tail record is zero-padded to keep records uniform.
			record[i] = chunk
		}

		if err := ew.WriteRecord(record); err != nil {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}

	if err := ew.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

// samplesPerSecond derives the per-record sample count from the declared
// rate, falling back to the observed rate over the session timeline.
func samplesPerSecond(session models.Session) int {
	if session.SampleRate > 0 {
		return int(math.Round(session.SampleRate))
	}

	seconds := session.Duration().Seconds()
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(float64(session.SampleCount()) / seconds))
}

func physicalRange(samples []float64) (float64, float64) {
	pmin, pmax := samples[0], samples[0]
	for _, v := range samples[1:] {
		pmin = math.Min(pmin, v)
		pmax = math.Max(pmax, v)
	}
	if pmin == pmax {
		// Degenerate flat signal; widen so calibration stays defined.
		pmin, pmax = pmin-1, pmax+1
	}
	return pmin, pmax
}
