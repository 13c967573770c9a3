package emg

import (
	"fmt"
	"time"

	"github.com/neubond/emgdash/internal/models"
)

// Load validates raw records into Sessions keyed by session ID. It is a
// pure transform: all I/O happens in the collaborator that produced the
// records (database client or bundle reader).
func Load(records []models.RawRecord) (map[string]models.Session, error) {
	sessions := make(map[string]models.Session, len(records))

	for _, rec := range records {
		session, err := loadOne(rec)
		if err != nil {
			return nil, err
		}
		sessions[session.ID] = session
	}

	return sessions, nil
}

func loadOne(rec models.RawRecord) (models.Session, error) {
	if rec.ID == "" {
		return models.Session{}, fmt.Errorf("%w: missing session id", ErrMalformedRecord)
	}
	if rec.PatientID == "" {
		return models.Session{}, fmt.Errorf("%w: session %s has no patient id", ErrMalformedRecord, rec.ID)
	}
	if rec.StartTime.IsZero() || rec.EndTime.IsZero() {
		return models.Session{}, fmt.Errorf("%w: session %s is missing start or end time", ErrMalformedRecord, rec.ID)
	}
	if rec.EndTime.Before(rec.StartTime) {
		return models.Session{}, fmt.Errorf("%w: session %s ends before it starts", ErrMalformedRecord, rec.ID)
	}
	if len(rec.Channels) == 0 {
		return models.Session{}, fmt.Errorf("%w: session %s has no channels", ErrMalformedRecord, rec.ID)
	}

	// All channels share one sample count and time base.
	samples := len(rec.Channels[0])
	for i, ch := range rec.Channels {
		if len(ch) != samples {
			return models.Session{}, fmt.Errorf("%w: session %s channel %d has %d samples, expected %d",
				ErrMalformedRecord, rec.ID, i, len(ch), samples)
		}
	}
	if len(rec.PhaseMarkers) != samples {
		return models.Session{}, fmt.Errorf("%w: session %s has %d phase markers for %d samples",
			ErrMalformedRecord, rec.ID, len(rec.PhaseMarkers), samples)
	}

	timestamps, err := timeBase(rec, samples)
	if err != nil {
		return models.Session{}, err
	}

	phases, err := Segment(rec.PhaseMarkers)
	if err != nil {
		return models.Session{}, fmt.Errorf("session %s: %w", rec.ID, err)
	}

	channels := make([]models.ChannelSeries, len(rec.Channels))
	for i, ch := range rec.Channels {
		channels[i] = models.ChannelSeries{Index: i, Samples: ch}
	}

	return models.Session{
		ID:         rec.ID,
		PatientID:  rec.PatientID,
		StartTime:  rec.StartTime,
		EndTime:    rec.EndTime,
		SampleRate: rec.SampleRate,
		Timestamps: timestamps,
		Channels:   channels,
		Phases:     phases,
	}, nil
}

// timeBase returns explicit per-sample timestamps, synthesizing them from
// the sample rate when the record carries none.
func timeBase(rec models.RawRecord, samples int) ([]time.Time, error) {
	if len(rec.Timestamps) > 0 {
		if len(rec.Timestamps) != samples {
			return nil, fmt.Errorf("%w: session %s has %d timestamps for %d samples",
				ErrMalformedRecord, rec.ID, len(rec.Timestamps), samples)
		}
		return rec.Timestamps, nil
	}

	if rec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: session %s has neither timestamps nor a sample rate",
			ErrMalformedRecord, rec.ID)
	}

	step := time.Duration(float64(time.Second) / rec.SampleRate)
	ts := make([]time.Time, samples)
	for i := range ts {
		ts[i] = rec.StartTime.Add(time.Duration(i) * step)
	}
	return ts, nil
}

// CoerceUnknownMarkers rewrites markers outside the recognized set to
// rest. This is the caller-side policy escape hatch; the loader and
// segmenter themselves never coerce.
func CoerceUnknownMarkers(markers []int) []int {
	out := make([]int, len(markers))
	for i, m := range markers {
		if _, ok := models.PhaseFromMarker(m); ok {
			out[i] = m
		} else {
			out[i] = models.PhaseRest.Marker()
		}
	}
	return out
}
