package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/neubond/emgdash/internal/models"
)

// ListSessions returns a patient's exercise sessions, newest first.
func (s *Storage) ListSessions(patientID string) ([]models.SessionMeta, error) {
	if cached, ok := s.cache.sessions.Get(patientID); ok {
		return cached, nil
	}

	rows, err := s.DB.Query(`
        SELECT id, patient_profile_id, start_time, end_time, exercise_type,
               exercise_gesture, duration_seconds, stimulation_mode, reps_completed
        FROM exercise_sessions
        WHERE patient_profile_id = ?
        ORDER BY start_time DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.SessionMeta
	for rows.Next() {
		var m models.SessionMeta
		var startTime string
		// Most metadata columns are nullable in practice.
		var endTime, exType, gesture, stim sql.NullString
		var duration sql.NullFloat64
		var reps sql.NullInt64

		if err := rows.Scan(&m.ID, &m.PatientID, &startTime, &endTime, &exType,
			&gesture, &duration, &stim, &reps); err != nil {
			return nil, err
		}

		m.ExerciseType = exType.String
		m.ExerciseGesture = gesture.String
		m.StimulationMode = stim.String
		m.RepsCompleted = int(reps.Int64)

		if m.StartTime, err = parseSessionTime(m.ID, "start_time", startTime); err != nil {
			return nil, err
		}
		if endTime.Valid {
			t, err := parseSessionTime(m.ID, "end_time", endTime.String)
			if err != nil {
				return nil, err
			}
			m.EndTime = &t
		}
		if duration.Valid {
			m.DurationSeconds = duration.Float64
		} else if m.EndTime != nil {
			m.DurationSeconds = m.EndTime.Sub(m.StartTime).Seconds()
		}

		sessions = append(sessions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.sessions.Add(patientID, sessions)
	return sessions, nil
}

// FetchSessionRecord assembles one session's EMG data points into the raw
// record shape the loader accepts. Data points arrive one row per sample,
// each carrying one amplitude per channel; the record wants one array per
// channel, so the matrix gets transposed here.
func (s *Storage) FetchSessionRecord(sessionID string) (models.RawRecord, error) {
	if cached, ok := s.cache.records.Get(sessionID); ok {
		return cached, nil
	}

	var rec models.RawRecord
	var startTime string
	var endTime sql.NullString

	err := s.DB.QueryRow(`
        SELECT id, patient_profile_id, start_time, end_time
        FROM exercise_sessions
        WHERE id = ?`, sessionID).Scan(&rec.ID, &rec.PatientID, &startTime, &endTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return rec, fmt.Errorf("session %s not found", sessionID)
		}
		return rec, err
	}

	if rec.StartTime, err = parseSessionTime(rec.ID, "start_time", startTime); err != nil {
		return rec, err
	}
	if endTime.Valid {
		if rec.EndTime, err = parseSessionTime(rec.ID, "end_time", endTime.String); err != nil {
			return rec, err
		}
	}

	rows, err := s.DB.Query(`
        SELECT timestamp, norm_emg, rms_emg, exercise_phase
        FROM exercise_data_points
        WHERE session_id = ?
        ORDER BY timestamp ASC`, sessionID)
	if err != nil {
		return rec, fmt.Errorf("failed to fetch data points: %w", err)
	}
	defer rows.Close()

	var samples [][]float64 // one row per sample, one column per channel
	for rows.Next() {
		var ts string
		var normEMG, rmsEMG, phase sql.NullString

		if err := rows.Scan(&ts, &normEMG, &rmsEMG, &phase); err != nil {
			return rec, err
		}

		// Prefer the RMS envelope, fall back to normalized EMG.
		src := rmsEMG
		if !src.Valid || src.String == "" {
			src = normEMG
		}
		amplitudes, err := parseEMGArray(src)
		if err != nil || len(amplitudes) == 0 {
			// Rows without a usable sample array are skipped, matching
			// how the devices occasionally emit stimulation-only rows.
			continue
		}

		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}

		rec.Timestamps = append(rec.Timestamps, t)
		rec.PhaseMarkers = append(rec.PhaseMarkers, phaseMarker(phase))
		samples = append(samples, amplitudes)
	}
	if err := rows.Err(); err != nil {
		return rec, err
	}

	rec.Channels = transpose(samples)
	if rec.EndTime.IsZero() && len(rec.Timestamps) > 0 {
		rec.EndTime = rec.Timestamps[len(rec.Timestamps)-1]
	}

	s.cache.records.Add(sessionID, rec)
	return rec, nil
}

// parseSessionTime parses a stored RFC 3339 timestamp, naming the
// session and column so a bad row is traceable instead of silently
// turning into a zero time.
func parseSessionTime(sessionID, column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("session %s: bad %s %q: %w", sessionID, column, value, err)
	}
	return t, nil
}

// parseEMGArray decodes a stored per-sample amplitude array. The column
// holds a JSON array in text form.
func parseEMGArray(v sql.NullString) ([]float64, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}

	var amplitudes []float64
	if err := json.Unmarshal([]byte(v.String), &amplitudes); err != nil {
		return nil, fmt.Errorf("bad emg array: %w", err)
	}
	return amplitudes, nil
}

// phaseMarker maps the stored phase to a raw marker. Values outside the
// recognized set come through as -1 so the segmenter reports them instead
// of this layer guessing.
func phaseMarker(v sql.NullString) int {
	if !v.Valid {
		return -1
	}
	if p, ok := models.PhaseFromLabel(v.String); ok {
		return p.Marker()
	}
	if n, err := strconv.Atoi(v.String); err == nil {
		if p, ok := models.PhaseFromMarker(n); ok {
			return p.Marker()
		}
	}
	return -1
}

func transpose(samples [][]float64) [][]float64 {
	if len(samples) == 0 {
		return nil
	}

	channels := make([][]float64, len(samples[0]))
	for i := range channels {
		channels[i] = make([]float64, len(samples))
	}
	for si, row := range samples {
		for ci := range channels {
			if ci < len(row) {
				channels[ci][si] = row[ci]
			}
		}
	}
	return channels
}
