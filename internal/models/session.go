package models

import "time"

type Patient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionMeta is one row of the exercise_sessions table, as listed in the
// sessions view. EMG samples are fetched separately per session.
type SessionMeta struct {
	ID              string     `json:"id"`
	PatientID       string     `json:"patient_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	ExerciseType    string     `json:"exercise_type"`
	ExerciseGesture string     `json:"exercise_gesture"`
	StimulationMode string     `json:"stimulation_mode"`
	RepsCompleted   int        `json:"reps_completed"`
	DurationSeconds float64    `json:"duration_seconds"`
}

// RawRecord is the loose record shape handed over by a collaborator: the
// database client or a bundle file. The loader validates it into a Session.
type RawRecord struct {
	ID           string      `json:"id"`
	PatientID    string      `json:"patient_id"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	SampleRate   float64     `json:"sample_rate_hz,omitempty"`
	Channels     [][]float64 `json:"-"` // channels x samples
	PhaseMarkers []int       `json:"-"` // one marker per sample
	Timestamps   []time.Time `json:"-"` // optional explicit time base
}

// Session is a validated, immutable exercise session with its EMG data.
type Session struct {
	ID         string
	PatientID  string
	StartTime  time.Time
	EndTime    time.Time
	SampleRate float64
	Timestamps []time.Time // shared time base, one entry per sample
	Channels   []ChannelSeries
	Phases     []PhaseInterval
}

// Duration is derived, never stored.
func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// SampleCount returns the shared sample count of all channels.
func (s Session) SampleCount() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0].Samples)
}

type ChannelSeries struct {
	Index   int // 0-based, unique and contiguous within a session
	Samples []float64
}

// PhaseInterval is a labeled run of samples. Offsets are sample indices
// into the session's time base, start inclusive, end exclusive.
type PhaseInterval struct {
	Label Phase
	Start int
	End   int
}

// ExportBundle is a snapshot of selected sessions taken for serialization.
// Session order is the caller's selection order.
type ExportBundle struct {
	Sessions []Session
}
