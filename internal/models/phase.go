package models

import "fmt"

// Phase is the closed set of exercise phase labels. Raw markers use
// 0 = rest, 1 = attempt; anything else is rejected, never coerced here.
type Phase int

const (
	PhaseRest Phase = iota
	PhaseAttempt
)

func (p Phase) String() string {
	switch p {
	case PhaseRest:
		return "rest"
	case PhaseAttempt:
		return "attempt"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Marker returns the raw integer marker for a phase.
func (p Phase) Marker() int {
	return int(p)
}

// PhaseFromMarker maps a raw per-sample marker to a Phase.
func PhaseFromMarker(marker int) (Phase, bool) {
	switch marker {
	case 0:
		return PhaseRest, true
	case 1:
		return PhaseAttempt, true
	}
	return 0, false
}

// PhaseFromLabel maps a stored label string ("rest", "attempt") to a Phase.
func PhaseFromLabel(label string) (Phase, bool) {
	switch label {
	case "rest":
		return PhaseRest, true
	case "attempt":
		return PhaseAttempt, true
	}
	return 0, false
}
