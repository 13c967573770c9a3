package emg

import "errors"

// Every pipeline stage fails with one of these named conditions so the
// command layer can print something actionable instead of a raw dump.
var (
	ErrMalformedRecord       = errors.New("malformed session record")
	ErrEmptySelection        = errors.New("no sessions selected")
	ErrUnknownPhaseLabel     = errors.New("unknown phase label")
	ErrNonContiguousChannels = errors.New("channel indices are not contiguous from 0")
)
