package export

import "errors"

var (
	ErrEmptyBundle     = errors.New("export bundle holds no sessions")
	ErrSerialization   = errors.New("cannot serialize session data")
	ErrUnknownFileType = errors.New("unrecognized bundle file type")
)
