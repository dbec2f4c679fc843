package spectra

import "errors"

// Error kinds. Every error returned by a reader wraps exactly one of these,
// except plain I/O failures such as a missing file.
var (
	ErrFormatMismatch = errors.New("not a recognized format")
	ErrStructure      = errors.New("unexpected file structure")
	ErrParse          = errors.New("parse error")
	ErrConfig         = errors.New("configuration error")
	ErrInvalidSheet   = errors.New("invalid sheet")
	ErrUnsupported    = errors.New("no reader for file")
)
