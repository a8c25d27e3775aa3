package sdlc

import (
	"errors"
	"fmt"
)

var (
	ErrFrameTooShort = errors.New("sdlc: frame shorter than declared size")
	ErrDuplicateType = errors.New("sdlc: duplicate frame type in catalog")
)

// ValidationError reports a frame definition whose layout cannot be
// realized on the wire.
type ValidationError struct {
	FrameID byte
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sdlc: frame type %d: %s", e.FrameID, e.Reason)
}
