package clock

import "errors"

// Clock errors.
var (
	ErrNotReadable    = errors.New("clock time is not readable")
	ErrNotifyTimeout  = errors.New("timed out waiting for time notification")
	ErrReadInProgress = errors.New("read already in progress")
	ErrNoCentral      = errors.New("no central configured")
	ErrInvalidClock   = errors.New("clock has no family")
)
