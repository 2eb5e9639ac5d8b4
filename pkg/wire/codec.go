package wire

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload is returned when bytes read from a device cannot be
// decoded: wrong length or field values that do not form a valid time.
var ErrInvalidPayload = errors.New("invalid time payload")

// DisplayMode selects the hour format shown by clocks that support it.
type DisplayMode uint8

const (
	// Mode24Hour shows hours 0-23. This is the zero value.
	Mode24Hour DisplayMode = iota

	// Mode12Hour shows hours with an AM/PM indicator.
	Mode12Hour
)

// String returns the display mode name.
func (m DisplayMode) String() string {
	switch m {
	case Mode24Hour:
		return "24h"
	case Mode12Hour:
		return "12h"
	default:
		return "unknown"
	}
}

// EncodeFunc converts a timestamp to the bytes written to a device.
// The location of t is used as the device's local zone.
type EncodeFunc func(t time.Time, mode DisplayMode) []byte

// DecodeFunc converts bytes read from a device to a timestamp.
// Wall-clock layouts interpret their fields in loc.
type DecodeFunc func(b []byte, loc *time.Location) (time.Time, error)

// Codec pairs the encoding and decoding of one byte layout.
type Codec struct {
	// Name identifies the layout in errors and logs.
	Name string

	// Encode never fails.
	Encode EncodeFunc

	// Decode is nil for layouts that cannot be read back.
	Decode DecodeFunc
}

// Readable reports whether the layout can be decoded.
func (c Codec) Readable() bool {
	return c.Decode != nil
}

// Weekday maps a time.Weekday to the 1 (Monday) through 7 (Sunday)
// numbering used on the wire.
func Weekday(d time.Weekday) uint8 {
	if d == time.Sunday {
		return 7
	}
	return uint8(d)
}

// LocalOffset returns the UTC offset in seconds of t in its own location,
// including any daylight saving adjustment in effect at t.
func LocalOffset(t time.Time) int {
	_, offset := t.Zone()
	return offset
}

// invalidPayload wraps ErrInvalidPayload with the layout name and payload.
func invalidPayload(layout string, b []byte, reason string) error {
	return fmt.Errorf("%w: %s %s: %s", ErrInvalidPayload, layout, hex.EncodeToString(b), reason)
}

// checkLen verifies that b has exactly n bytes.
func checkLen(layout string, b []byte, n int) error {
	if len(b) != n {
		return invalidPayload(layout, b, fmt.Sprintf("length %d, want %d", len(b), n))
	}
	return nil
}
