package wire

import (
	"encoding/binary"
	"time"
)

const (
	currentTimeName = "current-time"

	currentTimeReadLen  = 9
	currentTimeWriteLen = 10

	// adjustReasonManual marks a write as a manual time update.
	adjustReasonManual = 0x00
)

// CurrentTime is the Bluetooth SIG Current Time layout.
//
// Read (9 bytes):  year u16 LE, month, day, hour, minute, second,
// weekday, fractions256.
// Write (10 bytes): the same fields followed by the adjust reason.
//
// Fields hold local wall-clock time.
var CurrentTime = Codec{
	Name:   currentTimeName,
	Encode: EncodeCurrentTime,
	Decode: DecodeCurrentTime,
}

// EncodeCurrentTime encodes t as a Current Time write payload.
// The display mode is ignored.
func EncodeCurrentTime(t time.Time, _ DisplayMode) []byte {
	b := make([]byte, currentTimeWriteLen)
	binary.LittleEndian.PutUint16(b[0:2], uint16(t.Year()))
	b[2] = uint8(t.Month())
	b[3] = uint8(t.Day())
	b[4] = uint8(t.Hour())
	b[5] = uint8(t.Minute())
	b[6] = uint8(t.Second())
	b[7] = Weekday(t.Weekday())
	b[8] = uint8(int64(t.Nanosecond()) * 256 / int64(time.Second))
	b[9] = adjustReasonManual
	return b
}

// DecodeCurrentTime decodes a 9-byte Current Time read payload with the
// wall-clock fields interpreted in loc. The weekday byte is not checked.
func DecodeCurrentTime(b []byte, loc *time.Location) (time.Time, error) {
	if err := checkLen(currentTimeName, b, currentTimeReadLen); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	year := int(binary.LittleEndian.Uint16(b[0:2]))
	month := time.Month(b[2])
	day, hour, minute, second := int(b[3]), int(b[4]), int(b[5]), int(b[6])
	frac := int(b[8])

	if month < time.January || month > time.December {
		return time.Time{}, invalidPayload(currentTimeName, b, "month out of range")
	}
	if day < 1 || day > daysIn(year, month) {
		return time.Time{}, invalidPayload(currentTimeName, b, "day out of range")
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, invalidPayload(currentTimeName, b, "time of day out of range")
	}

	nsec := frac * int(time.Second) / 256
	return time.Date(year, month, day, hour, minute, second, nsec, loc), nil
}

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
