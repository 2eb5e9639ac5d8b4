package wire

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	epochOffsetName   = "epoch-offset"
	commandEpochName  = "command-epoch"
	prefixedEpochName = "prefixed-epoch"

	epochOffsetLen = 5

	commandEpochWriteLen = 5
	commandEpochReadLen  = 9

	prefixedEpochLen = 6

	secondsPerHour = 3600
)

// CommandGetSetTime is the command byte that both sets the clock and,
// when written alone, requests a time report.
const CommandGetSetTime byte = 0x23

// prefixedEpochHeader precedes the time on PrefixedEpoch writes.
var prefixedEpochHeader = [2]byte{0x05, 0x09}

// EpochOffset is a 5-byte layout: u32 LE Unix time followed by the local
// UTC offset as a signed whole number of hours.
var EpochOffset = Codec{
	Name:   epochOffsetName,
	Encode: EncodeEpochOffset,
	Decode: DecodeEpochOffset,
}

// CommandEpoch writes the command byte followed by u32 LE local time
// (Unix time shifted by the UTC offset). Reads return the command byte,
// a u32 LE Unix time and a second u32 that is ignored.
var CommandEpoch = Codec{
	Name:   commandEpochName,
	Encode: EncodeCommandEpoch,
	Decode: DecodeCommandEpoch,
}

// PrefixedEpoch writes 05 09 followed by u32 LE local time. It cannot be read.
var PrefixedEpoch = Codec{
	Name:   prefixedEpochName,
	Encode: EncodePrefixedEpoch,
}

// EncodeEpochOffset encodes t as Unix time plus its UTC offset in hours.
// Offsets that are not a whole number of hours are floored.
func EncodeEpochOffset(t time.Time, _ DisplayMode) []byte {
	b := make([]byte, epochOffsetLen)
	binary.LittleEndian.PutUint32(b[0:4], uint32(t.Unix()))
	b[4] = byte(int8(floorDiv(LocalOffset(t), secondsPerHour)))
	return b
}

// DecodeEpochOffset returns the Unix time in b. The offset byte only
// affects how the device displays the time and is ignored.
func DecodeEpochOffset(b []byte, _ *time.Location) (time.Time, error) {
	if err := checkLen(epochOffsetName, b, epochOffsetLen); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(binary.LittleEndian.Uint32(b[0:4])), 0), nil
}

// EncodeCommandEpoch encodes t as the set-time command with local time.
func EncodeCommandEpoch(t time.Time, _ DisplayMode) []byte {
	b := make([]byte, commandEpochWriteLen)
	b[0] = CommandGetSetTime
	binary.LittleEndian.PutUint32(b[1:5], uint32(localUnix(t)))
	return b
}

// DecodeCommandEpoch decodes a time report sent in response to the
// get-time command.
func DecodeCommandEpoch(b []byte, _ *time.Location) (time.Time, error) {
	if err := checkLen(commandEpochName, b, commandEpochReadLen); err != nil {
		return time.Time{}, err
	}
	if b[0] != CommandGetSetTime {
		return time.Time{}, invalidPayload(commandEpochName, b,
			fmt.Sprintf("command 0x%02x, want 0x%02x", b[0], CommandGetSetTime))
	}
	return time.Unix(int64(binary.LittleEndian.Uint32(b[1:5])), 0), nil
}

// EncodePrefixedEpoch encodes t as the fixed header with local time.
func EncodePrefixedEpoch(t time.Time, _ DisplayMode) []byte {
	b := make([]byte, prefixedEpochLen)
	copy(b[0:2], prefixedEpochHeader[:])
	binary.LittleEndian.PutUint32(b[2:6], uint32(localUnix(t)))
	return b
}

// localUnix returns the Unix time of t shifted by its UTC offset, so the
// device can show wall-clock time without knowing its zone.
func localUnix(t time.Time) int64 {
	return t.Unix() + int64(LocalOffset(t))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
