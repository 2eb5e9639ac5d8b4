package wire

import "time"

const (
	thermoProStart = 0xA5
	thermoProEnd   = 0x5A
)

// ThermoPro is a write-only 10-byte layout:
//
//	A5 YY MM DD hh mm ss WD FL 5A
//
// YY is the year modulo 100, WD the weekday (1-7) and FL the display
// flag: 1 for 24-hour, 0 for 12-hour.
var ThermoPro = Codec{
	Name:   "thermopro",
	Encode: EncodeThermoPro,
}

// EncodeThermoPro encodes t in its own location.
func EncodeThermoPro(t time.Time, mode DisplayMode) []byte {
	var flag byte
	if mode == Mode24Hour {
		flag = 1
	}
	return []byte{
		thermoProStart,
		uint8(t.Year() % 100),
		uint8(t.Month()),
		uint8(t.Day()),
		uint8(t.Hour()),
		uint8(t.Minute()),
		uint8(t.Second()),
		Weekday(t.Weekday()),
		flag,
		thermoProEnd,
	}
}
