// Package wire converts between timestamps and the byte layouts that
// Bluetooth LE clocks use on their time characteristic.
//
// Each supported layout is exposed as a Codec value pairing an encode
// function with an optional decode function. Write-only layouts leave
// Decode nil. The package performs no I/O.
//
// # Layouts
//
//   - CurrentTime: Bluetooth SIG Current Time characteristic (0x2A2B)
//   - EpochOffset: little-endian Unix time plus a signed hour offset
//   - CommandEpoch: command byte 0x23 plus local Unix time
//   - PrefixedEpoch: fixed 05 09 header plus local Unix time
//   - ThermoPro: A5 ... 5A framed calendar fields with a display flag
//
// # Time Zones
//
// Encode functions take the "local" zone from the location of the
// time.Time passed in, so callers control the zone by calling In on
// the value. Layouts that carry wall-clock fields are decoded in the
// location given to Decode.
//
// # Weekday
//
// All layouts number weekdays from 1 (Monday) to 7 (Sunday).
package wire
