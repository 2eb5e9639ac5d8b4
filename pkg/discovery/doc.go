// Package discovery finds supported Bluetooth clocks by scanning for
// advertisements and recognizing them.
//
// # Discover
//
// Discover scans for a fixed duration and emits each recognized device
// once, keyed by address. Advertisements from unsupported devices are
// dropped. Deduplication is scoped to one call: a second Discover
// reports the same devices again.
//
// # Find
//
// Find scans until an advertisement from the requested address arrives
// and recognizes it. It returns ErrNotFound when the scan ends first and
// device.ErrUnsupportedDevice when the address belongs to a device no
// family matches.
//
// # Raw Advertising Data
//
// ParseAdvertisingData decodes the AD structures of an advertising or
// scan response packet for scanners that only expose raw bytes.
package discovery
