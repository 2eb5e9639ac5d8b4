package device

import (
	"github.com/google/uuid"
)

// Advertisement is the subset of a Bluetooth LE advertisement used for
// recognition. It is produced by a scanner and never stored.
type Advertisement struct {
	// Address is the device address as reported by the scanner.
	Address string

	// LocalName is the complete or shortened local name. Empty when absent.
	LocalName string

	// ServiceUUIDs lists the advertised service class UUIDs.
	ServiceUUIDs []uuid.UUID

	// ServiceData maps service UUIDs to their service data payloads.
	ServiceData map[uuid.UUID][]byte

	// ManufacturerData maps company identifiers to manufacturer payloads.
	ManufacturerData map[uint16][]byte

	// RSSI is the received signal strength in dBm.
	RSSI int16
}

// HasServiceUUID reports whether id is in the advertised service list.
func (a Advertisement) HasServiceUUID(id uuid.UUID) bool {
	for _, u := range a.ServiceUUIDs {
		if u == id {
			return true
		}
	}
	return false
}

// HasServiceData reports whether the advertisement carries service data
// for id. The payload may be empty.
func (a Advertisement) HasServiceData(id uuid.UUID) bool {
	if a.ServiceData == nil {
		return false
	}
	_, ok := a.ServiceData[id]
	return ok
}

// BluetoothUUID expands a 16-bit SIG assigned number to the full 128-bit
// UUID on the Bluetooth base.
func BluetoothUUID(short uint16) uuid.UUID {
	u := uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")
	u[2] = byte(short >> 8)
	u[3] = byte(short)
	return u
}
