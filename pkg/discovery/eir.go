package discovery

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
)

// AD structure types used for recognition.
const (
	adSomeUUID16       = 0x02
	adAllUUID16        = 0x03
	adSomeUUID32       = 0x04
	adAllUUID32        = 0x05
	adSomeUUID128      = 0x06
	adAllUUID128       = 0x07
	adShortName        = 0x08
	adCompleteName     = 0x09
	adServiceData16    = 0x16
	adServiceData32    = 0x20
	adServiceData128   = 0x21
	adManufacturerData = 0xFF
)

// ErrInvalidAdvertisingData is returned for truncated AD structures.
var ErrInvalidAdvertisingData = errors.New("invalid advertising data")

// ParseAdvertisingData decodes the AD structures in b into adv, adding to
// any fields already set. Call it once for the advertising packet and
// once for the scan response. Unknown AD types are skipped.
func ParseAdvertisingData(adv *device.Advertisement, b []byte) error {
	for len(b) > 0 {
		l := int(b[0])
		if l == 0 {
			// Zero length marks the end of significant data.
			return nil
		}
		if len(b) < 1+l {
			return fmt.Errorf("%w: field length %d exceeds %d remaining bytes",
				ErrInvalidAdvertisingData, l, len(b)-1)
		}
		t, d := b[1], b[2:1+l]

		switch t {
		case adSomeUUID16, adAllUUID16:
			adv.ServiceUUIDs = appendUUIDs(adv.ServiceUUIDs, d, 2)
		case adSomeUUID32, adAllUUID32:
			adv.ServiceUUIDs = appendUUIDs(adv.ServiceUUIDs, d, 4)
		case adSomeUUID128, adAllUUID128:
			adv.ServiceUUIDs = appendUUIDs(adv.ServiceUUIDs, d, 16)
		case adShortName:
			if adv.LocalName == "" {
				adv.LocalName = string(d)
			}
		case adCompleteName:
			adv.LocalName = string(d)
		case adServiceData16:
			addServiceData(adv, d, 2)
		case adServiceData32:
			addServiceData(adv, d, 4)
		case adServiceData128:
			addServiceData(adv, d, 16)
		case adManufacturerData:
			if len(d) >= 2 {
				if adv.ManufacturerData == nil {
					adv.ManufacturerData = make(map[uint16][]byte)
				}
				adv.ManufacturerData[binary.LittleEndian.Uint16(d)] = append([]byte{}, d[2:]...)
			}
		}

		b = b[1+l:]
	}
	return nil
}

func appendUUIDs(list []uuid.UUID, d []byte, width int) []uuid.UUID {
	for len(d) >= width {
		list = append(list, uuidFromLE(d[:width]))
		d = d[width:]
	}
	return list
}

func addServiceData(adv *device.Advertisement, d []byte, width int) {
	if len(d) < width {
		return
	}
	if adv.ServiceData == nil {
		adv.ServiceData = make(map[uuid.UUID][]byte)
	}
	adv.ServiceData[uuidFromLE(d[:width])] = append([]byte{}, d[width:]...)
}

// uuidFromLE expands a little-endian 16, 32 or 128-bit UUID as it
// appears in advertising data.
func uuidFromLE(b []byte) uuid.UUID {
	switch len(b) {
	case 2:
		return device.BluetoothUUID(binary.LittleEndian.Uint16(b))
	case 4:
		u := device.BluetoothUUID(0)
		binary.BigEndian.PutUint32(u[0:4], binary.LittleEndian.Uint32(b))
		return u
	default:
		var u uuid.UUID
		for i := 0; i < 16; i++ {
			u[i] = b[15-i]
		}
		return u
	}
}
