package device

import (
	"github.com/google/uuid"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// ReadMode selects how the time is obtained from a device.
type ReadMode uint8

const (
	// ReadNone marks a write-only family.
	ReadNone ReadMode = iota

	// ReadDirect reads the time characteristic.
	ReadDirect

	// ReadNotify writes ReadCommand to the characteristic and waits for
	// the device to report the time in a notification.
	ReadNotify
)

// String returns the read mode name.
func (m ReadMode) String() string {
	switch m {
	case ReadNone:
		return "none"
	case ReadDirect:
		return "read"
	case ReadNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// Family describes one kind of Bluetooth clock.
// Families are immutable and shared; never modify one after registration.
type Family struct {
	// Type is the unique, human-readable family name.
	Type string

	// ServiceUUID is the GATT service holding the time characteristic.
	ServiceUUID uuid.UUID

	// CharacteristicUUID is the time characteristic.
	CharacteristicUUID uuid.UUID

	// WriteWithResponse selects an acknowledged GATT write.
	WriteWithResponse bool

	// ReadMode is ReadNone exactly when Codec has no decoder.
	ReadMode ReadMode

	// ReadCommand is written to request a notification in ReadNotify mode.
	ReadCommand []byte

	// Rule recognizes the family from an advertisement.
	Rule Rule

	// Codec converts between timestamps and characteristic bytes.
	Codec wire.Codec
}

// Readable reports whether the time can be read from the device.
func (f *Family) Readable() bool {
	return f.Codec.Readable()
}

// Assigned numbers and vendor UUIDs used by the supported families.
var (
	CurrentTimeServiceUUID = BluetoothUUID(0x1805)
	CurrentTimeCharUUID    = BluetoothUUID(0x2A2B)

	PVVXServiceUUID     = BluetoothUUID(0x1F10)
	PVVXCharUUID        = BluetoothUUID(0x1F1F)
	PVVXServiceDataUUID = BluetoothUUID(0x181A)

	QingpingServiceUUID = uuid.MustParse("22210000-554a-4546-5542-46534450464d")
	QingpingCharUUID    = BluetoothUUID(0x0001)

	ThermoProServiceUUID = uuid.MustParse("00010203-0405-0607-0809-0a0b0c0d1910")
	ThermoProCharUUID    = uuid.MustParse("00010203-0405-0607-0809-0a0b0c0d2b11")

	XiaomiServiceUUID = uuid.MustParse("ebe0ccb0-7a0a-4b0c-8a1a-6ff2997da3a6")
	XiaomiCharUUID    = uuid.MustParse("ebe0ccb7-7a0a-4b0c-8a1a-6ff2997da3a6")
)

// Family types.
const (
	TypeCurrentTimeService = "Current Time Service"
	TypeInfiniTime         = "InfiniTime"
	TypePVVX               = "PVVX"
	TypeQingping           = "Qingping BT Clock Lite"
	TypeThermoProTP358     = "ThermoPro TP358"
	TypeThermoProTP393     = "ThermoPro TP393"
	TypeXiaomiLYWSD02      = "Xiaomi LYWSD02"
)

// Families is the built-in family table in listing order.
var Families = []*Family{
	{
		Type:               TypeCurrentTimeService,
		ServiceUUID:        CurrentTimeServiceUUID,
		CharacteristicUUID: CurrentTimeCharUUID,
		WriteWithResponse:  true,
		ReadMode:           ReadDirect,
		Rule:               ServiceUUIDMatch(CurrentTimeServiceUUID),
		Codec:              wire.CurrentTime,
	},
	{
		Type:               TypeInfiniTime,
		ServiceUUID:        CurrentTimeServiceUUID,
		CharacteristicUUID: CurrentTimeCharUUID,
		WriteWithResponse:  true,
		ReadMode:           ReadDirect,
		Rule:               LocalNameMatch("InfiniTime"),
		Codec:              wire.CurrentTime,
	},
	{
		Type:               TypePVVX,
		ServiceUUID:        PVVXServiceUUID,
		CharacteristicUUID: PVVXCharUUID,
		ReadMode:           ReadNotify,
		ReadCommand:        []byte{wire.CommandGetSetTime},
		Rule:               ServiceDataPresence(PVVXServiceDataUUID),
		Codec:              wire.CommandEpoch,
	},
	{
		Type:               TypeQingping,
		ServiceUUID:        QingpingServiceUUID,
		CharacteristicUUID: QingpingCharUUID,
		WriteWithResponse:  true,
		Rule:               LocalNameMatch("Qingping BT Clock Lite"),
		Codec:              wire.PrefixedEpoch,
	},
	{
		Type:               TypeThermoProTP358,
		ServiceUUID:        ThermoProServiceUUID,
		CharacteristicUUID: ThermoProCharUUID,
		Rule:               LocalNamePrefix("TP358"),
		Codec:              wire.ThermoPro,
	},
	{
		Type:               TypeThermoProTP393,
		ServiceUUID:        ThermoProServiceUUID,
		CharacteristicUUID: ThermoProCharUUID,
		Rule:               LocalNamePrefix("TP393"),
		Codec:              wire.ThermoPro,
	},
	{
		Type:               TypeXiaomiLYWSD02,
		ServiceUUID:        XiaomiServiceUUID,
		CharacteristicUUID: XiaomiCharUUID,
		ReadMode:           ReadDirect,
		Rule:               LocalNameMatch("LYWSD02"),
		Codec:              wire.EpochOffset,
	},
}
