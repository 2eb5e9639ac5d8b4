package device

import "github.com/google/uuid"

// Advertisements captured from real clocks.

var (
	advLYWSD02 = Advertisement{
		Address:   "E7:2E:00:B1:38:96",
		LocalName: "LYWSD02",
		ServiceData: map[uuid.UUID][]byte{
			BluetoothUUID(0xFE95): {0x70, 0x20, 0x5B, 0x04, 0x32, 0x96, 0x38, 0xB1, 0x00, 0x2E, 0xE7, 0x09},
		},
		ServiceUUIDs: []uuid.UUID{BluetoothUUID(0x181A), BluetoothUUID(0xFEF5)},
		RSSI:         -67,
	}

	advPVVX = Advertisement{
		Address:   "A4:C1:38:D9:01:10",
		LocalName: "LYWSD03MMC",
		ServiceData: map[uuid.UUID][]byte{
			BluetoothUUID(0x181A): {0x10, 0x01, 0xD9, 0x38, 0xC1, 0xA4, 0xE1, 0x08, 0x5C, 0x13, 0x9E, 0x0B, 0x64, 0x5C, 0x04},
		},
		RSSI: -67,
	}

	advCGC1 = Advertisement{
		Address:   "58:2D:34:54:2D:2C",
		LocalName: "Qingping BT Clock Lite",
		RSSI:      -59,
	}

	advTP358 = Advertisement{
		Address:   "10:76:36:14:2A:3D",
		LocalName: "TP358 (2A3D)",
		ManufacturerData: map[uint16][]byte{
			0xF1C2: {0x00, 0x16, 0x2C},
		},
		RSSI: -72,
	}

	advTP393 = Advertisement{
		Address:   "10:76:36:0E:8C:1F",
		LocalName: "TP393 (8C1F)",
		RSSI:      -80,
	}

	advInfiniTime = Advertisement{
		Address:      "D2:A6:32:47:1E:EB",
		LocalName:    "InfiniTime",
		ServiceUUIDs: []uuid.UUID{CurrentTimeServiceUUID, BluetoothUUID(0x180D)},
		RSSI:         -60,
	}

	advCTSWatch = Advertisement{
		Address:      "F2:9E:02:1C:3A:6B",
		LocalName:    "F15",
		ServiceUUIDs: []uuid.UUID{CurrentTimeServiceUUID},
		RSSI:         -70,
	}

	advPhone = Advertisement{
		Address: "45:B4:07:8A:66:6A",
		ManufacturerData: map[uint16][]byte{
			0x004C: {0x10, 0x05, 0x47, 0x1C, 0x7F, 0xF1, 0x93},
		},
		ServiceData:  map[uuid.UUID][]byte{},
		ServiceUUIDs: []uuid.UUID{},
		RSSI:         -67,
	}
)
