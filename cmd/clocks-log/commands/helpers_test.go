package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
)

var (
	lywsd02Service = uuid.MustParse("ebe0ccb0-7a0a-4b0c-8a1a-6ff2997da3a6")
	lywsd02Char    = uuid.MustParse("ebe0ccb7-7a0a-4b0c-8a1a-6ff2997da3a6")
)

// createTestLogFile writes events to a capture file in a temp dir.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// sessionEvents returns the capture of one LYWSD02 read.
func sessionEvents() []log.Event {
	ts := time.Date(2023, 1, 7, 18, 41, 33, 0, time.UTC)
	base := log.Event{
		SessionID: "0f8fad5b-d9cb-469f-a165-70867728950e",
		Address:   "E7:2E:00:B1:38:96",
		Family:    "Xiaomi LYWSD02",
	}

	at := func(ms int, e log.Event) log.Event {
		e.Timestamp = ts.Add(time.Duration(ms) * time.Millisecond)
		e.SessionID = base.SessionID
		e.Address = base.Address
		e.Family = base.Family
		return e
	}

	return []log.Event{
		at(0, log.Event{
			Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "CONNECTING"},
		}),
		at(800, log.Event{
			Direction: log.DirectionIn, Layer: log.LayerTransport, Category: log.CategoryGATT,
			GATT: &log.GATTEvent{
				Op: log.GATTRead, ServiceUUID: lywsd02Service, CharacteristicUUID: lywsd02Char,
				Data: []byte{0xDD, 0xBC, 0xB9, 0x63, 0x01},
			},
		}),
		at(801, log.Event{
			Direction: log.DirectionIn, Layer: log.LayerCodec, Category: log.CategoryCodec,
			Codec: &log.CodecEvent{
				Codec: "epoch-offset",
				Time:  time.Date(2023, 1, 7, 18, 41, 33, 0, time.UTC),
				Data:  []byte{0xDD, 0xBC, 0xB9, 0x63, 0x01},
			},
		}),
		at(900, log.Event{
			Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "READING", NewState: "DISCONNECTED", Reason: "done"},
		}),
	}
}
