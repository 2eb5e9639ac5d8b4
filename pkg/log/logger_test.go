package log

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
	logger.Log(Event{GATT: &GATTEvent{}, StateChange: &StateChangeEvent{}})
}

func TestSessionStampsEvents(t *testing.T) {
	rec := &recordingLogger{}
	s := NewSession(rec, "E7:2E:00:B1:38:96", "Xiaomi LYWSD02")
	fixed := time.Date(2023, 1, 7, 18, 41, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err, "session ID should be a UUID")

	s.State("IDLE", "CONNECTING", "")
	s.GATT(DirectionOut, GATTEvent{Op: GATTWrite, Data: []byte{1}})
	s.Codec(DirectionIn, CodecEvent{Codec: "epoch-offset"})
	s.Error(LayerTransport, "connect", errors.New("timeout"))

	require.Len(t, rec.events, 4)
	for _, e := range rec.events {
		assert.Equal(t, s.ID(), e.SessionID)
		assert.Equal(t, "E7:2E:00:B1:38:96", e.Address)
		assert.Equal(t, "Xiaomi LYWSD02", e.Family)
		assert.Equal(t, fixed, e.Timestamp)
	}

	assert.Equal(t, CategoryState, rec.events[0].Category)
	assert.Equal(t, "CONNECTING", rec.events[0].StateChange.NewState)
	assert.Equal(t, LayerTransport, rec.events[1].Layer)
	assert.Equal(t, DirectionOut, rec.events[1].Direction)
	assert.Equal(t, LayerCodec, rec.events[2].Layer)
	assert.Equal(t, "timeout", rec.events[3].Error.Message)
	assert.Equal(t, "connect", rec.events[3].Error.Context)
}

func TestSessionKeepsTimestamp(t *testing.T) {
	rec := &recordingLogger{}
	s := NewSession(rec, "a", "b")
	ts := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Log(Event{Timestamp: ts})
	assert.Equal(t, ts, rec.events[0].Timestamp)
}

func TestSessionNilLogger(t *testing.T) {
	s := NewSession(nil, "a", "b")
	s.State("", "IDLE", "")
}

func TestSessionIDsDiffer(t *testing.T) {
	a := NewSession(nil, "x", "y")
	b := NewSession(nil, "x", "y")
	if a.ID() == b.ID() {
		t.Error("sessions share an ID")
	}
}
