package log

import (
	"time"

	"github.com/google/uuid"
)

// Logger is the interface applications implement to receive protocol log events.
// Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records a protocol event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking delays
	// the clock session.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}

// Session stamps events of one clock session with a shared session ID,
// the clock address and family before passing them to a Logger.
type Session struct {
	logger  Logger
	id      string
	address string
	family  string
	now     func() time.Time
}

// NewSession starts a session with a fresh random ID. A nil logger
// discards all events.
func NewSession(logger Logger, address, family string) *Session {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Session{
		logger:  logger,
		id:      uuid.NewString(),
		address: address,
		family:  family,
		now:     time.Now,
	}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Log fills in the timestamp and session fields and forwards the event.
func (s *Session) Log(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	event.SessionID = s.id
	event.Address = s.address
	event.Family = s.family
	s.logger.Log(event)
}

// GATT logs a characteristic operation.
func (s *Session) GATT(dir Direction, g GATTEvent) {
	s.Log(Event{Direction: dir, Layer: LayerTransport, Category: CategoryGATT, GATT: &g})
}

// Codec logs an encoded or decoded timestamp.
func (s *Session) Codec(dir Direction, c CodecEvent) {
	s.Log(Event{Direction: dir, Layer: LayerCodec, Category: CategoryCodec, Codec: &c})
}

// State logs a session state change.
func (s *Session) State(oldState, newState, reason string) {
	s.Log(Event{
		Layer:       LayerSession,
		Category:    CategoryState,
		StateChange: &StateChangeEvent{OldState: oldState, NewState: newState, Reason: reason},
	})
}

// Error logs err at layer with a short description of the operation.
func (s *Session) Error(layer Layer, context string, err error) {
	s.Log(Event{
		Layer:    layer,
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: layer, Message: err.Error(), Context: context},
	})
}

var _ Logger = (*Session)(nil)
