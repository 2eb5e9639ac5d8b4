package log

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a protocol log event captured during a clock session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies one GetTime or SetTime run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the host. Only GATT and
	// codec events carry one; see HasDirection.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Address is the Bluetooth address of the clock.
	Address string `cbor:"6,keyasint,omitempty"`

	// Family is the recognized device family type.
	Family string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	GATT        *GATTEvent        `cbor:"10,keyasint,omitempty"` // Transport layer
	Codec       *CodecEvent       `cbor:"11,keyasint,omitempty"` // Codec layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Session state
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// HasDirection reports whether the event moves data, so that its
// Direction is meaningful. State and error events leave it at zero.
func (e Event) HasDirection() bool {
	return e.Category == CategoryGATT || e.Category == CategoryCodec
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data received from the clock.
	DirectionIn Direction = 0
	// DirectionOut indicates data sent to the clock.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the GATT layer (raw characteristic bytes).
	LayerTransport Layer = 0
	// LayerCodec is the time encoding layer.
	LayerCodec Layer = 1
	// LayerSession is the connect/read/write/close sequence.
	LayerSession Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerCodec:
		return "CODEC"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryGATT indicates a characteristic read, write or notification.
	CategoryGATT Category = 0
	// CategoryCodec indicates an encoded or decoded timestamp.
	CategoryCodec Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryGATT:
		return "GATT"
	case CategoryCodec:
		return "CODEC"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// GATTEvent captures one characteristic operation at the transport layer.
type GATTEvent struct {
	// Op is the GATT operation.
	Op GATTOp `cbor:"1,keyasint"`

	// ServiceUUID is the service holding the characteristic.
	ServiceUUID uuid.UUID `cbor:"2,keyasint"`

	// CharacteristicUUID is the characteristic accessed.
	CharacteristicUUID uuid.UUID `cbor:"3,keyasint"`

	// Data is the value read, written or notified.
	Data []byte `cbor:"4,keyasint,omitempty"`

	// WithResponse is set for acknowledged writes.
	WithResponse bool `cbor:"5,keyasint,omitempty"`
}

// GATTOp is a GATT characteristic operation.
type GATTOp uint8

const (
	// GATTRead is a characteristic read.
	GATTRead GATTOp = 0
	// GATTWrite is a characteristic write.
	GATTWrite GATTOp = 1
	// GATTSubscribe enables notifications.
	GATTSubscribe GATTOp = 2
	// GATTNotify is a received notification.
	GATTNotify GATTOp = 3
)

// String returns the operation name.
func (o GATTOp) String() string {
	switch o {
	case GATTRead:
		return "READ"
	case GATTWrite:
		return "WRITE"
	case GATTSubscribe:
		return "SUBSCRIBE"
	case GATTNotify:
		return "NOTIFY"
	default:
		return "UNKNOWN"
	}
}

// CodecEvent captures a timestamp and its characteristic encoding.
type CodecEvent struct {
	// Codec is the codec name.
	Codec string `cbor:"1,keyasint"`

	// Time is the encoded or decoded timestamp.
	Time time.Time `cbor:"2,keyasint"`

	// Data is the characteristic value.
	Data []byte `cbor:"3,keyasint,omitempty"`

	// DisplayMode is "12h" or "24h" for encoded values.
	DisplayMode string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
