package clock

// State is the state of a clock session.
type State uint8

const (
	// StateIdle is the state before any transport call.
	StateIdle State = iota

	// StateConnecting indicates a connection attempt is in progress.
	StateConnecting

	// StateConnected indicates an open connection with no transfer running.
	StateConnected

	// StateReading indicates the time is being read.
	StateReading

	// StateWriting indicates the time is being written.
	StateWriting

	// StateDisconnected is terminal; the connection, if any, is closed.
	StateDisconnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReading:
		return "READING"
	case StateWriting:
		return "WRITING"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
