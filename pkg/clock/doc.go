// Package clock reads and sets the time of supported Bluetooth clocks.
//
// A Clock is a handle to one recognized device: its address, advertised
// name and family. Service runs the connect, transfer and disconnect
// sequence for a single operation on that handle.
//
// # Sessions
//
// Every GetTime or SetTime call is one session:
//
//	IDLE -> CONNECTING -> CONNECTED -> READING|WRITING -> DISCONNECTED
//
// A failure in any state moves straight to DISCONNECTED. The connection
// is always closed before the call returns and nothing is retried;
// backoff.Retry is available to callers that want to try again.
// Transitions are reported to the optional slog.Logger at debug level and
// to the protocol logger as state change events.
//
// # Reading
//
// Families without a decoder are write-only: GetTime returns
// ErrNotReadable before touching the radio. Families in ReadDirect mode
// read the time characteristic. Families in ReadNotify mode subscribe,
// write their read command and wait up to NotifyTimeout for one
// notification.
package clock
