package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
)

// Scanner discovers advertising devices.
type Scanner interface {
	// Scan streams advertisements until duration elapses or ctx is
	// cancelled, then closes the channel. The same device may be
	// reported more than once.
	Scan(ctx context.Context, duration time.Duration) (<-chan device.Advertisement, error)
}

// ScanErrorReporter is implemented by scanners whose scan can fail after
// Scan has returned.
type ScanErrorReporter interface {
	// ScanErr returns the error that closed the channel of the last scan
	// early. It is nil when that scan ran its course or was cancelled.
	ScanErr() error
}

// Central opens connections to peripherals.
type Central interface {
	// Connect opens a GATT connection to address. It returns an error
	// wrapping ErrConnectTimeout when ctx expires first.
	Connect(ctx context.Context, address string) (Connection, error)
}

// Connection is an open GATT connection.
// A Connection is used by one goroutine at a time.
type Connection interface {
	// Read returns the current value of a characteristic.
	Read(ctx context.Context, service, characteristic uuid.UUID) ([]byte, error)

	// Write writes data to a characteristic. With withResponse the call
	// returns after the peripheral acknowledges the write.
	Write(ctx context.Context, service, characteristic uuid.UUID, data []byte, withResponse bool) error

	// Subscribe enables notifications on a characteristic. onNotify is
	// called from the adapter's goroutine and must not block.
	Subscribe(ctx context.Context, service, characteristic uuid.UUID, onNotify func([]byte)) error

	// Close disconnects. It is safe to call more than once.
	Close() error
}
