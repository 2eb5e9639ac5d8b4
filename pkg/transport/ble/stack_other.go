//go:build darwin || windows

package ble

import (
	"log/slog"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

// stackAdapter returns the only adapter the platform exposes.
func stackAdapter(string) (*bluetooth.Adapter, error) {
	return bluetooth.DefaultAdapter, nil
}

func defaultRequestWriter(string, *slog.Logger) RequestWriter {
	return nil
}

// writeRequest sends data as an acknowledged write through the stack,
// unless the adapter was given its own RequestWriter.
func (c *connection) writeRequest(dc bluetooth.DeviceCharacteristic, service, char uuid.UUID, data []byte) error {
	if c.requests != nil {
		return c.requests.WriteCharacteristic(c.address, service, char, data)
	}
	_, err := dc.Write(data)
	return err
}
