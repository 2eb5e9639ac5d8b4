//go:build linux

package ble

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/bluez"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
)

// stackAdapter returns the BlueZ adapter. The stack only drives the
// first adapter.
func stackAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" && id != bluez.DefaultAdapter {
		return nil, fmt.Errorf("%w: %s: only %s is supported", transport.ErrAdapter, id, bluez.DefaultAdapter)
	}
	return bluetooth.DefaultAdapter, nil
}

// defaultRequestWriter sends write requests through BlueZ. The bus is
// opened on the first acknowledged write.
func defaultRequestWriter(id string, logger *slog.Logger) RequestWriter {
	return &bluezWriter{id: id, logger: logger}
}

type bluezWriter struct {
	id     string
	logger *slog.Logger

	once   sync.Once
	client *bluez.Client
	err    error
}

func (w *bluezWriter) WriteCharacteristic(address string, service, char uuid.UUID, data []byte) error {
	w.once.Do(func() {
		w.client, w.err = bluez.Connect(w.id, w.logger)
	})
	if w.err != nil {
		return w.err
	}
	return w.client.WriteCharacteristic(address, service, char, data)
}

// writeRequest sends data as an acknowledged write. The stack only
// exposes write commands on Linux, so requests go through BlueZ.
func (c *connection) writeRequest(_ bluetooth.DeviceCharacteristic, service, char uuid.UUID, data []byte) error {
	if c.requests == nil {
		return fmt.Errorf("%w: no acknowledged write available", transport.ErrAdapter)
	}
	return c.requests.WriteCharacteristic(c.address, service, char, data)
}
