package ble

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
)

// maxValueLen is the largest attribute value ATT allows.
const maxValueLen = 512

type charKey struct {
	service, characteristic uuid.UUID
}

// connection is a transport.Connection to one peripheral.
type connection struct {
	address  string
	dev      bluetooth.Device
	requests RequestWriter
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	chars  map[charKey]bluetooth.DeviceCharacteristic
}

func newConnection(address string, dev bluetooth.Device, requests RequestWriter, logger *slog.Logger) *connection {
	return &connection{
		address:  address,
		dev:      dev,
		requests: requests,
		logger:   logger,
		chars:    make(map[charKey]bluetooth.DeviceCharacteristic),
	}
}

// characteristic resolves and caches a characteristic.
func (c *connection) characteristic(op string, service, char uuid.UUID) (bluetooth.DeviceCharacteristic, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return bluetooth.DeviceCharacteristic{}, c.opError(op, char, transport.ErrClosed)
	}
	key := charKey{service, char}
	if dc, ok := c.chars[key]; ok {
		return dc, nil
	}

	sid, err := toStackUUID(service)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, c.opError(op, char, err)
	}
	cid, err := toStackUUID(char)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, c.opError(op, char, err)
	}

	services, err := c.dev.DiscoverServices([]bluetooth.UUID{sid})
	if err != nil || len(services) == 0 {
		return bluetooth.DeviceCharacteristic{}, c.opError(op, char,
			fmt.Errorf("%w: service %s: %v", transport.ErrNotFound, service, err))
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{cid})
	if err != nil || len(chars) == 0 {
		return bluetooth.DeviceCharacteristic{}, c.opError(op, char,
			fmt.Errorf("%w: characteristic %s: %v", transport.ErrNotFound, char, err))
	}

	c.chars[key] = chars[0]
	return chars[0], nil
}

func (c *connection) Read(ctx context.Context, service, char uuid.UUID) ([]byte, error) {
	dc, err := c.characteristic("read", service, char)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = run(ctx, func() error {
		buf := make([]byte, maxValueLen)
		n, err := dc.Read(buf)
		if err != nil {
			return err
		}
		data = buf[:n]
		return nil
	})
	if err != nil {
		return nil, c.opError("read", char, err)
	}
	return data, nil
}

func (c *connection) Write(ctx context.Context, service, char uuid.UUID, data []byte, withResponse bool) error {
	dc, err := c.characteristic("write", service, char)
	if err != nil {
		return err
	}

	err = run(ctx, func() error {
		if withResponse {
			return c.writeRequest(dc, service, char, data)
		}
		_, err := dc.WriteWithoutResponse(data)
		return err
	})
	if err != nil {
		return c.opError("write", char, err)
	}
	return nil
}

func (c *connection) Subscribe(ctx context.Context, service, char uuid.UUID, onNotify func([]byte)) error {
	dc, err := c.characteristic("subscribe", service, char)
	if err != nil {
		return err
	}
	if err := run(ctx, func() error { return dc.EnableNotifications(onNotify) }); err != nil {
		return c.opError("subscribe", char, err)
	}
	return nil
}

func (c *connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if err := c.dev.Disconnect(); err != nil {
		return c.opError("disconnect", uuid.Nil, err)
	}
	if c.logger != nil {
		c.logger.Debug("disconnected", "address", c.address)
	}
	return nil
}

func (c *connection) opError(op string, char uuid.UUID, err error) error {
	return &transport.OpError{Op: op, Characteristic: char.String(), Err: err}
}

// run calls fn and waits for it or for ctx, whichever ends first.
func run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ transport.Connection = (*connection)(nil)
