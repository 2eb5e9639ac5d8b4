package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/discovery"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
)

// ErrScanInProgress is returned when Scan is called during another scan.
var ErrScanInProgress = errors.New("scan already in progress")

// scanBuffer is the number of advertisements queued for a slow reader.
const scanBuffer = 64

// Config configures an Adapter.
type Config struct {
	// Adapter is the stack adapter. Nil selects one by ID.
	Adapter *bluetooth.Adapter

	// ID names the local adapter. On Linux only "hci0" is supported;
	// elsewhere it is ignored. Empty selects the default adapter.
	ID string

	// Requests sends acknowledged writes. Nil uses the stack, or BlueZ
	// on Linux where the stack has no write request.
	Requests RequestWriter

	// ServiceUUIDs are looked up in every advertisement on platforms that do
	// not expose raw advertising data. Nil uses the UUIDs of the default
	// registry's recognition rules.
	ServiceUUIDs []uuid.UUID

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// RequestWriter sends a write request to a connected device and returns
// once the device has acknowledged it.
type RequestWriter interface {
	WriteCharacteristic(address string, service, char uuid.UUID, data []byte) error
}

// Adapter is a transport.Scanner and transport.Central backed by a local
// Bluetooth adapter.
type Adapter struct {
	adapter  *bluetooth.Adapter
	watched  []watchedService
	requests RequestWriter
	logger   *slog.Logger

	enableOnce sync.Once
	enableErr  error

	mu       sync.Mutex
	scanning bool
	scanErr  error
	seen     map[string]bluetooth.Address
}

// New creates an Adapter. The radio is enabled on first use.
func New(cfg Config) (*Adapter, error) {
	a := cfg.Adapter
	if a == nil {
		var err error
		if a, err = stackAdapter(cfg.ID); err != nil {
			return nil, err
		}
	}
	requests := cfg.Requests
	if requests == nil {
		requests = defaultRequestWriter(cfg.ID, cfg.Logger)
	}
	ids := cfg.ServiceUUIDs
	if ids == nil {
		ids = device.Default().ServiceUUIDs()
	}
	watched, err := newWatched(ids)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		adapter:  a,
		watched:  watched,
		requests: requests,
		logger:   cfg.Logger,
		seen:     make(map[string]bluetooth.Address),
	}, nil
}

// enable turns the stack on once.
func (a *Adapter) enable() error {
	a.enableOnce.Do(func() {
		if err := a.adapter.Enable(); err != nil {
			a.enableErr = fmt.Errorf("%w: %v", transport.ErrAdapter, err)
		}
	})
	return a.enableErr
}

// Scan implements transport.Scanner.
func (a *Adapter) Scan(ctx context.Context, duration time.Duration) (<-chan device.Advertisement, error) {
	if err := a.enable(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.scanning {
		a.mu.Unlock()
		return nil, ErrScanInProgress
	}
	a.scanning = true
	a.scanErr = nil
	a.mu.Unlock()

	out := make(chan device.Advertisement, scanBuffer)
	scanCtx, cancel := context.WithTimeout(ctx, duration)

	// Stop the scan when the duration elapses or ctx is cancelled.
	go func() {
		<-scanCtx.Done()
		if err := a.adapter.StopScan(); err != nil {
			a.debugLog("stop scan failed", "error", err)
		}
	}()

	go func() {
		var scanErr error
		defer func() {
			cancel()
			a.mu.Lock()
			a.scanning = false
			a.scanErr = scanErr
			a.mu.Unlock()
			close(out)
		}()

		err := a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if scanCtx.Err() != nil {
				_ = a.adapter.StopScan()
				return
			}
			address := discovery.NormalizeAddress(result.Address.String())
			a.remember(address, result.Address)

			adv := toAdvertisement(address, result.RSSI, result.AdvertisementPayload, a.watched)
			select {
			case out <- adv:
			default:
				a.debugLog("advertisement dropped", "address", address)
			}
		})
		if err != nil && scanCtx.Err() == nil {
			a.debugLog("scan failed", "error", err)
			scanErr = fmt.Errorf("%w: %v", transport.ErrAdapter, err)
		}
	}()

	return out, nil
}

// ScanErr implements transport.ScanErrorReporter.
func (a *Adapter) ScanErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scanErr
}

func (a *Adapter) remember(address string, addr bluetooth.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen[address] = addr
}

func (a *Adapter) lookup(address string) (bluetooth.Address, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	addr, ok := a.seen[discovery.NormalizeAddress(address)]
	return addr, ok
}

// Connect implements transport.Central.
func (a *Adapter) Connect(ctx context.Context, address string) (transport.Connection, error) {
	if err := a.enable(); err != nil {
		return nil, &transport.ConnectError{Address: address, Err: err}
	}
	addr, ok := a.lookup(address)
	if !ok {
		return nil, &transport.ConnectError{
			Address: address,
			Err:     fmt.Errorf("%w: address not seen in a scan", transport.ErrNotFound),
		}
	}

	type result struct {
		dev bluetooth.Device
		err error
	}
	done := make(chan result, 1)
	go func() {
		dev, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
		done <- result{dev: dev, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &transport.ConnectError{Address: address, Err: r.err}
		}
		a.debugLog("connected", "address", address)
		return newConnection(address, r.dev, a.requests, a.logger), nil

	case <-ctx.Done():
		// Drop the late connection, if any.
		go func() {
			if r := <-done; r.err == nil {
				_ = r.dev.Disconnect()
			}
		}()
		return nil, &transport.ConnectError{Address: address, Err: ctx.Err()}
	}
}

// debugLog logs a debug message if logging is enabled.
func (a *Adapter) debugLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ transport.Scanner           = (*Adapter)(nil)
	_ transport.Central           = (*Adapter)(nil)
	_ transport.ScanErrorReporter = (*Adapter)(nil)
)
