package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
)

// DefaultScanDuration is the scan time used when none is given.
const DefaultScanDuration = 5 * time.Second

// Discovery errors.
var (
	ErrNotFound  = errors.New("device not found")
	ErrNoScanner = errors.New("no scanner configured")
)

// Result is a recognized device.
type Result struct {
	Advertisement device.Advertisement
	Family        *device.Family
}

// Config configures a Discoverer.
type Config struct {
	// Scanner provides advertisements. Required.
	Scanner transport.Scanner

	// Recognizer maps advertisements to families. Nil uses the default
	// registry.
	Recognizer *device.Recognizer

	// Logger receives debug records for skipped advertisements.
	Logger *slog.Logger
}

// Discoverer scans for supported clocks.
type Discoverer struct {
	scanner    transport.Scanner
	recognizer *device.Recognizer
	logger     *slog.Logger
}

// New creates a Discoverer.
func New(cfg Config) (*Discoverer, error) {
	if cfg.Scanner == nil {
		return nil, ErrNoScanner
	}
	rec := cfg.Recognizer
	if rec == nil {
		rec = &device.Recognizer{Logger: cfg.Logger}
	}
	return &Discoverer{
		scanner:    cfg.Scanner,
		recognizer: rec,
		logger:     cfg.Logger,
	}, nil
}

// Discover scans for duration and emits every recognized device once.
// The channel is closed when the scan ends or ctx is cancelled.
func (d *Discoverer) Discover(ctx context.Context, duration time.Duration) (<-chan Result, error) {
	if duration <= 0 {
		duration = DefaultScanDuration
	}

	advs, err := d.scanner.Scan(ctx, duration)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	out := make(chan Result)
	go func() {
		defer close(out)

		// Addresses already reported in this scan. Unsupported addresses
		// are not recorded: a later scan response may carry the name.
		seen := make(map[string]struct{})

		for {
			select {
			case adv, ok := <-advs:
				if !ok {
					return
				}
				key := NormalizeAddress(adv.Address)
				if _, dup := seen[key]; dup {
					continue
				}

				family, err := d.recognizer.Recognize(adv)
				if err != nil {
					if !errors.Is(err, device.ErrUnsupportedDevice) {
						d.debugLog("recognition failed", "address", adv.Address, "error", err)
					}
					continue
				}
				seen[key] = struct{}{}

				d.debugLog("found clock", "address", adv.Address, "family", family.Type)
				select {
				case out <- Result{Advertisement: adv, Family: family}:
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Find scans for up to duration until address advertises with data that
// a family recognizes. Advertisements from address that no family
// matches are skipped, since a later scan response may carry the name.
// If the scan ends without a match, the last recognition error for
// address is returned, or ErrNotFound when address never advertised.
func (d *Discoverer) Find(ctx context.Context, address string, duration time.Duration) (Result, error) {
	if duration <= 0 {
		duration = DefaultScanDuration
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	advs, err := d.scanner.Scan(ctx, duration)
	if err != nil {
		return Result{}, fmt.Errorf("scan: %w", err)
	}

	want := NormalizeAddress(address)
	var unsupported error
	for {
		select {
		case adv, ok := <-advs:
			if !ok {
				if err := d.Err(); err != nil {
					return Result{}, err
				}
				if unsupported != nil {
					return Result{}, unsupported
				}
				return Result{}, fmt.Errorf("%w: %s", ErrNotFound, address)
			}
			if NormalizeAddress(adv.Address) != want {
				continue
			}

			family, err := d.recognizer.Recognize(adv)
			if errors.Is(err, device.ErrUnsupportedDevice) {
				unsupported = err
				continue
			}
			if err != nil {
				return Result{}, err
			}
			d.debugLog("found clock", "address", adv.Address, "family", family.Type)
			return Result{Advertisement: adv, Family: family}, nil

		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}

// Err returns the error that ended the last scan early when the scanner
// reports one. Call it after the Discover channel is closed.
func (d *Discoverer) Err() error {
	r, ok := d.scanner.(transport.ScanErrorReporter)
	if !ok {
		return nil
	}
	if err := r.ScanErr(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

// NormalizeAddress returns address in upper case without surrounding
// spaces, so "aa:bb:.." and "AA:BB:.." compare equal.
func NormalizeAddress(address string) string {
	return strings.ToUpper(strings.TrimSpace(address))
}

// debugLog logs a debug message if logging is enabled.
func (d *Discoverer) debugLog(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
