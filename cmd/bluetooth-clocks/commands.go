package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/backoff"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/clock"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/discovery"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/schedule"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// isoLayout is the local time format printed by get.
const isoLayout = "2006-01-02T15:04:05"

// discover prints every supported clock found during one scan.
func (a *app) discover(ctx context.Context) error {
	fmt.Fprintln(a.out, "Scanning for supported clocks...")

	found := false
	err := a.svc.Discover(ctx, a.cfg.ScanDuration, func(c *clock.Clock) {
		found = true
		fmt.Fprintln(a.out, describeClock(c))
	})
	if err != nil {
		fmt.Fprintln(a.out, errorMessage(err, "", "scan"))
		return err
	}
	if !found {
		fmt.Fprintln(a.out, "No supported clocks found")
	}
	return nil
}

// get finds the clock at address and prints its time.
func (a *app) get(ctx context.Context, address string) error {
	fmt.Fprintf(a.out, "Scanning for device %s...\n", address)
	c, err := a.svc.Find(ctx, address, a.cfg.ScanDuration)
	if err != nil {
		fmt.Fprintln(a.out, errorMessage(err, address, "read from"))
		return err
	}
	return a.readClock(ctx, c)
}

func (a *app) readClock(ctx context.Context, c *clock.Clock) error {
	fmt.Fprintln(a.out, "Reading time from device...")
	var t time.Time
	err := a.retry(ctx, func(ctx context.Context) error {
		var err error
		t, err = a.svc.GetTime(ctx, c)
		return err
	})
	if err != nil {
		fmt.Fprintln(a.out, errorMessage(err, c.Address, "read from"))
		return err
	}
	fmt.Fprintln(a.out, t.Format(isoLayout))
	return nil
}

// set finds the clock at address and writes t, or the current time when
// t is nil.
func (a *app) set(ctx context.Context, address string, t *time.Time, mode wire.DisplayMode) error {
	fmt.Fprintf(a.out, "Scanning for device %s...\n", address)
	c, err := a.svc.Find(ctx, address, a.cfg.ScanDuration)
	if err != nil {
		fmt.Fprintln(a.out, errorMessage(err, address, "write to"))
		return err
	}
	return a.writeClock(ctx, c, t, mode)
}

func (a *app) writeClock(ctx context.Context, c *clock.Clock, t *time.Time, mode wire.DisplayMode) error {
	fmt.Fprintln(a.out, "Writing time to device...")
	err := a.retry(ctx, func(ctx context.Context) error {
		return a.svc.SetTime(ctx, c, t, mode)
	})
	if err != nil {
		fmt.Fprintln(a.out, errorMessage(err, c.Address, "write to"))
		return err
	}
	fmt.Fprintln(a.out, "Synchronized time")
	return nil
}

// retry runs op again when the clock could not be connected.
func (a *app) retry(ctx context.Context, op func(context.Context) error) error {
	return backoff.Retry(ctx, a.cfg.ConnectAttempts, a.backoff, isConnectError, func(ctx context.Context) error {
		err := op(ctx)
		if isConnectError(err) && a.logger != nil {
			a.logger.Debug("connect failed", "error", err)
		}
		return err
	})
}

func isConnectError(err error) bool {
	return errors.Is(err, transport.ErrConnect)
}

// list prints the supported families.
func (a *app) list() {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tREAD\tWRITE\tCODEC")
	for _, f := range a.svc.Families() {
		write := "no ack"
		if f.WriteWithResponse {
			write = "ack"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Type, f.ReadMode, write, f.Codec.Name)
	}
	w.Flush()
}

// sync sets the time of every clock found, once or on a schedule.
func (a *app) sync(ctx context.Context, opts options) error {
	mode := opts.mode
	if a.cfg.Sync.AMPM {
		mode = wire.Mode12Hour
	}

	s, err := schedule.New(a.svc, schedule.Config{
		Schedule:     a.cfg.Sync.Schedule,
		ScanDuration: a.cfg.Sync.ScanDuration,
		Mode:         mode,
		Families:     a.cfg.Sync.Families,
		Logger:       a.schedLogger(),

		ConnectAttempts: a.cfg.ConnectAttempts,
		Backoff:         a.backoff,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Invalid sync configuration: %v\n", err)
		return err
	}

	if opts.once {
		report, err := s.RunOnce(ctx)
		if err != nil {
			fmt.Fprintln(a.out, errorMessage(err, "", "scan"))
			return err
		}
		fmt.Fprintf(a.out, "Found %d, synchronized %d, skipped %d, failed %d\n",
			report.Found, report.Synced, report.Skipped, report.Failed)
		if report.Failed > 0 {
			return fmt.Errorf("%d clocks failed", report.Failed)
		}
		return nil
	}

	s.Start(ctx)
	log.Printf("Next sync at %s", s.Next().Format(time.RFC3339))
	<-ctx.Done()
	log.Println("Stopping...")
	s.Stop()
	return nil
}

// schedLogger returns the logger sync reports its runs to.
func (a *app) schedLogger() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.New(slog.NewTextHandler(a.out, nil))
}

// shell runs the interactive prompt.
func (a *app) shell(ctx context.Context) error {
	sh, err := newShell(a)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sh.Run(ctx, cancel)
	return nil
}

// describeClock formats a discovered clock.
func describeClock(c *clock.Clock) string {
	s := fmt.Sprintf("Found a %s: address %s", c.Type(), c.Address)
	if c.Name != "" {
		s += ", name " + c.Name
	}
	return s
}

// errorMessage turns an error from a command into a line for the user.
// op is "read from", "write to" or "scan".
func errorMessage(err error, address, op string) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Interrupted"
	case errors.Is(err, discovery.ErrNotFound):
		return fmt.Sprintf("Didn't find device %s.", address)
	case errors.Is(err, device.ErrUnsupportedDevice), errors.Is(err, device.ErrAmbiguousDevice):
		return fmt.Sprintf("Unsupported device: %v", err)
	case errors.Is(err, clock.ErrNotReadable):
		return "Device doesn't support reading the time"
	case errors.Is(err, clock.ErrReadInProgress):
		return fmt.Sprintf("Device %s is busy: %v", address, err)
	case errors.Is(err, transport.ErrConnect):
		return fmt.Sprintf("Can't connect to device %s: %v", address, err)
	case errors.Is(err, transport.ErrAdapter):
		return fmt.Sprintf("Bluetooth adapter unavailable: %v", err)
	case op == "scan":
		return fmt.Sprintf("Scan failed: %v", err)
	case errors.Is(err, clock.ErrNotifyTimeout),
		errors.Is(err, transport.ErrTransport),
		errors.Is(err, wire.ErrInvalidPayload):
		return fmt.Sprintf("Can't %s device %s: %v", op, address, err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
