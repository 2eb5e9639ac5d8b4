package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/backoff"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/bluez"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/clock"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/config"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	plog "github.com/koenvervloesem/bluetooth-clocks/pkg/log"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport/ble"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// clockService is the part of clock.Service the commands use.
type clockService interface {
	Families() []*device.Family
	Discover(ctx context.Context, scanDuration time.Duration, onFound func(*clock.Clock)) error
	Find(ctx context.Context, address string, scanDuration time.Duration) (*clock.Clock, error)
	GetTime(ctx context.Context, c *clock.Clock) (time.Time, error)
	SetTime(ctx context.Context, c *clock.Clock, t *time.Time, mode wire.DisplayMode) error
}

var _ clockService = (*clock.Service)(nil)

// app holds what one command run needs.
type app struct {
	cfg     *config.Config
	svc     clockService
	out     io.Writer
	logger  *slog.Logger
	closers []io.Closer

	// backoff spaces out connect retries. Zero uses the defaults.
	backoff backoff.Config
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.protocolLog != "" {
		cfg.ProtocolLog = opts.protocolLog
	}
	if opts.scanDuration > 0 {
		cfg.ScanDuration = opts.scanDuration
		cfg.Sync.ScanDuration = opts.scanDuration
	}
	if opts.schedule != "" {
		cfg.Sync.Schedule = opts.schedule
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp loads the configuration and sets up the Bluetooth stack.
// The list command needs no radio and skips it.
func newApp(cmd string, opts options, out io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)

	a := &app{cfg: cfg, out: out}
	if cfg.LogLevel == "debug" {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	svcCfg := clock.DefaultConfig()
	svcCfg.Strict = opts.strict
	svcCfg.Logger = a.logger
	svcCfg.ConnectTimeout = cfg.ConnectTimeout
	svcCfg.NotifyTimeout = cfg.NotifyTimeout
	svcCfg.OperationTimeout = cfg.OperationTimeout

	if cmd != "list" {
		if err := a.preflight(); err != nil {
			return nil, err
		}

		adapter, err := ble.New(ble.Config{ID: cfg.Adapter, Logger: a.logger})
		if err != nil {
			return nil, err
		}
		svcCfg.Central = adapter
		svcCfg.Scanner = adapter

		pl, err := a.protocolLogger()
		if err != nil {
			a.Close()
			return nil, err
		}
		svcCfg.ProtocolLogger = pl
	}

	svc, err := clock.NewService(svcCfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.svc = svc
	return a, nil
}

// preflight checks BlueZ on Linux so a stopped daemon or a powered-off
// adapter gives a clear message instead of a scan error.
func (a *app) preflight() error {
	if runtime.GOOS != "linux" {
		return nil
	}
	client, err := bluez.Connect(a.cfg.Adapter, a.logger)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Preflight(a.cfg.PowerOn); err != nil {
		if errors.Is(err, bluez.ErrAdapterOff) {
			return fmt.Errorf("%w (set power_on: true or run 'bluetoothctl power on')", err)
		}
		return err
	}
	if info, err := client.Info(); err == nil {
		log.Printf("Using adapter %s (%s)", a.cfg.Adapter, info.Address)
	}
	return nil
}

// protocolLogger opens the capture file, if configured, and mirrors
// events to slog at debug level.
func (a *app) protocolLogger() (plog.Logger, error) {
	var loggers []plog.Logger
	if a.cfg.ProtocolLog != "" {
		fl, err := plog.NewFileLogger(a.cfg.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("open protocol log: %w", err)
		}
		a.closers = append(a.closers, fl)
		loggers = append(loggers, fl)
		log.Printf("Capturing protocol traffic to %s", fl.Path())
	}
	if a.logger != nil {
		loggers = append(loggers, plog.NewSlogAdapter(a.logger))
	}
	if len(loggers) == 0 {
		return nil, nil
	}
	return plog.NewMultiLogger(loggers...), nil
}

// Close releases the protocol log.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("Close failed: %v", err)
		}
	}
	a.closers = nil
}
