package clock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/discovery"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// Default timeouts.
const (
	DefaultConnectTimeout   = 10 * time.Second
	DefaultNotifyTimeout    = 5 * time.Second
	DefaultOperationTimeout = 10 * time.Second
)

// Config configures a Service.
type Config struct {
	// Central opens connections. Required for GetTime and SetTime.
	Central transport.Central

	// Scanner provides advertisements. Required for Find and Discover.
	Scanner transport.Scanner

	// Registry lists the supported families. Nil uses device.Default().
	Registry *device.Registry

	// Strict rejects advertisements that match two families of the same
	// rule tier instead of picking the first.
	Strict bool

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// ProtocolLogger receives GATT traffic and session events.
	ProtocolLogger log.Logger

	// ConnectTimeout bounds each connection attempt.
	ConnectTimeout time.Duration

	// NotifyTimeout bounds the wait for a time notification.
	NotifyTimeout time.Duration

	// OperationTimeout bounds each GATT read, write and subscribe.
	OperationTimeout time.Duration

	// Location is the clocks' local zone. Read times are returned in it
	// and written times are converted to it. Nil uses time.Local.
	Location *time.Location

	// Now returns the time written by SetTime when none is given.
	// Nil uses time.Now.
	Now func() time.Time
}

// DefaultConfig returns a Config with the default timeouts.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:   DefaultConnectTimeout,
		NotifyTimeout:    DefaultNotifyTimeout,
		OperationTimeout: DefaultOperationTimeout,
		Now:              time.Now,
	}
}

// Service finds clocks and reads or sets their time.
type Service struct {
	central          transport.Central
	registry         *device.Registry
	discoverer       *discovery.Discoverer
	logger           *slog.Logger
	protocolLogger   log.Logger
	connectTimeout   time.Duration
	notifyTimeout    time.Duration
	operationTimeout time.Duration
	location         *time.Location
	now              func() time.Time
}

// NewService creates a Service. Zero timeouts fall back to the defaults.
func NewService(cfg Config) (*Service, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = device.Default()
	}

	s := &Service{
		central:          cfg.Central,
		registry:         reg,
		logger:           cfg.Logger,
		protocolLogger:   cfg.ProtocolLogger,
		connectTimeout:   cfg.ConnectTimeout,
		notifyTimeout:    cfg.NotifyTimeout,
		operationTimeout: cfg.OperationTimeout,
		location:         cfg.Location,
		now:              cfg.Now,
	}
	if s.connectTimeout <= 0 {
		s.connectTimeout = DefaultConnectTimeout
	}
	if s.notifyTimeout <= 0 {
		s.notifyTimeout = DefaultNotifyTimeout
	}
	if s.operationTimeout <= 0 {
		s.operationTimeout = DefaultOperationTimeout
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}

	if cfg.Scanner != nil {
		d, err := discovery.New(discovery.Config{
			Scanner: cfg.Scanner,
			Recognizer: &device.Recognizer{
				Registry: reg,
				Strict:   cfg.Strict,
				Logger:   cfg.Logger,
			},
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		s.discoverer = d
	}

	return s, nil
}

// SupportedFamilies returns the family types in registry order.
func (s *Service) SupportedFamilies() []string {
	return s.registry.Types()
}

// Families returns the registered families in registry order.
func (s *Service) Families() []*device.Family {
	return s.registry.All()
}

// Find scans for up to scanDuration for the clock at address.
func (s *Service) Find(ctx context.Context, address string, scanDuration time.Duration) (*Clock, error) {
	if s.discoverer == nil {
		return nil, discovery.ErrNoScanner
	}
	r, err := s.discoverer.Find(ctx, address, scanDuration)
	if err != nil {
		return nil, err
	}
	return New(r.Advertisement, r.Family), nil
}

// Discover scans for scanDuration and calls onFound once per recognized
// clock. It returns when the scan ends, with the scanner's error when the
// scan failed or with ctx.Err() when ctx is cancelled first.
func (s *Service) Discover(ctx context.Context, scanDuration time.Duration, onFound func(*Clock)) error {
	if s.discoverer == nil {
		return discovery.ErrNoScanner
	}
	results, err := s.discoverer.Discover(ctx, scanDuration)
	if err != nil {
		return err
	}
	for r := range results {
		onFound(New(r.Advertisement, r.Family))
	}
	if err := s.discoverer.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

// GetTime reads the current time of c.
func (s *Service) GetTime(ctx context.Context, c *Clock) (time.Time, error) {
	if err := s.checkClock(c); err != nil {
		return time.Time{}, err
	}
	if !c.Family.Readable() {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNotReadable, c.Family.Type)
	}
	if !c.beginRead() {
		return time.Time{}, fmt.Errorf("%w: %s", ErrReadInProgress, c.Address)
	}
	defer c.endRead()

	sess := s.newSession(c)
	conn, err := sess.connect(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer sess.close(conn)

	data, err := sess.read(ctx, conn)
	if err != nil {
		return time.Time{}, err
	}
	return sess.decode(data, s.location)
}

// SetTime writes t to c, or the current time when t is nil. The time is
// encoded as wall-clock time in the configured location. mode selects
// the 12 or 24-hour display on clocks that support it.
func (s *Service) SetTime(ctx context.Context, c *Clock, t *time.Time, mode wire.DisplayMode) error {
	if err := s.checkClock(c); err != nil {
		return err
	}

	sess := s.newSession(c)
	conn, err := sess.connect(ctx)
	if err != nil {
		return err
	}
	defer sess.close(conn)

	when := s.now()
	if t != nil {
		when = *t
	}
	when = when.In(s.location)

	data := sess.encode(when, mode)
	sess.transition(StateWriting, "")
	return sess.write(ctx, conn, data)
}

func (s *Service) checkClock(c *Clock) error {
	if c == nil || c.Family == nil {
		return ErrInvalidClock
	}
	if s.central == nil {
		return ErrNoCentral
	}
	return nil
}
