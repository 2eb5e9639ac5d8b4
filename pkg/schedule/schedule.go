package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/backoff"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/clock"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// Defaults.
const (
	DefaultScanDuration = 10 * time.Second
	DefaultRunTimeout   = 5 * time.Minute
)

// Errors returned by this package.
var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrUnknownFamily   = errors.New("unknown family")
)

// ClockService is the part of clock.Service a sync run uses.
type ClockService interface {
	Discover(ctx context.Context, scanDuration time.Duration, onFound func(*clock.Clock)) error
	SetTime(ctx context.Context, c *clock.Clock, t *time.Time, mode wire.DisplayMode) error
}

var _ ClockService = (*clock.Service)(nil)

// Config configures a Scheduler.
type Config struct {
	// Schedule is a cron expression, a descriptor or a duration.
	Schedule string

	// ScanDuration is the scan time of each run.
	ScanDuration time.Duration

	// Mode is the display mode written to every clock.
	Mode wire.DisplayMode

	// Families limits sync to these family types. Empty means all.
	Families []string

	// Registry validates Families. Nil uses device.Default().
	Registry *device.Registry

	// RunTimeout bounds one run.
	RunTimeout time.Duration

	// ConnectAttempts is the number of tries per clock when connecting
	// fails. Values below one mean a single try.
	ConnectAttempts int

	// Backoff spaces out the tries.
	Backoff backoff.Config

	// Logger is the optional logger.
	Logger *slog.Logger
}

// Report summarizes one run.
type Report struct {
	Found   int
	Skipped int
	Synced  int
	Failed  int
}

// Scheduler runs sync passes on a schedule.
type Scheduler struct {
	svc      ClockService
	cron     *cron.Cron
	entry    cron.EntryID
	schedule string
	scan     time.Duration
	mode     wire.DisplayMode
	families map[string]bool
	timeout  time.Duration
	attempts int
	backoff  backoff.Config
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	last    Report
}

// New creates a Scheduler. The schedule is parsed and the families are
// checked here so configuration errors surface before Start.
func New(svc ClockService, cfg Config) (*Scheduler, error) {
	sched, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	reg := cfg.Registry
	if reg == nil {
		reg = device.Default()
	}
	var families map[string]bool
	if len(cfg.Families) > 0 {
		families = make(map[string]bool, len(cfg.Families))
		for _, f := range cfg.Families {
			if _, ok := reg.Lookup(f); !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, f)
			}
			families[f] = true
		}
	}

	s := &Scheduler{
		svc:      svc,
		cron:     cron.New(),
		schedule: cfg.Schedule,
		scan:     cfg.ScanDuration,
		mode:     cfg.Mode,
		families: families,
		timeout:  cfg.RunTimeout,
		attempts: cfg.ConnectAttempts,
		backoff:  cfg.Backoff,
		logger:   cfg.Logger,
	}
	if s.scan <= 0 {
		s.scan = DefaultScanDuration
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRunTimeout
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.entry = s.cron.Schedule(sched, cron.FuncJob(s.job))
	return s, nil
}

// job is the cron callback.
func (s *Scheduler) job() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		s.logger.Debug("scheduler stopped, skipping sync")
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	report, err := s.RunOnce(runCtx)
	if err != nil {
		s.logger.Warn("sync failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Info("sync completed",
		"found", report.Found,
		"synced", report.Synced,
		"failed", report.Failed,
		"duration", time.Since(start))
}

// RunOnce scans, then sets the time on every allowed clock found. Errors
// on single clocks are counted in the report; the returned error is only
// set when the scan itself fails.
func (s *Scheduler) RunOnce(ctx context.Context) (Report, error) {
	var found []*clock.Clock
	err := s.svc.Discover(ctx, s.scan, func(c *clock.Clock) {
		found = append(found, c)
	})
	if err != nil {
		return Report{}, fmt.Errorf("scan: %w", err)
	}

	report := Report{Found: len(found)}
	for _, c := range found {
		if s.families != nil && !s.families[c.Type()] {
			s.logger.Debug("clock not in sync families", "address", c.Address, "family", c.Type())
			report.Skipped++
			continue
		}
		err := backoff.Retry(ctx, s.attempts, s.backoff, isConnectError, func(ctx context.Context) error {
			return s.svc.SetTime(ctx, c, nil, s.mode)
		})
		if err != nil {
			s.logger.Warn("set time failed", "address", c.Address, "family", c.Type(), "error", err)
			report.Failed++
			continue
		}
		s.logger.Info("time set", "address", c.Address, "family", c.Type())
		report.Synced++
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
	return report, nil
}

// isConnectError reports whether err is worth another try: the clock was
// seen in the scan but the connection did not come up.
func isConnectError(err error) bool {
	return errors.Is(err, transport.ErrConnect)
}

// Last returns the report of the most recent run.
func (s *Scheduler) Last() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Next returns the next scheduled run, or the zero time when stopped.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// Start begins running the schedule. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.started = true
	s.logger.Info("sync scheduled", "schedule", s.schedule, "scan", s.scan, "mode", s.mode)
}

// Stop cancels a running sync and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.ctx = nil
	s.started = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// ParseSchedule parses a cron expression or descriptor, then falls back to
// a duration.
func ParseSchedule(schedule string) (cron.Schedule, error) {
	if schedule == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSchedule)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if sched, err := parser.Parse(schedule); err == nil {
		return sched, nil
	}

	d, err := time.ParseDuration(schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a cron expression or duration", ErrInvalidSchedule, schedule)
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive: %q", ErrInvalidSchedule, schedule)
	}
	return constantDelay(d), nil
}

// constantDelay fires at a fixed interval. Unlike cron.Every it keeps
// sub-second precision.
type constantDelay time.Duration

func (d constantDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}
