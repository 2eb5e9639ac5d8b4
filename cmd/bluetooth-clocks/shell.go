package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/clock"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/discovery"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// shell is the interactive prompt. Clocks found by discover are kept so
// get and set can skip the scan.
type shell struct {
	app *app
	rl  *readline.Instance

	mu     sync.Mutex
	clocks map[string]*clock.Clock
}

func newShell(a *app) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "clocks> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("discover"),
			readline.PcItem("clocks"),
			readline.PcItem("get"),
			readline.PcItem("set"),
			readline.PcItem("list"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	sh := newShellWithOutput(a, rl.Stdout())
	sh.rl = rl
	return sh, nil
}

// newShellWithOutput creates a shell without a terminal.
func newShellWithOutput(a *app, out io.Writer) *shell {
	cp := *a
	cp.out = out
	return &shell{
		app:    &cp,
		clocks: make(map[string]*clock.Clock),
	}
}

// Run starts the interactive command loop.
func (s *shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.app.out, "Exiting...")
			cancel()
			return
		}

		if !s.exec(ctx, line) {
			cancel()
			return
		}
	}
}

// exec runs one command line. It returns false when the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "discover", "scan":
		s.cmdDiscover(ctx, args)

	case "clocks", "ls":
		s.cmdClocks()

	case "get", "g":
		s.cmdGet(ctx, args)

	case "set", "s":
		s.cmdSet(ctx, args)

	case "list", "families":
		s.app.list()

	case "quit", "exit", "q":
		fmt.Fprintln(s.app.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.app.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.app.out, `
Bluetooth Clocks Commands:
  discover [seconds]               - Scan for supported clocks
  clocks                           - Show clocks found so far
  get <address>                    - Read the time of a clock
  set <address> [time] [ampm]      - Set the time (ISO 8601, default now)
  list                             - List supported families
  help                             - Show this help
  quit                             - Exit`)
}

func (s *shell) cmdDiscover(ctx context.Context, args []string) {
	scan := s.app.cfg.ScanDuration
	if len(args) > 0 {
		secs, err := strconv.ParseFloat(args[0], 64)
		if err != nil || secs <= 0 {
			fmt.Fprintf(s.app.out, "Invalid scan duration: %s\n", args[0])
			return
		}
		scan = time.Duration(secs * float64(time.Second))
	}

	fmt.Fprintln(s.app.out, "Scanning for supported clocks...")
	found := 0
	err := s.app.svc.Discover(ctx, scan, func(c *clock.Clock) {
		found++
		s.remember(c)
		fmt.Fprintf(s.app.out, "  %s\n", describeClock(c))
	})
	if err != nil {
		fmt.Fprintln(s.app.out, errorMessage(err, "", "scan"))
		return
	}
	if found == 0 {
		fmt.Fprintln(s.app.out, "No supported clocks found")
	}
}

func (s *shell) cmdClocks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clocks) == 0 {
		fmt.Fprintln(s.app.out, "No clocks found yet (use 'discover')")
		return
	}
	addrs := make([]string, 0, len(s.clocks))
	for a := range s.clocks {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	for _, a := range addrs {
		c := s.clocks[a]
		read := "write only"
		if c.Readable() {
			read = "readable"
		}
		fmt.Fprintf(s.app.out, "  %s (%s, RSSI %d)\n", c, read, c.RSSI)
	}
}

func (s *shell) cmdGet(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.app.out, "Usage: get <address>")
		return
	}
	c, ok := s.resolve(ctx, args[0], "read from")
	if !ok {
		return
	}
	_ = s.app.readClock(ctx, c)
}

func (s *shell) cmdSet(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 3 {
		fmt.Fprintln(s.app.out, "Usage: set <address> [time] [ampm]")
		return
	}

	var t *time.Time
	mode := wire.Mode24Hour
	for _, arg := range args[1:] {
		switch strings.ToLower(arg) {
		case "ampm", "12h":
			mode = wire.Mode12Hour
		case "24h":
			mode = wire.Mode24Hour
		default:
			parsed, err := parseTime(arg, time.Local)
			if err != nil {
				fmt.Fprintln(s.app.out, err)
				return
			}
			t = &parsed
		}
	}

	c, ok := s.resolve(ctx, args[0], "write to")
	if !ok {
		return
	}
	_ = s.app.writeClock(ctx, c, t, mode)
}

// resolve returns a remembered clock or scans for it.
func (s *shell) resolve(ctx context.Context, address, op string) (*clock.Clock, bool) {
	address = discovery.NormalizeAddress(address)

	s.mu.Lock()
	c, ok := s.clocks[address]
	s.mu.Unlock()
	if ok {
		return c, true
	}

	fmt.Fprintf(s.app.out, "Scanning for device %s...\n", address)
	c, err := s.app.svc.Find(ctx, address, s.app.cfg.ScanDuration)
	if err != nil {
		fmt.Fprintln(s.app.out, errorMessage(err, address, op))
		return nil, false
	}
	s.remember(c)
	return c, true
}

func (s *shell) remember(c *clock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clocks[discovery.NormalizeAddress(c.Address)] = c
}
