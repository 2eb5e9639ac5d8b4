package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

var (
	errShowVersion = errors.New("show version")
	errShowUsage   = errors.New("show usage")
)

// options holds the parsed command line. Zero values mean "use the
// config file".
type options struct {
	configFile   string
	logLevel     string
	protocolLog  string
	scanDuration time.Duration
	strict       bool

	address   string
	timestamp *time.Time
	mode      wire.DisplayMode

	schedule string
	once     bool
}

// timeLayouts are the ISO 8601 forms accepted by -t, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses an ISO 8601 timestamp. Forms without an offset are
// interpreted in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use ISO 8601, e.g. 2023-01-10T16:20", s)
}

// parseArgs splits args into a command and its options.
func parseArgs(args []string, stderr io.Writer) (string, options, error) {
	var opts options

	if len(args) == 0 {
		return "", opts, errors.New("no command given")
	}
	switch args[0] {
	case "-version", "--version", "version":
		return "", opts, errShowVersion
	case "-h", "-help", "--help", "help":
		return "", opts, errShowUsage
	}

	cmd := args[0]
	fs := flag.NewFlagSet(programName+" "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var scanSeconds float64
	fs.StringVar(&opts.configFile, "config", "", "Configuration file path")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.protocolLog, "protocol-log", "", "Capture GATT traffic to this file")
	fs.Float64Var(&scanSeconds, "s", 0, "Scan duration in seconds (default 5)")
	fs.BoolVar(&opts.strict, "strict", false, "Reject advertisements matching more than one family")

	var timeStr string
	var ampm bool
	switch cmd {
	case "discover", "list", "shell":
	case "get":
		fs.StringVar(&opts.address, "a", "", "Bluetooth address, e.g. 12:34:56:78:9A:BC")
	case "set":
		fs.StringVar(&opts.address, "a", "", "Bluetooth address, e.g. 12:34:56:78:9A:BC")
		fs.StringVar(&timeStr, "t", "", "Time to set in ISO 8601 format (default: current time)")
		fs.BoolVar(&ampm, "p", false, "Use the AM/PM display (default: 24-hour)")
	case "sync":
		fs.StringVar(&opts.schedule, "schedule", "", "Cron expression or duration")
		fs.BoolVar(&ampm, "p", false, "Use the AM/PM display (default: 24-hour)")
		fs.BoolVar(&opts.once, "once", false, "Run a single pass and exit")
	default:
		return "", opts, fmt.Errorf("unknown command %q", cmd)
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", opts, errShowUsage
		}
		return "", opts, err
	}
	if fs.NArg() > 0 {
		return "", opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if scanSeconds < 0 {
		return "", opts, fmt.Errorf("scan duration must be positive: %g", scanSeconds)
	}
	opts.scanDuration = time.Duration(scanSeconds * float64(time.Second))

	if (cmd == "get" || cmd == "set") && opts.address == "" {
		return "", opts, fmt.Errorf("%s: -a is required", cmd)
	}
	if timeStr != "" {
		t, err := parseTime(timeStr, time.Local)
		if err != nil {
			return "", opts, err
		}
		opts.timestamp = &t
	}
	if ampm {
		opts.mode = wire.Mode12Hour
	}

	return cmd, opts, nil
}
