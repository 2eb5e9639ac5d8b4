// Command bluetooth-clocks finds Bluetooth Low Energy clocks and reads or
// sets their time.
//
// Usage:
//
//	bluetooth-clocks [-version] <command> [flags]
//
// Commands:
//
//	discover    Scan for supported clocks
//	get         Read the time of a clock
//	set         Set the time of a clock
//	list        List the supported device families
//	sync        Periodically set the time of every clock found
//	shell       Start an interactive prompt
//
// Flags (all commands):
//
//	-config string        Configuration file path
//	-log-level string     Log level: debug, info, warn, error (default from config)
//	-protocol-log string  Capture GATT traffic to this file (view with clocks-log)
//	-s float              Scan duration in seconds (default from config, 5)
//	-strict               Reject advertisements matching more than one family
//
// Flags (get, set):
//
//	-a string   Bluetooth address, e.g. 12:34:56:78:9A:BC (required)
//
// Flags (set):
//
//	-t string   Time to set in ISO 8601 format, e.g. 2023-01-10T16:20 (default: now)
//	-p          Use the AM/PM display (default: 24-hour)
//
// Flags (sync):
//
//	-schedule string  Cron expression or duration (default from config, @daily)
//	-p                Use the AM/PM display
//	-once             Run a single pass and exit
//
// Examples:
//
//	# Find clocks nearby
//	bluetooth-clocks discover -s 10
//
//	# Read the time of a Xiaomi LYWSD02
//	bluetooth-clocks get -a E7:2E:00:B1:38:96
//
//	# Set a ThermoPro TP393 to a fixed time in 12-hour mode
//	bluetooth-clocks set -a 10:76:36:14:2A:3D -t 2023-01-10T16:20 -p
//
//	# Sync every clock each night at 3 AM, capturing the traffic
//	bluetooth-clocks sync -schedule "0 3 * * *" -protocol-log sync.clog
//
// Interactive Commands:
//
//	discover [seconds]           - Scan for clocks
//	clocks                       - Show clocks found so far
//	get <address>                - Read the time
//	set <address> [time] [ampm]  - Set the time
//	list                         - List supported families
//	quit                         - Exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/version"
)

const programName = "bluetooth-clocks"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes one command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, opts, err := parseArgs(args, stderr)
	switch {
	case errors.Is(err, errShowVersion):
		fmt.Fprintln(stdout, version.String(programName))
		return 0
	case errors.Is(err, errShowUsage):
		printUsage(stderr)
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		printUsage(stderr)
		return 2
	}

	a, err := newApp(cmd, opts, stdout)
	if err != nil {
		log.Printf("Startup failed: %v", err)
		return 1
	}
	defer a.Close()

	switch cmd {
	case "discover":
		err = a.discover(ctx)
	case "get":
		err = a.get(ctx, opts.address)
	case "set":
		err = a.set(ctx, opts.address, opts.timestamp, opts.mode)
	case "list":
		a.list()
	case "sync":
		err = a.sync(ctx, opts)
	case "shell":
		err = a.shell(ctx)
	}
	if err != nil {
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: %s [-version] <command> [flags]

Commands:
  discover    Scan for supported clocks
  get         Read the time of a clock (-a ADDRESS)
  set         Set the time of a clock (-a ADDRESS [-t TIME] [-p])
  list        List the supported device families
  sync        Periodically set the time of every clock found
  shell       Start an interactive prompt

Run '%s <command> -h' for the flags of a command.
`, programName, programName)
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}
