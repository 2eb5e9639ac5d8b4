// Command clocks-log views and analyzes bluetooth-clocks protocol captures.
//
// Capture files are written by bluetooth-clocks with the -protocol-log flag.
//
// Usage:
//
//	clocks-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View capture in human-readable format
//	export   Export capture to JSONL or CSV
//	filter   Filter capture and write to new file
//	stats    Show statistics per clock
//
// Examples:
//
//	# View all events
//	clocks-log view sync.clog
//
//	# View only GATT traffic of one clock
//	clocks-log view -layer transport -address E7:2E:00:B1:38:96 sync.clog
//
//	# Export to CSV
//	clocks-log export -format csv -o sync.csv sync.clog
//
//	# Keep only failed sessions' errors
//	clocks-log filter -category error -o errors.clog sync.clog
//
//	# Show statistics
//	clocks-log stats sync.clog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/koenvervloesem/bluetooth-clocks/cmd/clocks-log/commands"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/version"
)

const usage = `clocks-log - Bluetooth Clocks Protocol Capture Analyzer

Usage:
  clocks-log <command> [flags] <file.clog>

Commands:
  view     View capture in human-readable format
  export   Export capture to JSONL or CSV
  filter   Filter capture and write to new file
  stats    Show statistics per clock
  version  Print the version

Use "clocks-log <command> -help" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd := args[0]
	args = args[1:]

	var err error
	switch cmd {
	case "view":
		err = runView(args, stdout, stderr)
	case "export":
		err = runExport(args, stdout, stderr)
	case "filter":
		err = runFilter(args, stdout, stderr)
	case "stats":
		err = runStats(args, stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintln(stdout, version.String("clocks-log"))
		return 0
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newFlagSet creates a flag set that prints the command usage to stderr.
func newFlagSet(name, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "clocks-log %s - %s\n\nUsage:\n  clocks-log %s [flags] <file.clog>\n\nFlags:\n",
			name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// inputPath returns the single positional argument.
func inputPath(fs *flag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("view", "View capture in human-readable format", stderr)
	address := fs.String("address", "", "Filter by clock address")
	layer := fs.String("layer", "", "Filter by layer (transport, codec, session)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (gatt, codec, state, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs)
	if err != nil {
		return err
	}

	filter := commands.ViewFilter{Address: *address}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			return err
		}
		filter.Layer = &l
	}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	return commands.RunView(path, filter, stdout)
}

func runExport(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", "Export capture to JSONL or CSV", stderr)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs)
	if err != nil {
		return err
	}

	return commands.RunExport(path, *format, *output, stdout)
}

func runFilter(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("filter", "Filter capture and write to new file", stderr)
	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Address, "address", "", "Filter by clock address")
	fs.StringVar(&opts.Family, "family", "", "Filter by device family")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, codec, session)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (gatt, codec, state, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}

	_, err = commands.RunFilter(path, opts, stdout)
	return err
}

func runStats(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats", "Show statistics per clock", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, stdout)
}
