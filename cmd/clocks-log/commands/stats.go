package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Clocks            map[string]*ClockStats
	Sessions          map[string]bool
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ClockStats holds statistics for a single clock.
type ClockStats struct {
	Family    string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Sessions  map[string]bool
	Reads     int
	Writes    int
	Errors    int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Clocks:            make(map[string]*ClockStats),
		Sessions:          make(map[string]bool),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++
		if event.SessionID != "" {
			stats.Sessions[event.SessionID] = true
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
		}

		if event.Address == "" {
			continue
		}
		cs, ok := stats.Clocks[event.Address]
		if !ok {
			cs = &ClockStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Sessions:  make(map[string]bool),
			}
			stats.Clocks[event.Address] = cs
		}
		cs.Events++
		if event.Timestamp.After(cs.LastSeen) {
			cs.LastSeen = event.Timestamp
		}
		if cs.Family == "" {
			cs.Family = event.Family
		}
		if event.SessionID != "" {
			cs.Sessions[event.SessionID] = true
		}
		if event.GATT != nil {
			switch event.GATT.Op {
			case log.GATTRead, log.GATTNotify:
				cs.Reads++
			case log.GATTWrite:
				cs.Writes++
			}
		}
		if event.Error != nil {
			cs.Errors++
		}
	}

	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Bluetooth Clocks Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerCodec, log.LayerSession} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryGATT, log.CategoryCodec, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Clocks: %d\n", len(stats.Clocks))
	if len(stats.Clocks) > 0 {
		addrs := make([]string, 0, len(stats.Clocks))
		for a := range stats.Clocks {
			addrs = append(addrs, a)
		}
		sort.Slice(addrs, func(i, j int) bool {
			return stats.Clocks[addrs[i]].FirstSeen.Before(stats.Clocks[addrs[j]].FirstSeen)
		})

		fmt.Fprintln(w)
		for _, a := range addrs {
			cs := stats.Clocks[a]
			fmt.Fprintf(w, "  [%s] %d events in %d sessions\n", a, cs.Events, len(cs.Sessions))
			if cs.Family != "" {
				fmt.Fprintf(w, "           Family: %s\n", cs.Family)
			}
			fmt.Fprintf(w, "           Reads: %d  Writes: %d\n", cs.Reads, cs.Writes)
			if cs.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", cs.Errors)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
