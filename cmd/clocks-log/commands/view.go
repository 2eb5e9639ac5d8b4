// Package commands implements the clocks-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
)

// timestampLayout is the UTC format used by view and export.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Address   string
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Address:   f.Address,
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
	}
}

// eventType returns the label of the event payload.
func eventType(event log.Event) string {
	switch {
	case event.GATT != nil:
		return event.GATT.Op.String()
	case event.Codec != nil:
		if event.Direction == log.DirectionOut {
			return "Encode"
		}
		return "Decode"
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] address DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [%s] %s %-3s %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Address,
		event.Direction.String(), event.Layer.String(), eventType(event))

	switch {
	case event.GATT != nil:
		formatGATTDetails(w, event.GATT)
	case event.Codec != nil:
		formatCodecDetails(w, event.Codec)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}
	if event.Family != "" {
		fmt.Fprintf(w, "  Family: %s\n", event.Family)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatGATTDetails(w io.Writer, g *log.GATTEvent) {
	fmt.Fprintf(w, "  Service: %s\n", g.ServiceUUID)
	fmt.Fprintf(w, "  Characteristic: %s\n", g.CharacteristicUUID)
	if len(g.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s (%d bytes)\n", hexBytes(g.Data), len(g.Data))
	}
	if g.Op == log.GATTWrite {
		if g.WithResponse {
			fmt.Fprintln(w, "  Response: yes")
		} else {
			fmt.Fprintln(w, "  Response: no")
		}
	}
}

func formatCodecDetails(w io.Writer, c *log.CodecEvent) {
	fmt.Fprintf(w, "  Codec: %s\n", c.Codec)
	fmt.Fprintf(w, "  Time: %s\n", c.Time.Format(time.RFC3339))
	if len(c.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hexBytes(c.Data))
	}
	if c.DisplayMode != "" {
		fmt.Fprintf(w, "  Display: %s\n", c.DisplayMode)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// hexBytes formats data as space separated upper-case hex, e.g. "AC AE B9 63".
func hexBytes(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport", "gatt":
		return log.LayerTransport, nil
	case "codec":
		return log.LayerCodec, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, codec, or session)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "gatt":
		return log.CategoryGATT, nil
	case "codec":
		return log.CategoryCodec, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be gatt, codec, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
