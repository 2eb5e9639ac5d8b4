package log

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see GATT traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Address != "" {
		attrs = append(attrs, slog.String("address", event.Address))
	}
	if event.Family != "" {
		attrs = append(attrs, slog.String("family", event.Family))
	}

	switch {
	case event.GATT != nil:
		attrs = append(attrs,
			slog.String("op", event.GATT.Op.String()),
			slog.String("characteristic", event.GATT.CharacteristicUUID.String()),
			slog.String("data", hex.EncodeToString(event.GATT.Data)),
		)
		if event.GATT.WithResponse {
			attrs = append(attrs, slog.Bool("with_response", true))
		}
	case event.Codec != nil:
		attrs = append(attrs,
			slog.String("codec", event.Codec.Codec),
			slog.String("clock_time", event.Codec.Time.Format(time.RFC3339Nano)),
			slog.String("data", hex.EncodeToString(event.Codec.Data)),
		)
		if event.Codec.DisplayMode != "" {
			attrs = append(attrs, slog.String("display_mode", event.Codec.DisplayMode))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
