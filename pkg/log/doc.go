// Package log provides structured protocol logging for Bluetooth clock
// sessions.
//
// This package defines the Logger interface and Event types for capturing
// GATT traffic, codec results, session state changes and errors. It is
// separate from operational logging (slog): protocol capture provides a
// complete machine-readable trace of what was exchanged with a clock.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("clocks.clog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Transport: characteristic reads, writes and notifications (GATTEvent)
//   - Codec: timestamps and their encoding (CodecEvent)
//   - Session: state changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events, conventionally with a
// .clog extension. The clocks-log tool views, summarizes and exports them.
package log
