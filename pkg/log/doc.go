// Package log provides structured protocol event logging for mash-rpc.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events in the subscription and messaging core. It is
// separate from operational logging (slog): protocol capture provides a
// machine-readable trace of what was published and how subscriptions moved
// through their lifecycle.
//
// # Basic Usage
//
// Components accept a Logger in their configuration:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/mash-rpc/core.mlog")
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
//   - Transport: publishes handed to the broker connection (PublishEvent)
//   - Messaging: send failures before a publish is attempted (ErrorEventData)
//   - Subscription: registration, alerts, expiry, removal (SubscriptionEvent)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using
// the .mlog extension. Reader streams them back with optional filtering.
package log
