package log

import (
	"context"
	"log/slog"
)

// SlogAdapter renders protocol events as slog records. Publishes and
// lifecycle changes are logged at Debug, missed-publication alerts and
// expiries at Info, and errors at Warn, so a console at Info shows what
// needs attention.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log implements Logger.
func (a *SlogAdapter) Log(event Event) {
	ctx := context.Background()
	level, msg := eventLevel(event)
	if !a.logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, 10)
	attrs = append(attrs,
		slog.String("dir", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
	)
	attrs = appendNonEmpty(attrs, "client_id", event.ClientID)
	attrs = appendNonEmpty(attrs, "topic", event.Topic)
	attrs = appendNonEmpty(attrs, "subscription_id", event.SubscriptionID)

	if p := event.Publish; p != nil {
		attrs = appendNonEmpty(attrs, "msg_id", p.MessageID)
		attrs = appendNonEmpty(attrs, "msg_type", p.MessageType)
		attrs = append(attrs,
			slog.Int("qos", p.QosLevel),
			slog.Uint64("ttl_sec", uint64(p.TTLSeconds)),
			slog.Uint64("size", p.Size),
		)
	}
	if s := event.Subscription; s != nil {
		attrs = append(attrs, slog.String("action", s.Action.String()))
		attrs = appendNonEmpty(attrs, "method", s.MethodName)
		attrs = appendNonEmpty(attrs, "qos_kind", s.QosKind)
		if s.AlertCount > 0 {
			attrs = append(attrs, slog.Uint64("alerts", s.AlertCount))
		}
	}
	if e := event.Error; e != nil {
		attrs = append(attrs, slog.String("error_msg", e.Message))
		attrs = appendNonEmpty(attrs, "error_context", e.Context)
		if e.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *e.Code))
		}
	}

	a.logger.LogAttrs(ctx, level, msg, attrs...)
}

func eventLevel(event Event) (slog.Level, string) {
	switch {
	case event.Error != nil:
		return slog.LevelWarn, "protocol error"
	case event.Subscription != nil:
		switch event.Subscription.Action {
		case SubscriptionAlert, SubscriptionExpired:
			return slog.LevelInfo, "subscription " + event.Subscription.Action.String()
		}
		return slog.LevelDebug, "subscription " + event.Subscription.Action.String()
	case event.Publish != nil:
		return slog.LevelDebug, "publish"
	}
	return slog.LevelDebug, "protocol"
}

func appendNonEmpty(attrs []slog.Attr, key, value string) []slog.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, slog.String(key, value))
}

var _ Logger = (*SlogAdapter)(nil)
