// Package commands implements the mash-rpc-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/mash-rpc/pkg/log"
)

// timeFormat renders event timestamps in UTC with microseconds.
const timeFormat = "2006-01-02T15:04:05.000000Z"

// eventLabel names the event's payload type.
func eventLabel(event log.Event) string {
	switch {
	case event.Publish != nil:
		return "Publish"
	case event.Subscription != nil:
		return event.Subscription.Action.String()
	case event.Error != nil:
		return "Error"
	}
	return "Unknown"
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeFormat)
	fmt.Fprintf(w, "%s [%s] %-5s %s %s\n", ts, event.ClientID,
		event.Direction.String(), event.Layer.String(), eventLabel(event))

	if event.Topic != "" {
		fmt.Fprintf(w, "  Topic: %s\n", event.Topic)
	}

	switch {
	case event.Publish != nil:
		formatPublishDetails(w, event.Publish)
	case event.Subscription != nil:
		formatSubscriptionDetails(w, event.SubscriptionID, event.Subscription)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func formatPublishDetails(w io.Writer, p *log.PublishEvent) {
	fmt.Fprintf(w, "  MessageID: %s (%s)\n", p.MessageID, p.MessageType)
	fmt.Fprintf(w, "  QoS: %d  TTL: %ds\n", p.QosLevel, p.TTLSeconds)
	fmt.Fprintf(w, "  Size: %d bytes (payload %d, headers %d)\n", p.Size, p.PayloadSize, p.HeaderCount)
}

func formatSubscriptionDetails(w io.Writer, id string, s *log.SubscriptionEvent) {
	fmt.Fprintf(w, "  SubscriptionID: %s\n", id)
	fmt.Fprintf(w, "  Method: %s  QoS: %s\n", s.MethodName, s.QosKind)
	if s.AlertIntervalMs > 0 {
		fmt.Fprintf(w, "  AlertInterval: %dms\n", s.AlertIntervalMs)
	}
	if s.AlertCount > 0 {
		fmt.Fprintf(w, "  Alerts: %d\n", s.AlertCount)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseLayerFlag parses a layer string from a command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "messaging":
		return log.LayerMessaging, nil
	case "subscription":
		return log.LayerSubscription, nil
	}
	return 0, fmt.Errorf("invalid layer: %s (must be transport, messaging, or subscription)", s)
}

// ParseDirectionFlag parses a direction string from a command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	case "local":
		return log.DirectionLocal, nil
	}
	return 0, fmt.Errorf("invalid direction: %s (must be in, out, or local)", s)
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "subscription":
		return log.CategorySubscription, nil
	case "error":
		return log.CategoryError, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be message, subscription, or error)", s)
}

// ParseActionFlag parses a subscription lifecycle action (case-insensitive).
func ParseActionFlag(s string) (log.SubscriptionAction, error) {
	for _, a := range []log.SubscriptionAction{
		log.SubscriptionRegistered, log.SubscriptionAlert,
		log.SubscriptionExpired, log.SubscriptionUnregistered,
	} {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid action: %s (must be registered, alert, expired, or unregistered)", s)
}

// RunView prints every event in path matching filter to output.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	return reader.Each(func(event log.Event) error {
		formatEvent(output, event)
		return nil
	})
}
