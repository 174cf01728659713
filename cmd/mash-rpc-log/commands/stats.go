package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Subscriptions     map[string]*SubscriptionStats
	Topics            map[string]*TopicStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SubscriptionStats holds the lifecycle of one subscription.
type SubscriptionStats struct {
	Method     string
	QosKind    string
	FirstSeen  time.Time
	LastSeen   time.Time
	Alerts     int
	FinalState string
}

// TopicStats holds publish totals for one topic.
type TopicStats struct {
	Messages int
	Bytes    uint64
}

// CollectStats reads path and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Subscriptions:     make(map[string]*SubscriptionStats),
		Topics:            make(map[string]*TopicStats),
	}

	err = reader.Each(func(event log.Event) error {
		stats.add(event)
		return nil
	})
	return stats, err
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if p := event.Publish; p != nil {
		ts, ok := s.Topics[event.Topic]
		if !ok {
			ts = &TopicStats{}
			s.Topics[event.Topic] = ts
		}
		ts.Messages++
		ts.Bytes += p.Size
	}

	if sub := event.Subscription; sub != nil {
		ss, ok := s.Subscriptions[event.SubscriptionID]
		if !ok {
			ss = &SubscriptionStats{
				Method:    sub.MethodName,
				QosKind:   sub.QosKind,
				FirstSeen: event.Timestamp,
			}
			s.Subscriptions[event.SubscriptionID] = ss
		}
		ss.LastSeen = event.Timestamp
		switch sub.Action {
		case log.SubscriptionAlert:
			ss.Alerts++
		case log.SubscriptionRegistered:
			ss.FinalState = "ACTIVE"
		case log.SubscriptionExpired, log.SubscriptionUnregistered:
			ss.FinalState = sub.Action.String()
		}
	}

	if event.Error != nil {
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerMessaging, log.LayerSubscription} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategorySubscription, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut, log.DirectionLocal} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.Topics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Topics: %d\n", len(stats.Topics))
		topics := make([]string, 0, len(stats.Topics))
		for t := range stats.Topics {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		for _, t := range topics {
			ts := stats.Topics[t]
			fmt.Fprintf(w, "  %s: %d messages, %d bytes\n", t, ts.Messages, ts.Bytes)
		}
	}

	if len(stats.Subscriptions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Subscriptions: %d\n", len(stats.Subscriptions))
		ids := make([]string, 0, len(stats.Subscriptions))
		for id := range stats.Subscriptions {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return stats.Subscriptions[ids[i]].FirstSeen.Before(stats.Subscriptions[ids[j]].FirstSeen)
		})
		for _, id := range ids {
			ss := stats.Subscriptions[id]
			shortID := id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			fmt.Fprintf(w, "  [%s] %s %s, %d alerts, %s\n", shortID, ss.Method, ss.QosKind, ss.Alerts, ss.FinalState)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
