package commands

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp:      ts,
			ClientID:       "car-1",
			Direction:      log.DirectionLocal,
			Layer:          log.LayerSubscription,
			Category:       log.CategorySubscription,
			SubscriptionID: "sub-0001-abcd",
			Subscription: &log.SubscriptionEvent{
				Action:          log.SubscriptionRegistered,
				MethodName:      "location",
				QosKind:         "PERIODIC",
				AlertIntervalMs: 200,
			},
		},
		{
			Timestamp: ts.Add(10 * time.Millisecond),
			ClientID:  "car-1",
			Direction: log.DirectionOut,
			Layer:     log.LayerTransport,
			Category:  log.CategoryMessage,
			Topic:     "provider/low",
			Publish: &log.PublishEvent{
				MessageID:   "msg-1",
				MessageType: "srq",
				QosLevel:    1,
				TTLSeconds:  60,
				Size:        120,
				PayloadSize: 80,
			},
		},
		{
			Timestamp:      ts.Add(200 * time.Millisecond),
			ClientID:       "car-1",
			Direction:      log.DirectionLocal,
			Layer:          log.LayerSubscription,
			Category:       log.CategorySubscription,
			SubscriptionID: "sub-0001-abcd",
			Subscription: &log.SubscriptionEvent{
				Action:     log.SubscriptionAlert,
				MethodName: "location",
				QosKind:    "PERIODIC",
				AlertCount: 1,
			},
		},
		{
			Timestamp:      ts.Add(1100 * time.Millisecond),
			ClientID:       "car-1",
			Direction:      log.DirectionLocal,
			Layer:          log.LayerSubscription,
			Category:       log.CategorySubscription,
			SubscriptionID: "sub-0001-abcd",
			Subscription: &log.SubscriptionEvent{
				Action:     log.SubscriptionExpired,
				MethodName: "location",
				QosKind:    "PERIODIC",
				AlertCount: 1,
			},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			ClientID:  "car-1",
			Direction: log.DirectionOut,
			Layer:     log.LayerTransport,
			Category:  log.CategoryError,
			Topic:     "provider/low",
			Error: &log.ErrorEventData{
				Layer:   log.LayerTransport,
				Message: "mqtt: message too large",
				Context: "msg-2",
			},
		},
	}
}

func TestRunView(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z [car-1]",
		"SUBSCRIPTION REGISTERED",
		"TRANSPORT Publish",
		"Topic: provider/low",
		"MessageID: msg-1 (srq)",
		"QoS: 1  TTL: 60s",
		"AlertInterval: 200ms",
		"EXPIRED",
		"Message: mqtt: message too large",
		"Context: msg-2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunViewFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	layer := log.LayerTransport
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Contains(buf.String(), "REGISTERED") {
		t.Error("subscription events should be filtered out")
	}
	if !strings.Contains(buf.String(), "Publish") {
		t.Error("expected publish event")
	}

	buf.Reset()
	if err := RunView(path, log.Filter{SubscriptionID: "sub-0001-abcd"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if got := strings.Count(buf.String(), "[car-1]"); got != 3 {
		t.Errorf("got %d events for subscription, want 3", got)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView(filepath.Join(t.TempDir(), "missing.mlog"), log.Filter{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLayerFlag("Subscription"); err != nil || l != log.LayerSubscription {
		t.Errorf("ParseLayerFlag = %v, %v", l, err)
	}
	if _, err := ParseLayerFlag("wire"); err == nil {
		t.Error("expected error for unknown layer")
	}
	if d, err := ParseDirectionFlag("LOCAL"); err != nil || d != log.DirectionLocal {
		t.Errorf("ParseDirectionFlag = %v, %v", d, err)
	}
	if _, err := ParseDirectionFlag("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if c, err := ParseCategoryFlag("error"); err != nil || c != log.CategoryError {
		t.Errorf("ParseCategoryFlag = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("control"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if stats.EventsByLayer[log.LayerSubscription] != 3 {
		t.Errorf("subscription layer events = %d, want 3", stats.EventsByLayer[log.LayerSubscription])
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}

	sub := stats.Subscriptions["sub-0001-abcd"]
	if sub == nil {
		t.Fatal("missing subscription stats")
	}
	if sub.Alerts != 1 || sub.FinalState != "EXPIRED" || sub.Method != "location" {
		t.Errorf("subscription stats = %+v", sub)
	}

	topic := stats.Topics["provider/low"]
	if topic == nil || topic.Messages != 1 || topic.Bytes != 120 {
		t.Errorf("topic stats = %+v", topic)
	}
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Total Events: 5",
		"SUBSCRIPTION:",
		"provider/low: 1 messages, 120 bytes",
		"[sub-0001] location PERIODIC, 1 alerts, EXPIRED",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event log.Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line %d is not a JSON event: %v", lines, err)
		}
		lines++
	}
	if lines != 5 {
		t.Errorf("got %d lines, want 5", lines)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d records, want 6", len(records))
	}
	if records[2][5] != "Publish" || records[2][8] != "msg-1" {
		t.Errorf("publish row = %v", records[2])
	}
	if records[2][9] != "1" || records[2][10] != "60" || records[2][11] != "120" {
		t.Errorf("publish qos/ttl/size = %v", records[2][9:12])
	}
	if records[3][12] != "location" || records[3][13] != "1" {
		t.Errorf("alert row = %v", records[3])
	}
	if records[5][14] != "mqtt: message too large" {
		t.Errorf("error row = %v", records[5])
	}

	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.mlog")

	n, err := RunFilter(path, FilterOptions{Output: out, Category: "subscription"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 3 {
		t.Errorf("filtered %d events, want 3", n)
	}

	stats, err := CollectStats(out)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", stats.TotalEvents)
	}

	if _, err := RunFilter(path, FilterOptions{Output: out, Layer: "wire"}); err == nil {
		t.Error("expected error for invalid layer")
	}
	if _, err := RunFilter(path, FilterOptions{Output: out, TimeStart: "yesterday"}); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestRunFilterByActionAndMessage(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	dir := t.TempDir()

	n, err := RunFilter(path, FilterOptions{Output: filepath.Join(dir, "alerts.mlog"), Action: "alert"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("filtered %d alert events, want 1", n)
	}

	n, err = RunFilter(path, FilterOptions{Output: filepath.Join(dir, "msg.mlog"), MessageID: "msg-1"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("filtered %d events for msg-1, want 1", n)
	}

	if _, err := RunFilter(path, FilterOptions{Output: filepath.Join(dir, "x.mlog"), Action: "renewed"}); err == nil {
		t.Error("expected error for invalid action")
	}
}

func TestParseActionFlag(t *testing.T) {
	for in, want := range map[string]log.SubscriptionAction{
		"registered":   log.SubscriptionRegistered,
		"ALERT":        log.SubscriptionAlert,
		"Expired":      log.SubscriptionExpired,
		"unregistered": log.SubscriptionUnregistered,
	} {
		got, err := ParseActionFlag(in)
		if err != nil || got != want {
			t.Errorf("ParseActionFlag(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
