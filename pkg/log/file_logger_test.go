package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
	if logger.Path() != path {
		t.Errorf("Path() = %q, want %q", logger.Path(), path)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")

	for _, id := range []string{"first", "second"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), ClientID: id, Category: CategoryMessage})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	for _, want := range []string{"first", "second"} {
		event, err := reader.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if event.ClientID != want {
			t.Errorf("ClientID = %q, want %q", event.ClientID, want)
		}
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const goroutines, perGoroutine = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				logger.Log(Event{Timestamp: time.Now(), Layer: LayerSubscription, Category: CategorySubscription})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	if err := reader.Each(func(Event) error { count++; return nil }); err != nil {
		t.Fatalf("Each failed: %v", err)
	}
	if count != goroutines*perGoroutine {
		t.Errorf("read %d events, want %d", count, goroutines*perGoroutine)
	}
	if logger.Failed() != 0 {
		t.Errorf("Failed() = %d, want 0", logger.Failed())
	}
	if logger.Written() != goroutines*perGoroutine {
		t.Errorf("Written() = %d, want %d", logger.Written(), goroutines*perGoroutine)
	}
}

func TestFileLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is ignored.
	logger.Log(Event{Timestamp: time.Now()})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d after logging to a closed logger, want 0", info.Size())
	}
}

func TestFileLoggerParentIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLogger(filepath.Join(blocker, "test.mlog")); err == nil {
		t.Error("expected error when the parent path is a regular file")
	}
}

func TestFileLoggerCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client", "rpc.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), SubscriptionID: "sub-1"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	event, err := reader.Next()
	if err != nil || event.SubscriptionID != "sub-1" {
		t.Errorf("got %+v, %v", event, err)
	}
}
