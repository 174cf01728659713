package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// FileLogger appends events to a CBOR stream file that Reader can replay.
// Each event is encoded first and written with a single call, so a crash
// leaves at most one partial record at the end of the file.
type FileLogger struct {
	path string

	mu     sync.Mutex
	file   *os.File
	closed bool

	written atomic.Uint64
	failed  atomic.Uint64
}

// NewFileLogger opens path for appending. Missing parent directories are
// created.
func NewFileLogger(path string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create protocol log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{path: path, file: f}, nil
}

// Log appends event. Failures are counted instead of returned so that a full
// disk never blocks delivery.
func (l *FileLogger) Log(event Event) {
	data, err := EncodeEvent(event)
	if err != nil {
		l.failed.Add(1)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if _, err := l.file.Write(data); err != nil {
		l.failed.Add(1)
		return
	}
	l.written.Add(1)
}

// Path returns the file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Written returns the number of events appended.
func (l *FileLogger) Written() uint64 {
	return l.written.Load()
}

// Failed returns the number of events that could not be appended.
func (l *FileLogger) Failed() uint64 {
	return l.failed.Load()
}

// Close flushes the file to disk and closes it. Later Log calls are dropped.
// Close is idempotent.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	syncErr := l.file.Sync()
	if err := l.file.Close(); err != nil {
		return err
	}
	return syncErr
}

var _ Logger = (*FileLogger)(nil)
