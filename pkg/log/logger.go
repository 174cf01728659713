package log

// Logger receives protocol events from senders, routers and subscription
// managers. Log is called on the caller's goroutine, often while a delivery
// or alert is in progress, so implementations must be safe for concurrent
// use and must not block.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(Event)

// Log calls f.
func (f LoggerFunc) Log(event Event) { f(event) }

// NoopLogger drops every event.
type NoopLogger struct{}

// Log does nothing.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger if l is nil. Components call it once at
// construction so they never check for nil on the hot path.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
)
