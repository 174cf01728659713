package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrTruncated is returned when the log ends in the middle of a record, as
// happens when the writing process is killed.
var ErrTruncated = errors.New("protocol log truncated")

// Filter selects events. Zero fields match everything.
type Filter struct {
	ClientID  string
	Direction *Direction
	Layer     *Layer
	Category  *Category

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time

	SubscriptionID string
	Topic          string

	// MessageID matches publish events of one message.
	MessageID string

	// Action matches subscription lifecycle events of one kind.
	Action *SubscriptionAction
}

// Match reports whether event satisfies every set criterion.
func (f *Filter) Match(event Event) bool {
	switch {
	case f.ClientID != "" && event.ClientID != f.ClientID,
		f.Direction != nil && event.Direction != *f.Direction,
		f.Layer != nil && event.Layer != *f.Layer,
		f.Category != nil && event.Category != *f.Category,
		f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd),
		f.SubscriptionID != "" && event.SubscriptionID != f.SubscriptionID,
		f.Topic != "" && event.Topic != f.Topic:
		return false
	}
	if f.MessageID != "" && (event.Publish == nil || event.Publish.MessageID != f.MessageID) {
		return false
	}
	if f.Action != nil && (event.Subscription == nil || event.Subscription.Action != *f.Action) {
		return false
	}
	return true
}

// Reader streams events from a file written by FileLogger.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
	read    int
}

// NewReader opens path for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens path for reading the events that match filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, decoder: NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the log.
// A partial trailing record yields ErrTruncated.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.decoder.Decode(&event)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return Event{}, io.EOF
		case errors.Is(err, io.ErrUnexpectedEOF):
			return Event{}, fmt.Errorf("%w after %d events", ErrTruncated, r.read)
		default:
			return Event{}, fmt.Errorf("event %d: %w", r.read+1, err)
		}
		r.read++

		if r.filter.Match(event) {
			return event, nil
		}
	}
}

// Each calls fn for every remaining matching event until the log ends or fn
// returns an error.
func (r *Reader) Each(fn func(Event) error) error {
	for {
		event, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

// Read returns the number of records decoded so far, matching or not.
func (r *Reader) Read() int {
	return r.read
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
