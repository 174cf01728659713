package commands

import (
	"fmt"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/log"
)

// FilterOptions are the filter command's flag values. Empty strings match
// everything.
type FilterOptions struct {
	Output string

	ClientID       string
	SubscriptionID string
	MessageID      string
	Topic          string

	// TimeStart and TimeEnd are RFC 3339 timestamps.
	TimeStart string
	TimeEnd   string

	Layer     string
	Direction string
	Category  string
	Action    string
}

// Filter converts the flag values into a log.Filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	f := log.Filter{
		ClientID:       o.ClientID,
		SubscriptionID: o.SubscriptionID,
		MessageID:      o.MessageID,
		Topic:          o.Topic,
	}

	var err error
	if f.TimeStart, err = parseTimeFlag("time-start", o.TimeStart); err != nil {
		return f, err
	}
	if f.TimeEnd, err = parseTimeFlag("time-end", o.TimeEnd); err != nil {
		return f, err
	}
	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return f, err
		}
		f.Layer = &l
	}
	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return f, err
		}
		f.Direction = &d
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return f, err
		}
		f.Category = &c
	}
	if o.Action != "" {
		a, err := ParseActionFlag(o.Action)
		if err != nil {
			return f, err
		}
		f.Action = &a
	}
	return f, nil
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &t, nil
}

// RunFilter copies the events of path matching opts into a new log at
// opts.Output and returns how many were copied.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := opts.Filter()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	n := 0
	err = reader.Each(func(event log.Event) error {
		out.Log(event)
		n++
		return nil
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && out.Failed() > 0 {
		err = fmt.Errorf("%d events could not be written", out.Failed())
	}
	return n, err
}
