package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-protocol/mash-rpc/pkg/log"
)

// csvColumns is the header row of the CSV export. Columns that do not apply
// to an event are left empty.
var csvColumns = []string{
	"timestamp", "client_id", "direction", "layer", "category", "type",
	"topic", "subscription_id", "message_id", "qos", "ttl_s", "size",
	"method", "alerts", "error",
}

// RunExport writes the events of path to output (stdout when empty) as JSON
// lines or CSV.
func RunExport(path, format, output string) error {
	var write func(io.Writer, *log.Reader) error
	switch format {
	case "jsonl":
		write = writeJSONL
	case "csv":
		write = writeCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if output == "" {
		return write(os.Stdout, reader)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, reader); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSONL(w io.Writer, reader *log.Reader) error {
	enc := json.NewEncoder(w)
	return reader.Each(func(event log.Event) error {
		return enc.Encode(event)
	})
}

func writeCSV(w io.Writer, reader *log.Reader) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	if err := reader.Each(func(event log.Event) error {
		return cw.Write(csvRow(event))
	}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(event log.Event) []string {
	row := make([]string, len(csvColumns))
	row[0] = event.Timestamp.UTC().Format(timeFormat)
	row[1] = event.ClientID
	row[2] = event.Direction.String()
	row[3] = event.Layer.String()
	row[4] = event.Category.String()
	row[5] = eventLabel(event)
	row[6] = event.Topic
	row[7] = event.SubscriptionID
	if p := event.Publish; p != nil {
		row[8] = p.MessageID
		row[9] = strconv.Itoa(p.QosLevel)
		row[10] = strconv.FormatUint(uint64(p.TTLSeconds), 10)
		row[11] = strconv.FormatUint(p.Size, 10)
	}
	if s := event.Subscription; s != nil {
		row[12] = s.MethodName
		row[13] = strconv.FormatUint(s.AlertCount, 10)
	}
	if e := event.Error; e != nil {
		row[14] = e.Message
	}
	return row
}
