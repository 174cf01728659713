// Command mash-rpc-log views and analyzes protocol log files written by
// mash-rpc with the protocol_log setting.
//
// Usage:
//
//	mash-rpc-log <command> [flags] <file.mlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON lines or CSV
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View only subscription lifecycle events
//	mash-rpc-log view --layer subscription client.mlog
//
//	# Follow one subscription
//	mash-rpc-log view --subscription 1b4e28ba-2fa1-11d2-883f-0016d3cca427 client.mlog
//
//	# Missed-publication alerts only
//	mash-rpc-log view --action alert client.mlog
//
//	# Export to CSV
//	mash-rpc-log export --format csv -o client.csv client.mlog
//
//	# Keep only errors
//	mash-rpc-log filter --category error -o errors.mlog client.mlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/mash-rpc/cmd/mash-rpc-log/commands"
)

const usage = `mash-rpc-log - protocol log analyzer

Usage:
  mash-rpc-log <command> [flags] <file.mlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines or CSV
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "mash-rpc-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// pathArg returns the single positional log file argument.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "mash-rpc-log %s - %s\n\nUsage:\n  mash-rpc-log %s [flags] <file.mlog>\n\nFlags:\n",
			name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

func runView(args []string) {
	fs := newFlagSet("view", "View log file in human-readable format")
	layer := fs.String("layer", "", "Filter by layer (transport, messaging, subscription)")
	direction := fs.String("direction", "", "Filter by direction (in, out, local)")
	category := fs.String("category", "", "Filter by category (message, subscription, error)")
	action := fs.String("action", "", "Filter by subscription action (registered, alert, expired, unregistered)")
	subscriptionID := fs.String("subscription", "", "Filter by subscription ID")
	messageID := fs.String("message", "", "Filter by message ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter, err := commands.FilterOptions{
		SubscriptionID: *subscriptionID,
		MessageID:      *messageID,
		Layer:          *layer,
		Direction:      *direction,
		Category:       *category,
		Action:         *action,
	}.Filter()
	if err != nil {
		fail(err)
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export log file to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter log file and write to new file")
	output := fs.String("o", "", "Output file (required)")
	clientID := fs.String("client-id", "", "Filter by client ID")
	subscriptionID := fs.String("subscription", "", "Filter by subscription ID")
	topic := fs.String("topic", "", "Filter by topic")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (transport, messaging, subscription)")
	direction := fs.String("direction", "", "Filter by direction (in, out, local)")
	category := fs.String("category", "", "Filter by category (message, subscription, error)")
	action := fs.String("action", "", "Filter by subscription action (registered, alert, expired, unregistered)")
	messageID := fs.String("message", "", "Filter by message ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:         *output,
		ClientID:       *clientID,
		SubscriptionID: *subscriptionID,
		Topic:          *topic,
		TimeStart:      *timeStart,
		TimeEnd:        *timeEnd,
		Layer:          *layer,
		Direction:      *direction,
		Category:       *category,
		Action:         *action,
		MessageID:      *messageID,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the log file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
