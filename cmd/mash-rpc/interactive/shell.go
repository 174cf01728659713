// Package interactive provides the interactive command-line interface
// for mash-rpc.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/mash-rpc/internal/client"
	"github.com/mash-protocol/mash-rpc/internal/loopback"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/subscription"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

// ErrAmbiguousID is returned when an ID prefix matches several subscriptions.
var ErrAmbiguousID = errors.New("ambiguous subscription id")

// Shell handles interactive mode for mash-rpc.
type Shell struct {
	client *client.Client
	rl     *readline.Instance
}

// New creates the shell. The client is attached in Run so that its callbacks
// can print through the shell.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rpc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// OnSendFailure prints a delivery failure.
func (s *Shell) OnSendFailure(msgID string, err error) {
	fmt.Fprintf(s.Stdout(), "[SEND] %s failed: %v\n", short(msgID), err)
}

// OnMessage prints a one-way message received on the channel topic.
func (s *Shell) OnMessage(topic string, payload []byte) {
	fmt.Fprintf(s.Stdout(), "[RECV] %s: %s\n", topic, payload)
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc, c *client.Client) {
	defer s.rl.Close()
	s.client = c

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "subscribe", "sub":
			s.cmdSubscribe(args)

		case "unsubscribe", "unsub":
			s.cmdUnsubscribe(args)

		case "send":
			s.cmdSend(args)

		case "list", "ls":
			s.cmdList()

		case "pause":
			s.cmdPause(args, true)

		case "resume":
			s.cmdPause(args, false)

		case "fail":
			s.cmdFail(args)

		case "ready":
			s.cmdReady(args)

		case "history":
			s.cmdHistory()

		case "status":
			s.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(s.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.Stdout(), `
mash-rpc Commands:
  Subscriptions:
    subscribe periodic <name> <period-ms> [alert-ms] [expiry-ms]
    subscribe onchange <name> [min-ms] [expiry-ms]
    subscribe keepalive <name> <min-ms> <max-ms> [alert-ms] [expiry-ms]
    unsubscribe <id>        - Stop a subscription
    list                    - List subscriptions

  Provider:
    pause <id>              - Stop publishing (alerts start firing)
    resume <id>             - Resume publishing
    fail <id> <reason>      - Publish an error

  Messaging:
    send <topic> <ttl-ms> [best-effort] <payload>
    ready on|off            - Toggle the connection's channel subscription
    history                 - Show published messages
    status                  - Show client status

  General:
    help                    - Show this help
    quit                    - Exit

  IDs may be abbreviated to any unique prefix.`)
}

func (s *Shell) listener(name string) subscription.Listener {
	return subscription.ListenerFuncs{
		Missed: func() {
			fmt.Fprintf(s.Stdout(), "[ALERT] %s: publication missed\n", name)
		},
		Publication: func(v any) {
			fmt.Fprintf(s.Stdout(), "[PUB] %s: %+v\n", name, v)
		},
		Error: func(err error) {
			fmt.Fprintf(s.Stdout(), "[ERROR] %s: %v\n", name, err)
		},
	}
}

func (s *Shell) cmdSubscribe(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.Stdout(), "Usage: subscribe periodic|onchange|keepalive <name> ...")
		return
	}

	q, err := ParseQos(args[0], args[2:], ttl.Now())
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}

	name := args[1]
	id, err := s.client.Subscribe(name, q, s.listener(name))
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.Stdout(), "Subscribed %s as %s (%s)\n", name, id, q)
}

// ParseQos builds a subscription QoS from shell arguments following the kind.
// Expiry arguments are relative to now.
func ParseQos(kind string, args []string, now ttl.Timestamp) (*qos.SubscriptionQos, error) {
	nums := make([]int64, len(args))
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		nums[i] = n
	}
	arg := func(i int, def int64) int64 {
		if i < len(nums) {
			return nums[i]
		}
		return def
	}
	expiry := func(i int) ttl.Timestamp {
		if i < len(nums) && nums[i] > 0 {
			return ttl.ToAbsolute(nums[i], now)
		}
		return qos.NoExpiry
	}

	var q *qos.SubscriptionQos
	switch strings.ToLower(kind) {
	case "periodic":
		if len(nums) < 1 {
			return nil, errors.New("periodic needs <period-ms>")
		}
		q = qos.NewPeriodic(expiry(2), nums[0], arg(1, 0))
	case "onchange":
		q = qos.NewOnChange(expiry(1), arg(0, 0))
	case "keepalive":
		if len(nums) < 2 {
			return nil, errors.New("keepalive needs <min-ms> <max-ms>")
		}
		q = qos.NewOnChangeWithKeepAlive(expiry(3), nums[0], nums[1], arg(2, 0))
	default:
		return nil, fmt.Errorf("unknown qos kind %q", kind)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// resolve expands a unique ID prefix to a registered subscription ID.
func (s *Shell) resolve(prefix string) (string, error) {
	return ResolveID(prefix, s.client.Subscriptions())
}

// ResolveID expands prefix to the ID of exactly one subscription in infos.
func ResolveID(prefix string, infos []subscription.Info) (string, error) {
	for _, info := range infos {
		if info.ID == prefix {
			return info.ID, nil
		}
	}
	var match string
	for _, info := range infos {
		if strings.HasPrefix(info.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = info.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", subscription.ErrSubscriptionNotFound, prefix)
	}
	return match, nil
}

func (s *Shell) cmdUnsubscribe(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.Stdout(), "Usage: unsubscribe <id>")
		return
	}
	id, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}
	if err := s.client.Unsubscribe(id); err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.Stdout(), "Unsubscribed %s\n", id)
}

func (s *Shell) cmdSend(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.Stdout(), "Usage: send <topic> <ttl-ms> [best-effort] <payload>")
		return
	}
	ttlMs, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Invalid ttl: %s\n", args[1])
		return
	}

	rest := args[2:]
	bestEffort := false
	if strings.EqualFold(rest[0], "best-effort") {
		bestEffort = true
		rest = rest[1:]
	}
	if len(rest) == 0 {
		fmt.Fprintln(s.Stdout(), "Missing payload")
		return
	}

	id := s.client.Send(args[0], []byte(strings.Join(rest, " ")), time.Duration(ttlMs)*time.Millisecond, bestEffort)
	fmt.Fprintf(s.Stdout(), "Queued %s\n", short(id))
}

func (s *Shell) cmdList() {
	infos := s.client.Subscriptions()
	if len(infos) == 0 {
		fmt.Fprintln(s.Stdout(), "No subscriptions")
		return
	}
	for _, info := range infos {
		last := "never"
		if info.LastPublication != 0 {
			last = info.LastPublication.String()
		}
		fmt.Fprintf(s.Stdout(), "  %s  %-16s %-9s pubs=%d alerts=%d last=%s\n",
			info.ID, info.MethodName, info.Qos.Kind, info.PublicationCount, info.AlertCount, last)
	}
}

func (s *Shell) cmdPause(args []string, pause bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.Stdout(), "Usage: pause|resume <id>")
		return
	}
	id, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}
	if pause {
		err = s.client.Pause(id)
	} else {
		err = s.client.Resume(id)
	}
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
	}
}

func (s *Shell) cmdFail(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.Stdout(), "Usage: fail <id> <reason>")
		return
	}
	id, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
		return
	}
	if err := s.client.Fail(id, strings.Join(args[1:], " ")); err != nil {
		fmt.Fprintf(s.Stdout(), "Error: %v\n", err)
	}
}

func (s *Shell) cmdReady(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.Stdout(), "ready: %v\n", s.client.Ready())
		return
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		s.client.SetReady(true)
	case "off", "false", "0":
		s.client.SetReady(false)
	default:
		fmt.Fprintln(s.Stdout(), "Usage: ready on|off")
		return
	}
	fmt.Fprintf(s.Stdout(), "ready: %v\n", s.client.Ready())
}

func (s *Shell) cmdHistory() {
	for i, d := range s.client.History() {
		fmt.Fprintf(s.Stdout(), "  %4d  %-32s type=%-6s qos=%d ttl=%ds size=%d\n",
			i+1, d.Topic, loopback.MessageType(d.Headers), d.QosLevel, d.TTLSeconds, d.Size)
	}
}

func (s *Shell) cmdStatus() {
	cfg := s.client.Settings()
	fmt.Fprintf(s.Stdout(), `Client:     %s
Channel:    %s
Provider:   %s
Scheduler:  %s
Ready:      %v
Subs:       %d (provider serving %d)
Retries:    %d pending
Published:  %d
`, cfg.ClientID, cfg.ChannelTopic, cfg.ProviderTopic, cfg.Scheduler,
		s.client.Ready(), len(s.client.Subscriptions()), len(s.client.Serving()),
		s.client.PendingRetries(), len(s.client.History()))
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
