// Command mash-rpc is an interactive subscription client running against an
// in-memory broker.
//
// It wires the MQTT sender, the delivery router and the subscription manager
// to a loopback connection and a simulated provider, so subscription alerts,
// expiry and delayed delivery can be observed from the prompt.
//
// Usage:
//
//	mash-rpc [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-log-level string     Log level: debug, info, warn, error (overrides config)
//	-scheduler string     Scheduler strategy: single, pool (overrides config)
//	-protocol-log string  File path for protocol event logging (CBOR format)
//
// Environment variables prefixed with MASH_RPC_ override the config file.
//
// Examples:
//
//	# Start with defaults
//	mash-rpc
//
//	# Pool scheduler with protocol logging
//	mash-rpc -scheduler pool -protocol-log /tmp/rpc.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mash-protocol/mash-rpc/cmd/mash-rpc/interactive"
	"github.com/mash-protocol/mash-rpc/internal/client"
	"github.com/mash-protocol/mash-rpc/pkg/config"
	mashlog "github.com/mash-protocol/mash-rpc/pkg/log"
)

var (
	configFile  = flag.String("config", "", "Configuration file path (YAML)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	strategy    = flag.String("scheduler", "", "Scheduler strategy: single, pool (overrides config)")
	protocolLog = flag.String("protocol-log", "", "File path for protocol event logging (CBOR format)")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	if *strategy != "" {
		settings.Scheduler = *strategy
	}
	if *protocolLog != "" {
		settings.ProtocolLog = *protocolLog
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	shell, err := interactive.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(settings.LogLevel)
	logger := slog.New(slog.NewTextHandler(shell.Stderr(), &slog.HandlerOptions{Level: level}))

	// Protocol events go to the CBOR file when configured and to the
	// console, where alerts and errors show at info level and above.
	loggers := []mashlog.Logger{mashlog.NewSlogAdapter(logger)}
	var fileLogger *mashlog.FileLogger
	if settings.ProtocolLog != "" {
		fileLogger, err = mashlog.NewFileLogger(settings.ProtocolLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create protocol logger: %v\n", err)
			os.Exit(1)
		}
		loggers = append(loggers, fileLogger)
		logger.Info("protocol logging enabled", "path", settings.ProtocolLog)
	}

	c, err := client.New(client.Config{
		Settings:       settings,
		Logger:         logger,
		ProtocolLogger: mashlog.NewMultiLogger(loggers...),
		OnSendFailure:  shell.OnSendFailure,
		OnMessage:      shell.OnMessage,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("mash-rpc started",
		"client_id", settings.ClientID,
		"scheduler", settings.Scheduler,
		"channel", settings.ChannelTopic,
		"provider", settings.ProviderTopic)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shell.Run(ctx, cancel, c)

	if err := c.Close(); err != nil {
		logger.Error("close failed", "error", err)
	}
	if fileLogger != nil {
		if err := fileLogger.Close(); err != nil {
			logger.Error("close protocol log", "error", err)
		}
	}
}
