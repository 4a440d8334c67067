// twitterapi-mcp is a read-only MCP server for the twitterapi.io API.
//
// It exposes tweet lookup, user profiles, search, threads, lists, and
// trends as MCP tools over either an SSE HTTP endpoint or stdio.
// Configuration comes from an optional YAML file, an optional .env
// file, and environment variables, in that order of precedence.
//
// Usage:
//
//	twitterapi-mcp serve            Start the MCP server
//	twitterapi-mcp version          Print version and build information
//	twitterapi-mcp -o json version  Output version information as JSON
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/birdwatch/twitterapi-mcp/internal/buildinfo"
	"github.com/birdwatch/twitterapi-mcp/internal/config"
	"github.com/birdwatch/twitterapi-mcp/internal/httpkit"
	"github.com/birdwatch/twitterapi-mcp/internal/mcp"
	"github.com/birdwatch/twitterapi-mcp/internal/tools"
	"github.com/birdwatch/twitterapi-mcp/internal/twitterapi"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run]. This keeps
// os.Exit, os.Stdout, and os.Args out of the application logic so that
// the full startup-to-shutdown lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point for the twitterapi-mcp command. All
// OS-level dependencies are injected as parameters:
//
//   - ctx controls the lifetime of the process. Cancelling it triggers
//     graceful shutdown of the active transport.
//   - stdout and stderr receive all program output. On the stdio
//     transport stdout carries the JSON-RPC stream, so logs always go
//     to stderr.
//   - args is os.Args[1:] — the command-line arguments after the
//     program name. We parse these manually rather than using the flag
//     package to avoid global state that interferes with parallel
//     tests.
//
// run returns nil on clean shutdown and a non-nil error for any
// failure. The caller (main) is responsible for printing the error and
// exiting.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var envPath string
	var outputFmt string // "text" (default) or "json"
	var command string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-env" && i+1 < len(args):
			envPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-env="):
			envPath = strings.TrimPrefix(args[i], "-env=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if outputFmt == "" {
		outputFmt = "text"
	}
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}

	switch command {
	case "serve", "":
		return runServe(ctx, stdout, stderr, configPath, envPath)
	case "version":
		return runVersion(stdout, outputFmt)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// loadConfig assembles the effective configuration: YAML file (if any),
// then .env file (if any), then process environment on top.
func loadConfig(configPath, envPath string) (*config.Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if err := config.LoadEnvFile(envPath); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runServe boots the upstream client and the selected transport, then
// blocks until the context is cancelled or the transport exits.
func runServe(ctx context.Context, stdout io.Writer, stderr io.Writer, configPath, envPath string) error {
	cfg, err := loadConfig(configPath, envPath)
	if err != nil {
		return err
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := config.NewLogger(stderr, level)
	logger.Info("starting", "server", buildinfo.ServerName, "version", buildinfo.Version, "transport", cfg.Transport)

	httpClient := httpkit.NewClient(httpkit.WithTimeout(30 * time.Second))

	clientOpts := []twitterapi.Option{
		twitterapi.WithHTTPClient(httpClient),
		twitterapi.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, twitterapi.WithBaseURL(cfg.BaseURL))
	}
	client := twitterapi.New(cfg.APIKey, clientOpts...)

	// One-shot startup check against a known account. A bad key or an
	// unreachable upstream fails fast here instead of on the first tool
	// call.
	verifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	err = client.Verify(verifyCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("api verification failed: %w", err)
	}
	logger.Info("api key verified")

	registry := tools.NewRegistry(client, cfg.MaxTweets, logger)
	server := mcp.NewServer(registry, logger)

	switch cfg.Transport {
	case config.TransportStdio:
		logger.Info("serving on stdio")
		return mcp.NewStdioServer(server, logger).Serve(ctx, os.Stdin, stdout)
	case config.TransportSSE:
		return serveSSE(ctx, cfg, server, logger)
	default:
		// Validate rejects anything else; keep the switch exhaustive.
		return &config.ConfigError{Field: "transport", Reason: fmt.Sprintf("unsupported transport %q", cfg.Transport)}
	}
}

// serveSSE runs the HTTP transport with signal-driven graceful
// shutdown.
func serveSSE(ctx context.Context, cfg *config.Config, server *mcp.Server, logger *slog.Logger) error {
	sse := mcp.NewSSEServer(cfg.Host, cfg.Port, server, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runVersion prints build metadata in the requested output format.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintln(w, buildinfo.String())
	for _, k := range []string{"version", "git_commit", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the top-level help text to w.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "twitterapi-mcp - MCP server for the twitterapi.io API")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: twitterapi-mcp [flags] <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve        Start the MCP server (default)")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>    Path to YAML config file (optional)")
	fmt.Fprintln(w, "  -env <path>       Path to .env file (default: ./.env)")
	fmt.Fprintln(w, "  -o, --output fmt  Output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TWITTER_API_KEY       API key for twitterapi.io (required)")
	fmt.Fprintln(w, "  TWITTER_API_BASE_URL  Override upstream base URL")
	fmt.Fprintln(w, "  TRANSPORT             sse (default) or stdio")
	fmt.Fprintln(w, "  HOST, PORT            SSE bind address (default 0.0.0.0:8051)")
	fmt.Fprintln(w, "  MAX_TWEETS            Clamp for get_user_recent_tweets (default 100)")
	fmt.Fprintln(w, "  LOG_LEVEL             debug, info, warn, or error")
	return nil
}
