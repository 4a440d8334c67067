package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// StdioServer serves MCP over stdin/stdout using newline-delimited
// JSON-RPC. Structured logs must go elsewhere (stderr) — stdout carries
// only protocol frames.
type StdioServer struct {
	server *Server
	logger *slog.Logger

	// writeMu serializes response writes; tool calls run concurrently.
	writeMu sync.Mutex
}

// NewStdioServer creates a stdio transport for the given server.
func NewStdioServer(server *Server, logger *slog.Logger) *StdioServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioServer{
		server: server,
		logger: logger,
	}
}

// readResult is the outcome of a single line read from the input.
type readResult struct {
	line []byte
	err  error
}

// Serve reads newline-delimited JSON-RPC messages from r and writes
// responses to w until r is exhausted or ctx is cancelled. Reads run in
// a goroutine so cancellation can interrupt a blocking read; a request
// in flight when ctx ends is abandoned without writing a response.
func (t *StdioServer) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReaderSize(r, 1<<20) // 1 MiB buffer for large messages

	lines := make(chan readResult)
	go func() {
		defer close(lines)
		for {
			line, err := reader.ReadBytes('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if len(res.line) > 0 {
				t.handleLine(ctx, res.line, w)
			}
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					t.logger.Info("stdin closed, shutting down")
					return nil
				}
				return fmt.Errorf("read stdin: %w", res.err)
			}
		}
	}
}

// handleLine dispatches one message and writes the response, if any.
func (t *StdioServer) handleLine(ctx context.Context, line []byte, w io.Writer) {
	resp := t.server.HandleRaw(ctx, line)
	if resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.logger.Error("marshal response", "error", err)
		return
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := w.Write(append(data, '\n')); err != nil {
		t.logger.Error("write response", "error", err)
	}
}
