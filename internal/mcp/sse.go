package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SSEServer serves MCP over HTTP server-sent events. A client opens a
// long-lived GET /sse stream, receives the session message endpoint as
// the first event, and POSTs JSON-RPC requests there; responses come
// back over the stream.
type SSEServer struct {
	address string
	port    int
	server  *Server
	logger  *slog.Logger

	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*sseSession
}

// sseSession is one connected event stream.
type sseSession struct {
	id string
	// ctx is the stream's lifetime; tool calls are cancelled when the
	// client disconnects.
	ctx context.Context
	// out carries marshaled JSON-RPC responses to the stream writer.
	out chan []byte
}

// NewSSEServer creates an SSE transport for the given server.
// The server is created but not started; call Start to begin serving.
func NewSSEServer(address string, port int, server *Server, logger *slog.Logger) *SSEServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SSEServer{
		address:  address,
		port:     port,
		server:   server,
		logger:   logger,
		sessions: make(map[string]*sseSession),
	}
}

// Start begins serving SSE requests. It blocks until the server is shut
// down or fails to listen.
func (s *SSEServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.address, s.port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("SSE server listening", "addr", addr)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// routes builds the HTTP mux for the SSE transport.
func (s *SSEServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sse", s.handleSSE)
	mux.HandleFunc("POST /messages", s.handleMessage)
	return mux
}

// Shutdown gracefully stops the server.
func (s *SSEServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// handleSSE opens an event stream and parks until the client leaves.
func (s *SSEServer) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sess := &sseSession{
		id:  uuid.NewString(),
		ctx: r.Context(),
		out: make(chan []byte, 16),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
	}()

	s.logger.Info("SSE session opened", "session", sess.id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// First event tells the client where to POST its requests.
	fmt.Fprintf(w, "event: endpoint\ndata: /messages?sessionId=%s\n\n", sess.id)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE session closed", "session", sess.id)
			return
		case msg := <-sess.out:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// handleMessage accepts one JSON-RPC request for an open session. The
// response is delivered asynchronously over the session's event stream.
func (s *SSEServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	s.mu.Lock()
	sess := s.sessions[sessionID]
	s.mu.Unlock()
	if sess == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON-RPC message", http.StatusBadRequest)
		return
	}

	// The POST returns immediately; the tool call runs against the
	// stream's lifetime so a dropped client abandons it.
	go func() {
		resp := s.server.Handle(sess.ctx, &req)
		if resp == nil {
			return
		}
		data, err := json.Marshal(resp)
		if err != nil {
			s.logger.Error("marshal response", "error", err)
			return
		}
		select {
		case sess.out <- data:
		default:
			s.logger.Warn("dropping response, session backlogged", "session", sess.id)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}
