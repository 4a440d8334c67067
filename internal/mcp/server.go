// Package mcp implements the server side of the Model Context Protocol:
// JSON-RPC 2.0 framing with a newline-delimited stdio transport and an
// SSE transport. The server exposes the tool registry to a connected
// agent via the initialize / tools/list / tools/call methods.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/birdwatch/twitterapi-mcp/internal/buildinfo"
	"github.com/birdwatch/twitterapi-mcp/internal/tools"
)

// protocolVersion is the MCP protocol version we advertise during initialization.
const protocolVersion = "2024-11-05"

// ToolDefinition is an MCP tool as returned by tools/list.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentBlock is a single content item in a tools/call response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// callToolResult is the result payload of a tools/call response.
type callToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// callToolParams are the parameters of a tools/call request.
type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// toolsListResult is the result payload of a tools/list response.
type toolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// serverInfo is returned in the initialize response.
type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// serverCapabilities describes what this server supports.
type serverCapabilities struct {
	Tools *struct{} `json:"tools,omitempty"`
}

// initializeResult is the full initialize response result.
type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      serverInfo         `json:"serverInfo"`
	Capabilities    serverCapabilities `json:"capabilities"`
}

// Server dispatches MCP messages to the tool registry. It holds no
// per-call state; concurrent HandleMessage calls are safe as long as
// the registry's client is safe, which it is.
type Server struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewServer creates an MCP server over the given tool registry.
func NewServer(registry *tools.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		registry: registry,
		logger:   logger,
	}
}

// HandleRaw parses one JSON-RPC message and dispatches it. The returned
// response is nil for notifications.
func (s *Server) HandleRaw(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return newError(nil, codeParseError, "parse error: "+err.Error())
	}
	return s.Handle(ctx, &req)
}

// Handle dispatches a parsed request. The returned response is nil for
// notifications.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	if req.Method == "" {
		return newError(req.ID, codeInvalidRequest, "missing method")
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Handshake complete; nothing to send back.
		return nil
	case "ping":
		return newResult(req.ID, struct{}{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		if req.IsNotification() {
			s.logger.Debug("ignoring unknown notification", "method", req.Method)
			return nil
		}
		return newError(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	var params struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}
	// Params are advisory; a missing body still gets a valid handshake.
	_ = json.Unmarshal(req.Params, &params)

	s.logger.Info("client initialized",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"protocol", params.ProtocolVersion,
	)

	return newResult(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo: serverInfo{
			Name:    buildinfo.ServerName,
			Version: buildinfo.Version,
		},
		Capabilities: serverCapabilities{Tools: &struct{}{}},
	})
}

func (s *Server) handleToolsList(req *Request) *Response {
	list := s.registry.List()
	defs := make([]ToolDefinition, 0, len(list))
	for _, t := range list {
		defs = append(defs, ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}
	return newResult(req.ID, toolsListResult{Tools: defs})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return newError(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}
	if params.Name == "" {
		return newError(req.ID, codeInvalidParams, "tool name is required")
	}

	s.logger.Debug("tool call", "tool", params.Name)

	// Dispatch applies the boundary error policy: upstream and transport
	// failures come back as diagnostic text, not protocol errors. Only an
	// unknown tool name fails the RPC itself.
	out, err := s.registry.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		return newError(req.ID, codeInvalidParams, err.Error())
	}

	return newResult(req.ID, callToolResult{
		Content: []ContentBlock{{Type: "text", Text: out}},
	})
}
