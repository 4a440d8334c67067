// Package tools defines the tool surface exposed to the calling agent.
//
// Each tool is one read-only twitterapi.io operation with named
// arguments and a plain-text result. The boundary rules live here:
// count clamping, queryType coercion, empty-result sentinels, and the
// conversion of internal typed errors into one-line diagnostic strings.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/birdwatch/twitterapi-mcp/internal/twitterapi"
)

// Count limits enforced at the tool boundary. Values above the limit
// are silently reduced, never rejected.
const (
	// DefaultCount is used when the caller omits count.
	DefaultCount = 10

	// MaxUserTweets caps get_user_recent_tweets (overridable via config).
	MaxUserTweets = 100

	// MaxCount caps every other count-bearing tool.
	MaxCount = 50
)

// Tool represents a callable tool.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`

	// Failure labels the operation for boundary diagnostics, e.g.
	// "retrieving tweet" → "Error retrieving tweet: <cause>".
	Failure string `json:"-"`

	Handler func(ctx context.Context, args map[string]any) (string, error) `json:"-"`
}

// Registry holds the available tools and the shared API client.
type Registry struct {
	tools  map[string]*Tool
	order  []string
	client *twitterapi.Client
	logger *slog.Logger

	// maxUserTweets is the effective clamp for get_user_recent_tweets.
	maxUserTweets int
}

// NewRegistry creates a registry with all twitterapi.io tools
// registered. maxUserTweets overrides the recent-tweets clamp when
// positive; zero keeps MaxUserTweets.
func NewRegistry(client *twitterapi.Client, maxUserTweets int, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUserTweets <= 0 {
		maxUserTweets = MaxUserTweets
	}
	r := &Registry{
		tools:         make(map[string]*Tool),
		client:        client,
		logger:        logger,
		maxUserTweets: maxUserTweets,
	}
	r.registerBuiltins()
	return r
}

// Register adds a tool to the registry.
func (r *Registry) Register(t *Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Get retrieves a tool by name, or nil.
func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// List returns all tools in registration order.
func (r *Registry) List() []*Tool {
	result := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Execute runs a tool by name and returns its raw result. Internal
// errors propagate typed so callers and tests can assert on them.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	tool := r.tools[name]
	if tool == nil {
		return "", &ErrToolUnavailable{ToolName: name}
	}
	return tool.Handler(ctx, args)
}

// Dispatch runs a tool and applies the boundary error policy: any
// handler failure is converted into a human-readable diagnostic string
// that the caller treats as normal tool output. Only an unknown tool
// name surfaces as an error.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	tool := r.tools[name]
	if tool == nil {
		return "", &ErrToolUnavailable{ToolName: name}
	}

	out, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool call failed", "tool", name, "error", err)
		return fmt.Sprintf("Error %s: %v", tool.Failure, err), nil
	}
	return out, nil
}

// stringArg extracts a string argument, "" when absent.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// countArg extracts a count argument, applying the default and clamping
// to max. JSON numbers decode as float64; int is accepted for direct
// callers. Non-positive values fall back to the default.
func countArg(args map[string]any, def, max int) int {
	count := def
	switch v := args["count"].(type) {
	case float64:
		count = int(v)
	case int:
		count = v
	}
	if count <= 0 {
		count = def
	}
	if count > max {
		count = max
	}
	return count
}

// int64Arg extracts an integer argument, 0 when absent.
func int64Arg(args map[string]any, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// stringListArg extracts a list-of-strings argument. Non-string
// elements are skipped.
func stringListArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// coerceQueryType forces queryType into the supported set: anything
// other than exactly "Top" becomes "Latest".
func coerceQueryType(qt string) string {
	if qt == "Top" {
		return "Top"
	}
	return "Latest"
}
