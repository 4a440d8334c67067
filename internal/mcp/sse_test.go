package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// openStream connects to /sse and returns the message endpoint from the
// first event plus a channel of subsequent message events.
func openStream(t *testing.T, baseURL string) (string, <-chan []byte) {
	t.Helper()

	resp, err := http.Get(baseURL + "/sse")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, []byte, error) {
		var event string
		var data []byte
		for {
			line, err := reader.ReadBytes('\n')
			if err != nil {
				return "", nil, err
			}
			line = bytes.TrimRight(line, "\n")
			if len(line) == 0 {
				return event, data, nil
			}
			if rest, ok := bytes.CutPrefix(line, []byte("event: ")); ok {
				event = string(rest)
			}
			if rest, ok := bytes.CutPrefix(line, []byte("data: ")); ok {
				data = rest
			}
		}
	}

	event, data, err := readEvent()
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if event != "endpoint" {
		t.Fatalf("first event = %q, want endpoint", event)
	}

	messages := make(chan []byte, 4)
	go func() {
		defer close(messages)
		for {
			event, data, err := readEvent()
			if err != nil {
				return
			}
			if event == "message" {
				messages <- data
			}
		}
	}()

	return string(data), messages
}

func TestSSE_EndpointAndToolCall(t *testing.T) {
	mcpServer := newTestServer(t, http.StatusOK, `{"trends":[{"name":"#Go","tweet_volume":12345}]}`)
	sse := NewSSEServer("", 0, mcpServer, nil)
	web := httptest.NewServer(sse.routes())
	t.Cleanup(web.Close)

	endpoint, messages := openStream(t, web.URL)
	if !strings.HasPrefix(endpoint, "/messages?sessionId=") {
		t.Fatalf("endpoint = %q", endpoint)
	}

	body := `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"get_trends","arguments":{}}}`
	resp, err := http.Post(web.URL+endpoint, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post message: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	select {
	case raw := <-messages:
		var rpcResp Response
		if err := json.Unmarshal(raw, &rpcResp); err != nil {
			t.Fatalf("invalid message %q: %v", raw, err)
		}
		if string(rpcResp.ID) != "9" {
			t.Errorf("ID = %s", rpcResp.ID)
		}
		if rpcResp.Error != nil {
			t.Errorf("unexpected error: %+v", rpcResp.Error)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no response arrived on the event stream")
	}
}

func TestSSE_UnknownSession(t *testing.T) {
	mcpServer := newTestServer(t, http.StatusOK, `{}`)
	sse := NewSSEServer("", 0, mcpServer, nil)
	web := httptest.NewServer(sse.routes())
	t.Cleanup(web.Close)

	resp, err := http.Post(web.URL+"/messages?sessionId=nope", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
