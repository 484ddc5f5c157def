package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// callMCP posts one JSON-RPC request to the /mcp endpoint.
func callMCP(t *testing.T, base string, payload map[string]interface{}) []byte {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequest("POST", base+"/mcp", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("call /mcp: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/mcp returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	// Stateless streamable responses may arrive as a single SSE event.
	text := string(raw)
	if idx := strings.Index(text, "data: "); idx >= 0 {
		text = text[idx+len("data: "):]
		if end := strings.Index(text, "\n"); end >= 0 {
			text = text[:end]
		}
	}
	return []byte(text)
}

func TestMCPToolsList(t *testing.T) {
	base := portalURL(t)

	raw := callMCP(t, base, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/list",
	})

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("invalid json-rpc response: %v\n%s", err, raw)
	}

	names := map[string]bool{}
	for _, tool := range resp.Result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"get_snapshot", "list_groups", "get_version"} {
		if !names[want] {
			t.Errorf("missing tool %q, got %v", want, names)
		}
	}
}

func TestMCPGetSnapshotTool(t *testing.T) {
	base := portalURL(t)

	raw := callMCP(t, base, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      "get_snapshot",
			"arguments": map[string]interface{}{"group": "market"},
		},
	})

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("invalid json-rpc response: %v\n%s", err, raw)
	}
	if resp.Result.IsError {
		t.Fatalf("tool returned error: %+v", resp.Result.Content)
	}
	if len(resp.Result.Content) != 1 || !strings.Contains(resp.Result.Content[0].Text, "SPY") {
		t.Errorf("expected SPY in the market group: %+v", resp.Result.Content)
	}
}
