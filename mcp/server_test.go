package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config {
	return &config{
		ServerName:      "test-mcp-server",
		ServerVersion:   "1.0.0",
		HeartbeatPeriod: 30 * time.Second,
	}
}

// newTestServer wires the full tool set against a stub Dixa backend.
func newTestServer(t *testing.T, apiKey string) (*server.MCPServer, *int32) {
	t.Helper()
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/organization" {
			_, _ = w.Write([]byte(`{"data":{"id":"org-1","name":"Acme"}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(backend.Close)

	src := client.MapSource{}
	if apiKey != "" {
		src[client.APIKeyEnv] = apiKey
	}
	dixa, err := client.New(backend.URL, client.WithHTTPClient(backend.Client()), client.WithSource(src))
	require.NoError(t, err)

	s, err := newMCPServer(testConfig(), dixa)
	require.NoError(t, err)
	return s, &calls
}

func initialize(ctx context.Context, t *testing.T, c *mcpclient.Client) {
	t.Helper()
	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2024-11-05",
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo:      mcp.Implementation{Name: "test-client", Version: "1.0.0"},
		},
	})
	require.NoError(t, err)
}

func TestMCPServerInProcess(t *testing.T) {
	s, calls := newTestServer(t, "sk_test_1234567890")

	tr := transport.NewInProcessTransport(s)
	require.NoError(t, tr.Start(context.Background()))
	defer tr.Close()

	c := mcpclient.NewClient(tr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	initialize(ctx, t, c)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"get_api_info", "search_conversations", "get_conversation", "list_tags",
		"tag_conversation", "get_end_user", "list_agents", "get_analytics_metrics_data",
	} {
		assert.True(t, names[want], "tool %q not registered", want)
	}

	// Tool listing must not touch the backend.
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))

	res, err := c.CallTool(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "get_api_info"}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &report))
	assert.Nil(t, report["error"])
	assert.Equal(t, "Acme", report["organization"].(map[string]any)["name"])
	assert.Equal(t, "sk_t...7890", report["api_key"].(map[string]any)["masked"])
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestMCPServerStreamableHTTP(t *testing.T) {
	s, _ := newTestServer(t, "")

	_, handler := newHTTPHandler(testConfig(), s)
	httpSrv := httptest.NewServer(handler)
	defer httpSrv.Close()

	tr, err := transport.NewStreamableHTTP(httpSrv.URL + "/mcp")
	require.NoError(t, err)
	require.NoError(t, tr.Start(context.Background()))
	defer tr.Close()

	c := mcpclient.NewClient(tr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	initialize(ctx, t, c)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tools.Tools)

	resp, err := http.Get(httpSrv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}
