package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mycelian/dixa-mcp/client"
)

// jsonResult re-indents a raw Dixa payload for the tool result.
func jsonResult(raw json.RawMessage) *mcp.CallToolResult {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return mcp.NewToolResultText(string(raw))
	}
	return mcp.NewToolResultText(buf.String())
}

// apiError converts a client failure into a tool error result.
func apiError(action string, err error) *mcp.CallToolResult {
	if client.IsConfigurationError(err) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err))
}

func optionalString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

func optionalBool(req mcp.CallToolRequest, key string, def bool) bool {
	if v, ok := req.GetArguments()[key].(bool); ok {
		return v
	}
	return def
}

// optionalPageLimit reads page_limit, keeping def for absent or non-positive values.
func optionalPageLimit(req mcp.CallToolRequest, def int) int {
	var n int
	switch v := req.GetArguments()["page_limit"].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	}
	if n < 1 {
		return def
	}
	return n
}

func pagingOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("page_key", mcp.Description("Pagination key for the next page of results")),
		mcp.WithNumber("page_limit", mcp.Description("Number of results per page (default 50)")),
	}
}
