package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog/log"
)

// InfoHandler exposes the get_api_info diagnostic tool.
type InfoHandler struct {
	client *client.Client
}

// NewInfoHandler creates a new info handler instance.
func NewInfoHandler(c *client.Client) *InfoHandler {
	return &InfoHandler{client: c}
}

// RegisterTools registers the get_api_info tool.
func (ih *InfoHandler) RegisterTools(s *server.MCPServer) error {
	infoTool := mcp.NewTool("get_api_info",
		mcp.WithDescription("Preview the configured DIXA_API_KEY (masked) and get information about the associated organization"),
	)
	s.AddTool(infoTool, ih.handleGetAPIInfo)
	return nil
}

// handleGetAPIInfo always returns a text result; problems are reported in the
// report's error field rather than as tool errors.
func (ih *InfoHandler) handleGetAPIInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	report := ih.client.GetAPIInfo(ctx)

	ev := log.Debug().
		Bool("is_set", report.APIKey.IsSet).
		Str("masked", report.APIKey.Masked).
		Bool("organization", hasOrganization(report.Organization)).
		Dur("elapsed", time.Since(start))
	if report.Error != nil {
		ev = ev.Str("error", *report.Error)
	}
	ev.Msg("get_api_info completed")

	return mcp.NewToolResultText(report.Text()), nil
}

// hasOrganization reports whether raw holds a value other than JSON null.
func hasOrganization(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
