package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog/log"
)

// ConversationHandler exposes conversation lookup and search tools.
type ConversationHandler struct {
	client *client.Client
}

func NewConversationHandler(c *client.Client) *ConversationHandler {
	return &ConversationHandler{client: c}
}

func (ch *ConversationHandler) RegisterTools(s *server.MCPServer) error {
	searchOpts := []mcp.ToolOption{
		mcp.WithDescription("Search conversations in Dixa"),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query string")),
		mcp.WithBoolean("exact_match", mcp.Description("Whether to perform exact matching (default true)")),
	}
	s.AddTool(mcp.NewTool("search_conversations", append(searchOpts, pagingOptions()...)...), ch.handleSearch)

	byID := []struct {
		name, desc string
		fetch      func(context.Context, string) (json.RawMessage, error)
	}{
		{"get_conversation", "Get a single conversation by ID from Dixa", ch.client.GetConversation},
		{"get_conversation_messages", "Get all messages for a specific conversation from Dixa", ch.client.GetConversationMessages},
		{"get_conversation_notes", "Get all internal notes for a specific conversation from Dixa", ch.client.GetConversationNotes},
		{"get_conversation_ratings", "Get all ratings for a specific conversation from Dixa", ch.client.GetConversationRatings},
	}
	for _, tool := range byID {
		t := mcp.NewTool(tool.name,
			mcp.WithDescription(tool.desc),
			mcp.WithString("conversation_id", mcp.Required(), mcp.Description("The ID of the conversation")),
		)
		s.AddTool(t, conversationTool(tool.name, tool.fetch))
	}
	return nil
}

func (ch *ConversationHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	exact := optionalBool(req, "exact_match", true)
	pageKey := optionalString(req, "page_key")
	pageLimit := optionalPageLimit(req, client.DefaultPageLimit)

	log.Debug().Str("query", query).Bool("exact_match", exact).Int("page_limit", pageLimit).Msg("search_conversations invoked")

	start := time.Now()
	res, err := ch.client.SearchConversations(ctx, query, exact, pageKey, pageLimit)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("search_conversations failed")
		return apiError("search conversations", err), nil
	}
	return jsonResult(res), nil
}

// conversationTool builds a handler for tools keyed only by conversation_id.
func conversationTool(name string, fetch func(context.Context, string) (json.RawMessage, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("conversation_id")
		if err != nil || id == "" {
			return mcp.NewToolResultError("conversation_id parameter is required"), nil
		}

		log.Debug().Str("conversation_id", id).Msgf("%s invoked", name)

		start := time.Now()
		res, err := fetch(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("conversation_id", id).Dur("elapsed", time.Since(start)).Msgf("%s failed", name)
			return apiError(strings.ReplaceAll(name, "_", " "), err), nil
		}
		return jsonResult(res), nil
	}
}
