package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog/log"
)

// UserHandler exposes end user tools.
type UserHandler struct {
	client *client.Client
}

func NewUserHandler(c *client.Client) *UserHandler { return &UserHandler{client: c} }

func (uh *UserHandler) RegisterTools(s *server.MCPServer) error {
	get := mcp.NewTool("get_end_user",
		mcp.WithDescription("Get details of a specific end user (customer) from Dixa"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the end user")),
	)
	convOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Get all conversations for a specific end user from Dixa"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the end user")),
	}, pagingOptions()...)

	s.AddTool(get, uh.handleGetEndUser)
	s.AddTool(mcp.NewTool("get_end_user_conversations", convOpts...), uh.handleGetEndUserConversations)
	return nil
}

func (uh *UserHandler) handleGetEndUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil || userID == "" {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}

	log.Debug().Str("user_id", userID).Msg("get_end_user invoked")
	res, err := uh.client.GetEndUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("get_end_user failed")
		return apiError("get end user", err), nil
	}
	return jsonResult(res), nil
}

func (uh *UserHandler) handleGetEndUserConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil || userID == "" {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	pageKey := optionalString(req, "page_key")
	pageLimit := optionalPageLimit(req, client.DefaultPageLimit)

	start := time.Now()
	res, err := uh.client.GetEndUserConversations(ctx, userID, pageKey, pageLimit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Dur("elapsed", time.Since(start)).Msg("get_end_user_conversations failed")
		return apiError("get end user conversations", err), nil
	}
	log.Debug().Str("user_id", userID).Dur("elapsed", time.Since(start)).Msg("get_end_user_conversations completed")
	return jsonResult(res), nil
}
