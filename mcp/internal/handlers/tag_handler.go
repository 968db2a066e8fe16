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

// TagHandler exposes tag listing and conversation tagging tools.
type TagHandler struct {
	client *client.Client
}

func NewTagHandler(c *client.Client) *TagHandler { return &TagHandler{client: c} }

func (th *TagHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_tags",
		mcp.WithDescription("List all available tags in Dixa"),
		mcp.WithBoolean("include_deactivated", mcp.Description("Whether to include deactivated tags (default false)")),
	)
	get := mcp.NewTool("get_conversation_tags",
		mcp.WithDescription("Get all tags associated with a specific conversation from Dixa"),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("The ID of the conversation")),
	)
	tag := mcp.NewTool("tag_conversation",
		mcp.WithDescription("Add a tag to a specific conversation in Dixa"),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("The ID of the conversation to tag")),
		mcp.WithString("tag_id", mcp.Required(), mcp.Description("The ID of the tag to add")),
	)
	untag := mcp.NewTool("remove_conversation_tag",
		mcp.WithDescription("Remove a tag from a specific conversation in Dixa"),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("The ID of the conversation")),
		mcp.WithString("tag_id", mcp.Required(), mcp.Description("The ID of the tag to remove")),
	)
	s.AddTool(list, th.handleListTags)
	s.AddTool(get, conversationTool("get_conversation_tags", th.client.GetConversationTags))
	s.AddTool(tag, th.handleTag)
	s.AddTool(untag, th.handleUntag)
	return nil
}

func (th *TagHandler) handleListTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	include := optionalBool(req, "include_deactivated", false)
	log.Debug().Bool("include_deactivated", include).Msg("list_tags invoked")

	res, err := th.client.ListTags(ctx, include)
	if err != nil {
		log.Error().Err(err).Msg("list_tags failed")
		return apiError("list tags", err), nil
	}
	return jsonResult(res), nil
}

func (th *TagHandler) handleTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return th.changeTag(ctx, req, "tag_conversation", th.client.TagConversation)
}

func (th *TagHandler) handleUntag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return th.changeTag(ctx, req, "remove_conversation_tag", th.client.RemoveConversationTag)
}

func (th *TagHandler) changeTag(ctx context.Context, req mcp.CallToolRequest, name string, change func(context.Context, string, string) (json.RawMessage, error)) (*mcp.CallToolResult, error) {
	conversationID, err := req.RequireString("conversation_id")
	if err != nil || conversationID == "" {
		return mcp.NewToolResultError("conversation_id parameter is required"), nil
	}
	tagID, err := req.RequireString("tag_id")
	if err != nil || tagID == "" {
		return mcp.NewToolResultError("tag_id parameter is required"), nil
	}

	log.Debug().Str("conversation_id", conversationID).Str("tag_id", tagID).Msgf("%s invoked", name)

	start := time.Now()
	res, err := change(ctx, conversationID, tagID)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", conversationID).Str("tag_id", tagID).Dur("elapsed", time.Since(start)).Msgf("%s failed", name)
		return apiError(strings.ReplaceAll(name, "_", " "), err), nil
	}
	return jsonResult(res), nil
}
