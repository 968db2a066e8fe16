package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog/log"
)

// AgentHandler exposes agent lookup tools.
type AgentHandler struct {
	client *client.Client
}

func NewAgentHandler(c *client.Client) *AgentHandler { return &AgentHandler{client: c} }

func (ah *AgentHandler) RegisterTools(s *server.MCPServer) error {
	get := mcp.NewTool("get_agent",
		mcp.WithDescription("Get details of a specific agent from Dixa"),
		mcp.WithString("agent_id", mcp.Required(), mcp.Description("The ID of the agent")),
	)
	list := mcp.NewTool("list_agents",
		mcp.WithDescription("List agents in the Dixa organization"),
		mcp.WithNumber("page_limit", mcp.Description("Number of results per page (default 50)")),
	)
	s.AddTool(get, ah.handleGetAgent)
	s.AddTool(list, ah.handleListAgents)
	return nil
}

func (ah *AgentHandler) handleGetAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := req.RequireString("agent_id")
	if err != nil || agentID == "" {
		return mcp.NewToolResultError("agent_id parameter is required"), nil
	}

	res, err := ah.client.GetAgent(ctx, agentID)
	if err != nil {
		log.Error().Err(err).Str("agent_id", agentID).Msg("get_agent failed")
		return apiError("get agent", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AgentHandler) handleListAgents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageLimit := optionalPageLimit(req, client.DefaultPageLimit)

	res, err := ah.client.ListAgents(ctx, pageLimit)
	if err != nil {
		log.Error().Err(err).Int("page_limit", pageLimit).Msg("list_agents failed")
		return apiError("list agents", err), nil
	}
	return jsonResult(res), nil
}
