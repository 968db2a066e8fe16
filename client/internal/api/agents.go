package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// GetAgent retrieves an agent by ID.
func GetAgent(ctx context.Context, t Target, apiKey, agentID string) (json.RawMessage, error) {
	if err := requireID("agent id", agentID); err != nil {
		return nil, err
	}
	return Do(ctx, t, Request{
		Operation: "get agent",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "agents", agentID),
		APIKey:    apiKey,
	})
}

// ListAgents lists the organization's agents.
func ListAgents(ctx context.Context, t Target, apiKey string, pageLimit int) (json.RawMessage, error) {
	q := url.Values{}
	setPage(q, "", pageLimit)
	return Do(ctx, t, Request{
		Operation: "list agents",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "agents"),
		Query:     q,
		APIKey:    apiKey,
	})
}
