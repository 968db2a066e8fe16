package client

import (
	"context"
	"encoding/json"

	"github.com/mycelian/dixa-mcp/client/internal/api"
)

// Every operation resolves the API key first, so a missing key fails before
// any request is sent. Results are the raw JSON payloads returned by Dixa.

// --------------------------------------------------------------------
// Conversation operations - delegated to internal/api
// --------------------------------------------------------------------

// SearchConversations searches conversations by text.
func (c *Client) SearchConversations(ctx context.Context, query string, exactMatch bool, pageKey string, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.SearchConversations(ctx, c.target(), key, query, exactMatch, pageKey, pageLimit)
}

// GetConversation retrieves a conversation by ID.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (json.RawMessage, error) {
	return c.withKey(ctx, conversationID, api.GetConversation)
}

// GetConversationMessages lists a conversation's messages.
func (c *Client) GetConversationMessages(ctx context.Context, conversationID string) (json.RawMessage, error) {
	return c.withKey(ctx, conversationID, api.GetConversationMessages)
}

// GetConversationNotes lists a conversation's internal notes.
func (c *Client) GetConversationNotes(ctx context.Context, conversationID string) (json.RawMessage, error) {
	return c.withKey(ctx, conversationID, api.GetConversationNotes)
}

// GetConversationRatings lists a conversation's ratings.
func (c *Client) GetConversationRatings(ctx context.Context, conversationID string) (json.RawMessage, error) {
	return c.withKey(ctx, conversationID, api.GetConversationRatings)
}

// --------------------------------------------------------------------
// Tag operations - delegated to internal/api
// --------------------------------------------------------------------

// ListTags lists tags, optionally including deactivated ones.
func (c *Client) ListTags(ctx context.Context, includeDeactivated bool) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.ListTags(ctx, c.target(), key, includeDeactivated)
}

// GetConversationTags lists the tags on a conversation.
func (c *Client) GetConversationTags(ctx context.Context, conversationID string) (json.RawMessage, error) {
	return c.withKey(ctx, conversationID, api.GetConversationTags)
}

// TagConversation adds a tag to a conversation.
func (c *Client) TagConversation(ctx context.Context, conversationID, tagID string) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.TagConversation(ctx, c.target(), key, conversationID, tagID)
}

// RemoveConversationTag removes a tag from a conversation.
func (c *Client) RemoveConversationTag(ctx context.Context, conversationID, tagID string) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.RemoveConversationTag(ctx, c.target(), key, conversationID, tagID)
}

// --------------------------------------------------------------------
// End user and agent operations - delegated to internal/api
// --------------------------------------------------------------------

// GetEndUser retrieves an end user by ID.
func (c *Client) GetEndUser(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.withKey(ctx, userID, api.GetEndUser)
}

// GetEndUserConversations lists an end user's conversations.
func (c *Client) GetEndUserConversations(ctx context.Context, userID, pageKey string, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.GetEndUserConversations(ctx, c.target(), key, userID, pageKey, pageLimit)
}

// GetAgent retrieves an agent by ID.
func (c *Client) GetAgent(ctx context.Context, agentID string) (json.RawMessage, error) {
	return c.withKey(ctx, agentID, api.GetAgent)
}

// ListAgents lists agents.
func (c *Client) ListAgents(ctx context.Context, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.ListAgents(ctx, c.target(), key, pageLimit)
}

// --------------------------------------------------------------------
// Analytics operations - delegated to internal/api
// --------------------------------------------------------------------

// ListAnalyticsMetrics lists queryable metric IDs.
func (c *Client) ListAnalyticsMetrics(ctx context.Context, pageKey string, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.ListAnalyticsMetrics(ctx, c.target(), key, pageKey, pageLimit)
}

// ListAnalyticsRecords lists queryable record IDs.
func (c *Client) ListAnalyticsRecords(ctx context.Context, pageKey string, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.ListAnalyticsRecords(ctx, c.target(), key, pageKey, pageLimit)
}

// GetAnalyticsMetric describes a metric.
func (c *Client) GetAnalyticsMetric(ctx context.Context, metricID string) (json.RawMessage, error) {
	return c.withKey(ctx, metricID, api.GetAnalyticsMetric)
}

// GetAnalyticsRecord describes a record.
func (c *Client) GetAnalyticsRecord(ctx context.Context, recordID string) (json.RawMessage, error) {
	return c.withKey(ctx, recordID, api.GetAnalyticsRecord)
}

// GetAnalyticsFilter lists the values of a filter attribute.
func (c *Client) GetAnalyticsFilter(ctx context.Context, attribute, pageKey string, pageLimit int) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.GetAnalyticsFilter(ctx, c.target(), key, attribute, pageKey, pageLimit)
}

// GetAnalyticsMetricsData queries aggregated metric data.
func (c *Client) GetAnalyticsMetricsData(ctx context.Context, req MetricsDataRequest) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.GetAnalyticsMetricsData(ctx, c.target(), key, req)
}

// GetAnalyticsRecordsData queries raw record rows.
func (c *Client) GetAnalyticsRecordsData(ctx context.Context, req RecordsDataRequest) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return api.GetAnalyticsRecordsData(ctx, c.target(), key, req)
}

type byIDFunc func(ctx context.Context, t api.Target, apiKey, id string) (json.RawMessage, error)

func (c *Client) withKey(ctx context.Context, id string, fn byIDFunc) (json.RawMessage, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	return fn(ctx, c.target(), key, id)
}
