package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// ListTags lists the organization's tags.
func ListTags(ctx context.Context, t Target, apiKey string, includeDeactivated bool) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("includeDeactivated", strconv.FormatBool(includeDeactivated))
	return Do(ctx, t, Request{
		Operation: "list tags",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "tags"),
		Query:     q,
		APIKey:    apiKey,
	})
}

// GetConversationTags lists the tags attached to a conversation.
func GetConversationTags(ctx context.Context, t Target, apiKey, conversationID string) (json.RawMessage, error) {
	return getConversationResource(ctx, t, apiKey, "get conversation tags", conversationID, "tags")
}

// TagConversation attaches a tag to a conversation.
func TagConversation(ctx context.Context, t Target, apiKey, conversationID, tagID string) (json.RawMessage, error) {
	return conversationTag(ctx, t, apiKey, "tag conversation", http.MethodPut, conversationID, tagID)
}

// RemoveConversationTag detaches a tag from a conversation.
func RemoveConversationTag(ctx context.Context, t Target, apiKey, conversationID, tagID string) (json.RawMessage, error) {
	return conversationTag(ctx, t, apiKey, "remove conversation tag", http.MethodDelete, conversationID, tagID)
}

func conversationTag(ctx context.Context, t Target, apiKey, operation, method, conversationID, tagID string) (json.RawMessage, error) {
	if err := requireID("conversation id", conversationID); err != nil {
		return nil, err
	}
	if err := requireID("tag id", tagID); err != nil {
		return nil, err
	}
	return Do(ctx, t, Request{
		Operation: operation,
		Method:    method,
		URL:       t.URL("v1", "conversations", conversationID, "tags", tagID),
		APIKey:    apiKey,
	})
}
