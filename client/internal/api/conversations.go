package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// SearchConversations runs a full-text conversation search.
func SearchConversations(ctx context.Context, t Target, apiKey, query string, exactMatch bool, pageKey string, pageLimit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("exactMatch", strconv.FormatBool(exactMatch))
	setPage(q, pageKey, pageLimit)
	return Do(ctx, t, Request{
		Operation: "search conversations",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "search", "conversations"),
		Query:     q,
		APIKey:    apiKey,
	})
}

// GetConversation retrieves a single conversation.
func GetConversation(ctx context.Context, t Target, apiKey, conversationID string) (json.RawMessage, error) {
	return getConversationResource(ctx, t, apiKey, "get conversation", conversationID)
}

// GetConversationMessages lists the messages of a conversation.
func GetConversationMessages(ctx context.Context, t Target, apiKey, conversationID string) (json.RawMessage, error) {
	return getConversationResource(ctx, t, apiKey, "get conversation messages", conversationID, "messages")
}

// GetConversationNotes lists the internal notes of a conversation.
func GetConversationNotes(ctx context.Context, t Target, apiKey, conversationID string) (json.RawMessage, error) {
	return getConversationResource(ctx, t, apiKey, "get conversation notes", conversationID, "notes")
}

// GetConversationRatings lists the ratings of a conversation.
func GetConversationRatings(ctx context.Context, t Target, apiKey, conversationID string) (json.RawMessage, error) {
	return getConversationResource(ctx, t, apiKey, "get conversation ratings", conversationID, "ratings")
}

func getConversationResource(ctx context.Context, t Target, apiKey, operation, conversationID string, sub ...string) (json.RawMessage, error) {
	if err := requireID("conversation id", conversationID); err != nil {
		return nil, err
	}
	segments := append([]string{"v1", "conversations", conversationID}, sub...)
	return Do(ctx, t, Request{
		Operation: operation,
		Method:    http.MethodGet,
		URL:       t.URL(segments...),
		APIKey:    apiKey,
	})
}
