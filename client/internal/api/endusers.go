package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// GetEndUser retrieves an end user (customer) by ID.
func GetEndUser(ctx context.Context, t Target, apiKey, userID string) (json.RawMessage, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	return Do(ctx, t, Request{
		Operation: "get end user",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "endusers", userID),
		APIKey:    apiKey,
	})
}

// GetEndUserConversations lists the conversations of an end user.
func GetEndUserConversations(ctx context.Context, t Target, apiKey, userID, pageKey string, pageLimit int) (json.RawMessage, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setPage(q, pageKey, pageLimit)
	return Do(ctx, t, Request{
		Operation: "get end user conversations",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "endusers", userID, "conversations"),
		Query:     q,
		APIKey:    apiKey,
	})
}
