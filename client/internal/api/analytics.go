package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/mycelian/dixa-mcp/client/internal/types"
)

// ListAnalyticsMetrics lists the metric IDs that can be queried.
func ListAnalyticsMetrics(ctx context.Context, t Target, apiKey, pageKey string, pageLimit int) (json.RawMessage, error) {
	return listAnalytics(ctx, t, apiKey, "list analytics metrics", "metrics", pageKey, pageLimit)
}

// ListAnalyticsRecords lists the record IDs that can be queried.
func ListAnalyticsRecords(ctx context.Context, t Target, apiKey, pageKey string, pageLimit int) (json.RawMessage, error) {
	return listAnalytics(ctx, t, apiKey, "list analytics records", "records", pageKey, pageLimit)
}

func listAnalytics(ctx context.Context, t Target, apiKey, operation, kind, pageKey string, pageLimit int) (json.RawMessage, error) {
	q := url.Values{}
	setPage(q, pageKey, pageLimit)
	return Do(ctx, t, Request{
		Operation: operation,
		Method:    http.MethodGet,
		URL:       t.URL("v1", "analytics", kind),
		Query:     q,
		APIKey:    apiKey,
	})
}

// GetAnalyticsMetric describes the queryable properties of a metric.
func GetAnalyticsMetric(ctx context.Context, t Target, apiKey, metricID string) (json.RawMessage, error) {
	if err := requireID("metric id", metricID); err != nil {
		return nil, err
	}
	return Do(ctx, t, Request{
		Operation: "get analytics metric",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "analytics", "metrics", metricID),
		APIKey:    apiKey,
	})
}

// GetAnalyticsRecord describes the queryable properties of a record.
func GetAnalyticsRecord(ctx context.Context, t Target, apiKey, recordID string) (json.RawMessage, error) {
	if err := requireID("record id", recordID); err != nil {
		return nil, err
	}
	return Do(ctx, t, Request{
		Operation: "get analytics record",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "analytics", "records", recordID),
		APIKey:    apiKey,
	})
}

// GetAnalyticsFilter lists the values a filter attribute accepts.
func GetAnalyticsFilter(ctx context.Context, t Target, apiKey, attribute, pageKey string, pageLimit int) (json.RawMessage, error) {
	if err := requireID("filter attribute", attribute); err != nil {
		return nil, err
	}
	q := url.Values{}
	setPage(q, pageKey, pageLimit)
	return Do(ctx, t, Request{
		Operation: "get analytics filter",
		Method:    http.MethodGet,
		URL:       t.URL("v1", "analytics", "filter", attribute),
		Query:     q,
		APIKey:    apiKey,
	})
}

// GetAnalyticsMetricsData queries aggregated metric data.
func GetAnalyticsMetricsData(ctx context.Context, t Target, apiKey string, req types.MetricsDataRequest) (json.RawMessage, error) {
	if err := types.ValidateMetricsDataRequest(req); err != nil {
		return nil, err
	}
	q := url.Values{}
	setPage(q, req.PageKey, req.PageLimit)
	return Do(ctx, t, Request{
		Operation: "get analytics metrics data",
		Method:    http.MethodPost,
		URL:       t.URL("v1", "analytics", "metrics"),
		Query:     q,
		Body:      req,
		APIKey:    apiKey,
	})
}

// GetAnalyticsRecordsData queries raw record rows.
func GetAnalyticsRecordsData(ctx context.Context, t Target, apiKey string, req types.RecordsDataRequest) (json.RawMessage, error) {
	if err := types.ValidateRecordsDataRequest(req); err != nil {
		return nil, err
	}
	q := url.Values{}
	setPage(q, req.PageKey, req.PageLimit)
	return Do(ctx, t, Request{
		Operation: "get analytics records data",
		Method:    http.MethodPost,
		URL:       t.URL("v1", "analytics", "records", req.RecordID, "data"),
		Query:     q,
		Body:      req,
		APIKey:    apiKey,
	})
}
