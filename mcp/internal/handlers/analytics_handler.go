package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler exposes the analytics catalogue and data query tools.
type AnalyticsHandler struct {
	client *client.Client
}

func NewAnalyticsHandler(c *client.Client) *AnalyticsHandler {
	return &AnalyticsHandler{client: c}
}

func (ah *AnalyticsHandler) RegisterTools(s *server.MCPServer) error {
	periodDesc := fmt.Sprintf(`Period filter, e.g. {"value":{"_type":"Preset","value":"PreviousWeek"},"_type":"Preset"}. Presets: %s`,
		strings.Join(client.PeriodPresets, ", "))

	listMetrics := append([]mcp.ToolOption{
		mcp.WithDescription("List available analytics metrics in Dixa"),
	}, pagingOptions()...)
	listRecords := append([]mcp.ToolOption{
		mcp.WithDescription("List available analytics records in Dixa"),
	}, pagingOptions()...)
	filter := append([]mcp.ToolOption{
		mcp.WithDescription("Get possible values for an analytics filter attribute"),
		mcp.WithString("filter_attribute", mcp.Required(), mcp.Description("The filter attribute to look up")),
	}, pagingOptions()...)

	s.AddTool(mcp.NewTool("list_analytics_metrics", listMetrics...), ah.handleListMetrics)
	s.AddTool(mcp.NewTool("list_analytics_records", listRecords...), ah.handleListRecords)
	s.AddTool(mcp.NewTool("get_analytics_metric",
		mcp.WithDescription("Get the description of a specific analytics metric"),
		mcp.WithString("metric_id", mcp.Required(), mcp.Description("The ID of the metric")),
	), ah.handleGetMetric)
	s.AddTool(mcp.NewTool("get_analytics_record",
		mcp.WithDescription("Get the description of a specific analytics record"),
		mcp.WithString("record_id", mcp.Required(), mcp.Description("The ID of the record")),
	), ah.handleGetRecord)
	s.AddTool(mcp.NewTool("get_analytics_filter", filter...), ah.handleGetFilter)

	metricsData := append([]mcp.ToolOption{
		mcp.WithDescription("Query aggregated data for an analytics metric"),
		mcp.WithString("metric_id", mcp.Required(), mcp.Description("The ID of the metric")),
		mcp.WithObject("period_filter", mcp.Required(), mcp.Description(periodDesc)),
		mcp.WithArray("aggregations", mcp.Required(), mcp.Description("Aggregations to compute, e.g. [\"Count\"]"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("timezone", mcp.Required(), mcp.Description("IANA timezone, e.g. Europe/Copenhagen")),
		mcp.WithArray("filters", mcp.Description(`Filters, e.g. [{"attribute":"channel","values":["email"]}]`)),
	}, pagingOptions()...)
	recordsData := append([]mcp.ToolOption{
		mcp.WithDescription("Query raw rows of an analytics record"),
		mcp.WithString("record_id", mcp.Required(), mcp.Description("The ID of the record")),
		mcp.WithObject("period_filter", mcp.Required(), mcp.Description(periodDesc)),
		mcp.WithString("timezone", mcp.Required(), mcp.Description("IANA timezone, e.g. Europe/Copenhagen")),
		mcp.WithObject("filters", mcp.Description(`Filters keyed by attribute, e.g. {"channel":["email"]}`)),
	}, pagingOptions()...)

	s.AddTool(mcp.NewTool("get_analytics_metrics_data", metricsData...), ah.handleMetricsData)
	s.AddTool(mcp.NewTool("get_analytics_records_data", recordsData...), ah.handleRecordsData)
	return nil
}

func (ah *AnalyticsHandler) handleListMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := ah.client.ListAnalyticsMetrics(ctx, optionalString(req, "page_key"), optionalPageLimit(req, client.DefaultPageLimit))
	if err != nil {
		log.Error().Err(err).Msg("list_analytics_metrics failed")
		return apiError("list analytics metrics", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleListRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := ah.client.ListAnalyticsRecords(ctx, optionalString(req, "page_key"), optionalPageLimit(req, client.DefaultPageLimit))
	if err != nil {
		log.Error().Err(err).Msg("list_analytics_records failed")
		return apiError("list analytics records", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleGetMetric(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metricID, err := req.RequireString("metric_id")
	if err != nil || metricID == "" {
		return mcp.NewToolResultError("metric_id parameter is required"), nil
	}
	res, err := ah.client.GetAnalyticsMetric(ctx, metricID)
	if err != nil {
		log.Error().Err(err).Str("metric_id", metricID).Msg("get_analytics_metric failed")
		return apiError("get analytics metric", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleGetRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recordID, err := req.RequireString("record_id")
	if err != nil || recordID == "" {
		return mcp.NewToolResultError("record_id parameter is required"), nil
	}
	res, err := ah.client.GetAnalyticsRecord(ctx, recordID)
	if err != nil {
		log.Error().Err(err).Str("record_id", recordID).Msg("get_analytics_record failed")
		return apiError("get analytics record", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleGetFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	attribute, err := req.RequireString("filter_attribute")
	if err != nil || attribute == "" {
		return mcp.NewToolResultError("filter_attribute parameter is required"), nil
	}
	res, err := ah.client.GetAnalyticsFilter(ctx, attribute, optionalString(req, "page_key"), optionalPageLimit(req, client.DefaultPageLimit))
	if err != nil {
		log.Error().Err(err).Str("filter_attribute", attribute).Msg("get_analytics_filter failed")
		return apiError("get analytics filter", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleMetricsData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := client.MetricsDataRequest{
		MetricID:  optionalString(req, "metric_id"),
		Timezone:  optionalString(req, "timezone"),
		PageKey:   optionalString(req, "page_key"),
		PageLimit: optionalPageLimit(req, 0),
	}
	if err := decodeArgument(req, "period_filter", &q.PeriodFilter); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := decodeArgument(req, "aggregations", &q.Aggregations); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := decodeArgument(req, "filters", &q.Filters); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("metric_id", q.MetricID).Strs("aggregations", q.Aggregations).Str("timezone", q.Timezone).Msg("get_analytics_metrics_data invoked")

	start := time.Now()
	res, err := ah.client.GetAnalyticsMetricsData(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("metric_id", q.MetricID).Dur("elapsed", time.Since(start)).Msg("get_analytics_metrics_data failed")
		return apiError("get analytics metrics data", err), nil
	}
	return jsonResult(res), nil
}

func (ah *AnalyticsHandler) handleRecordsData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := client.RecordsDataRequest{
		RecordID:  optionalString(req, "record_id"),
		Timezone:  optionalString(req, "timezone"),
		PageKey:   optionalString(req, "page_key"),
		PageLimit: optionalPageLimit(req, 0),
	}
	if err := decodeArgument(req, "period_filter", &q.PeriodFilter); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := decodeArgument(req, "filters", &q.Filters); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	res, err := ah.client.GetAnalyticsRecordsData(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("record_id", q.RecordID).Dur("elapsed", time.Since(start)).Msg("get_analytics_records_data failed")
		return apiError("get analytics records data", err), nil
	}
	return jsonResult(res), nil
}

// decodeArgument re-decodes a structured tool argument into dst. Absent
// arguments leave dst untouched so validation in the client can report them.
func decodeArgument(req mcp.CallToolRequest, key string, dst any) error {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}
