package types

// ------------------------------
// Request Types
// ------------------------------

// MetricsDataRequest queries aggregated data for one analytics metric.
type MetricsDataRequest struct {
	MetricID     string          `json:"id"`
	PeriodFilter map[string]any  `json:"periodFilter"`
	Aggregations []string        `json:"aggregations"`
	Timezone     string          `json:"timezone"`
	Filters      []MetricsFilter `json:"filters,omitempty"`
	PageKey      string          `json:"-"`
	PageLimit    int             `json:"-"`
}

// MetricsFilter restricts metric data to the given attribute values.
type MetricsFilter struct {
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// RecordsDataRequest queries raw rows of one analytics record.
type RecordsDataRequest struct {
	RecordID     string              `json:"-"`
	PeriodFilter map[string]any      `json:"periodFilter"`
	Timezone     string              `json:"timezone"`
	Filters      map[string][]string `json:"filters,omitempty"`
	PageKey      string              `json:"-"`
	PageLimit    int                 `json:"-"`
}
