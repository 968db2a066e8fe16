package client

import "github.com/mycelian/dixa-mcp/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	MetricsDataRequest = types.MetricsDataRequest
	MetricsFilter      = types.MetricsFilter
	RecordsDataRequest = types.RecordsDataRequest
)

// PeriodPresets lists the preset names accepted in a metrics period filter.
var PeriodPresets = types.PeriodPresets

// DefaultPageLimit is the page size tools request when none is given.
const DefaultPageLimit = 50
