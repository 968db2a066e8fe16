package api

import (
	"net/url"
	"strconv"

	"github.com/mycelian/dixa-mcp/client/internal/types"
)

func requireID(name, value string) error { return types.RequireValue(name, value) }

// setPage adds Dixa cursor pagination parameters; zero or negative limits are omitted.
func setPage(q url.Values, pageKey string, pageLimit int) {
	if pageKey != "" {
		q.Set("pageKey", pageKey)
	}
	if pageLimit > 0 {
		q.Set("pageLimit", strconv.Itoa(pageLimit))
	}
}
