package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Target bundles what every Dixa call needs besides its own arguments.
type Target struct {
	HTTP    HTTPClient
	BaseURL string
	Retry   RetryPolicy
}

// URL joins the base URL with escaped path segments.
func (t Target) URL(segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(t.BaseURL, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Request describes a single outbound Dixa call.
type Request struct {
	Operation string // label for errors, logs and metrics
	Method    string
	URL       string
	Query     url.Values
	Body      any // JSON-encoded when non-nil
	APIKey    string
}

// Response is the raw outcome of one round trip.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Send performs exactly one round trip. The returned error is non-nil only when
// no response was obtained (request build, network, or body read failure);
// HTTP error statuses are reported through Response.
func Send(ctx context.Context, httpClient HTTPClient, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request body: %w", req.Operation, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Debug().Str("method", req.Method).Str("url", target).Str("operation", req.Operation).Msg("Request URL")

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		observeRequest(req.Operation, "error", time.Since(start))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	observeRequest(req.Operation, fmt.Sprint(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s: read response body: %w", req.Operation, err)
	}
	return &Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: data}, nil
}
