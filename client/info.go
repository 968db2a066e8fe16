package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/mycelian/dixa-mcp/client/internal/api"
	"github.com/mycelian/dixa-mcp/client/internal/errors"
	"github.com/rs/zerolog/log"
)

// KeyStatus describes the configured API key without revealing it.
type KeyStatus struct {
	Masked string `json:"masked"`
	Length int    `json:"length"`
	IsSet  bool   `json:"is_set"`
}

// Report is the result of GetAPIInfo. Organization is the raw JSON returned by
// Dixa (nil when unavailable); Error is nil when nothing went wrong.
type Report struct {
	APIKey       KeyStatus       `json:"api_key"`
	Organization json.RawMessage `json:"organization"`
	Error        *string         `json:"error"`
}

// Text renders the report as two-space indented JSON.
func (r Report) Text() string {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		// only reachable if Organization holds invalid JSON
		b, _ = json.MarshalIndent(Report{APIKey: r.APIKey, Error: strPtr(err.Error())}, "", "  ")
	}
	return string(b)
}

// probeStage sequences the organization lookup.
type probeStage int

const (
	stagePrimary probeStage = iota
	stageFallback
	stageDone
)

const (
	organizationPath  = "organization"
	organizationsPath = "organizations"
)

// GetAPIInfo reports whether an API key is configured, previews it masked,
// and validates it live against the organization endpoint, falling back to
// the plural endpoint when the first answers with an error status.
//
// It never fails: every problem is described in Report.Error. When no key is
// configured no request is made.
func (c *Client) GetAPIInfo(ctx context.Context) Report {
	apiKey, err := c.APIKey()
	if err != nil {
		return Report{
			APIKey: KeyStatus{Masked: NotSetMask, Length: 0, IsSet: false},
			Error:  strPtr(err.Error()),
		}
	}

	status := KeyStatus{
		Masked: MaskAPIKey(apiKey),
		Length: utf8.RuneCountInString(apiKey),
		IsSet:  true,
	}
	org, errMsg := c.probeOrganization(ctx, apiKey)
	return Report{APIKey: status, Organization: org, Error: errMsg}
}

// probeOrganization walks Primary → Fallback → Done. Error precedence:
//   - primary 2xx: primary body, no error
//   - primary transport failure: its error, fallback skipped
//   - primary non-2xx, fallback 2xx: fallback body, error cleared
//   - primary non-2xx, fallback non-2xx: combined error naming both statuses
//   - primary non-2xx, fallback transport failure: primary error kept
//
// A 2xx body that is not JSON counts as a transport failure of that stage.
func (c *Client) probeOrganization(ctx context.Context, apiKey string) (json.RawMessage, *string) {
	var (
		org     json.RawMessage
		errMsg  *string
		primary *api.Response
	)

	for stage := stagePrimary; stage != stageDone; {
		switch stage {
		case stagePrimary:
			stage = stageDone
			resp, err := c.fetchOrganization(ctx, apiKey, organizationPath)
			if err != nil {
				errMsg = strPtr(err.Error())
				continue
			}
			if !resp.OK() {
				primary = resp
				errMsg = strPtr(fmt.Sprintf("Failed to fetch organization: %d %s\nResponse: %s",
					resp.StatusCode, errors.StatusText(resp.StatusCode, resp.Status), resp.Body))
				stage = stageFallback
				continue
			}
			data, err := extractOrganization(resp.Body)
			if err != nil {
				errMsg = strPtr(err.Error())
				continue
			}
			org = data

		case stageFallback:
			stage = stageDone
			resp, err := c.fetchOrganization(ctx, apiKey, organizationsPath)
			if err != nil {
				log.Debug().Err(err).Msg("fallback organization request failed; keeping primary error")
				continue
			}
			if !resp.OK() {
				errMsg = strPtr(fmt.Sprintf("Failed to fetch organization from both endpoints. Primary error: %d %s; Last error: %d %s\nResponse: %s",
					primary.StatusCode, errors.StatusText(primary.StatusCode, primary.Status),
					resp.StatusCode, errors.StatusText(resp.StatusCode, resp.Status), resp.Body))
				continue
			}
			data, err := extractOrganization(resp.Body)
			if err != nil {
				log.Debug().Err(err).Msg("fallback organization response unreadable; keeping primary error")
				continue
			}
			org, errMsg = data, nil
		}
	}
	return org, errMsg
}

func (c *Client) fetchOrganization(ctx context.Context, apiKey, path string) (*api.Response, error) {
	t := c.target()
	if path == organizationsPath {
		log.Debug().Str("url", t.URL("v1", path)).Msg("Trying alternative URL")
	}
	return api.Send(ctx, c.http, api.Request{
		Operation: "get " + path,
		Method:    http.MethodGet,
		URL:       t.URL("v1", path),
		APIKey:    apiKey,
	})
}

// extractOrganization unwraps a {"data": ...} envelope when present. A data
// member that is null, false, 0 or "" counts as absent and the whole body is
// used instead.
func extractOrganization(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("invalid JSON response from server: %s", body)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && truthy(data) {
			return data, nil
		}
	}
	return json.RawMessage(trimmed), nil
}

func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return true
}

func strPtr(s string) *string { return &s }
