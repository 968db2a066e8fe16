package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/mycelian/dixa-mcp/client/internal/errors"
	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds how recoverable failures are retried by Do.
// MaxRetries of zero disables retries.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used when the client is not configured otherwise.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:      2,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// noContentPayload is returned for 204 responses so tools always yield JSON.
var noContentPayload = json.RawMessage(`{"success":true,"message":"Operation completed successfully"}`)

// Do sends req, retrying recoverable failures per policy, and returns the JSON
// payload of the first successful response.
func Do(ctx context.Context, t Target, req Request) (json.RawMessage, error) {
	exp := backoff.NewExponentialBackOff()
	if t.Retry.InitialInterval > 0 {
		exp.InitialInterval = t.Retry.InitialInterval
	}
	if t.Retry.MaxInterval > 0 {
		exp.MaxInterval = t.Retry.MaxInterval
	}
	exp.Multiplier = 2
	exp.Reset()

	retries := t.Retry.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)

	op := func() (json.RawMessage, error) {
		payload, err := attempt(ctx, t.HTTP, req)
		if err != nil && errors.IsIrrecoverable(err) {
			return nil, backoff.Permanent(err)
		}
		return payload, err
	}
	notify := func(err error, wait time.Duration) {
		retriesTotal.WithLabelValues(req.Operation).Inc()
		log.Debug().Err(err).Str("operation", req.Operation).Dur("wait", wait).Msg("retrying Dixa request")
	}
	return backoff.RetryNotifyWithData(op, b, notify)
}

func attempt(ctx context.Context, httpClient HTTPClient, req Request) (json.RawMessage, error) {
	resp, err := Send(ctx, httpClient, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, errors.NewNetworkError(req.Operation, err)
	}
	if !resp.OK() {
		return nil, errors.NewHTTPError(resp.StatusCode, resp.Status, string(resp.Body), req.Operation)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(resp.Body)) == 0 {
		return noContentPayload, nil
	}
	if !json.Valid(resp.Body) {
		return nil, backoff.Permanent(fmt.Errorf("invalid JSON response from server: %s", resp.Body))
	}
	return json.RawMessage(resp.Body), nil
}
