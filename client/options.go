package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the request-metadata transport wrapper is
// installed, so transport-related options (like debug logging) end up
// underneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
// It bounds the total time of a single request, including reading the body.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Tests use it to route
// traffic to an httptest server.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		// copy so the metadata wrapper does not mutate the caller's client
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include the Authorization header, so do
// not enable this in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithSource sets where the API key is read from (default: process environment).
func WithSource(src Source) Option {
	return func(c *Client) error {
		if src == nil {
			return fmt.Errorf("source cannot be nil")
		}
		c.source = src
		return nil
	}
}

// WithMaxRetries bounds retries of recoverable failures for the general API
// operations. Zero disables retries. GetAPIInfo never retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("max retries must be >= 0")
		}
		c.retry.MaxRetries = n
		return nil
	}
}

// WithRetryBackoff sets the initial and maximum wait between retries.
func WithRetryBackoff(initial, maxWait time.Duration) Option {
	return func(c *Client) error {
		if initial <= 0 || maxWait < initial {
			return fmt.Errorf("invalid retry backoff: initial=%s max=%s", initial, maxWait)
		}
		c.retry.InitialInterval = initial
		c.retry.MaxInterval = maxWait
		return nil
	}
}
