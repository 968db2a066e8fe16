package client

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mycelian/dixa-mcp/client/internal/api"
)

// DefaultBaseURL is the public Dixa API host.
const DefaultBaseURL = "https://dev.dixa.io"

// userAgent identifies this SDK on outbound requests.
const userAgent = "dixa-mcp-client/0.1"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Dixa REST API. It holds no credentials: the API key
// is resolved from its Source on every operation.
type Client struct {
	baseURL string
	http    *http.Client
	source  Source
	retry   api.RetryPolicy
}

// New constructs a Client for baseURL ("" selects DefaultBaseURL).
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		source:  EnvSource{},
		retry:   api.DefaultRetryPolicy,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.source == nil {
		return nil, errors.New("configuration source cannot be nil")
	}

	c.wrapTransportWithRequestMetadata()

	return c, nil
}

// BaseURL returns the Dixa host the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// APIKey resolves the API key from the client's Source.
func (c *Client) APIKey() (string, error) { return LoadAPIKey(c.source) }

func (c *Client) target() api.Target {
	return api.Target{HTTP: c.http, BaseURL: c.baseURL, Retry: c.retry}
}

// wrapTransportWithRequestMetadata stamps every outbound request with the
// SDK user agent and a fresh request ID.
func (c *Client) wrapTransportWithRequestMetadata() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &metadataTransport{base: baseTransport}
}

type metadataTransport struct {
	base http.RoundTripper
}

func (t *metadataTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", userAgent)
	if cloned.Header.Get("X-Request-Id") == "" {
		cloned.Header.Set("X-Request-Id", uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}
