package client

import (
	"errors"

	clienterrors "github.com/mycelian/dixa-mcp/client/internal/errors"
	"github.com/mycelian/dixa-mcp/client/internal/types"
)

// ErrMissingArgument is returned before any HTTP call when a required
// identifier or field is empty.
var ErrMissingArgument = types.ErrMissingArgument

// APIError is the error returned for non-2xx Dixa responses and network
// failures. StatusCode is zero for network failures.
type APIError = clienterrors.ClassifiedError

// IsConfigurationError reports whether err stems from a missing API key.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
