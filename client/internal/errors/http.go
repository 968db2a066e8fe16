package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ClassifyHTTPError determines whether an HTTP error should be retried.
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		StatusText: http.StatusText(statusCode),
		Body:       body,
		Underlying: underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes: be conservative and retry
		return Recoverable
	}
}

// NewHTTPError creates a classified error for a non-2xx Dixa response.
// status is the raw status line of the response ("404 Not Found").
// A 401 gets the credential troubleshooting message; everything else reads
// "<operation>: <code> <reason>\nResponse: <body>".
func NewHTTPError(statusCode int, status, body, operation string) *ClassifiedError {
	ce := ClassifyHTTPError(statusCode, body, fmt.Errorf("%s failed: HTTP %d", operation, statusCode))
	ce.StatusText = StatusText(statusCode, status)
	if statusCode == http.StatusUnauthorized {
		ce.Message = AuthErrorMessage(body)
	} else {
		ce.Message = fmt.Sprintf("%s: %d %s\nResponse: %s", operation, statusCode, ce.StatusText, body)
	}
	return ce
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Message:    fmt.Sprintf("Request failed: %v", err),
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// StatusText extracts the reason phrase from a response status line, falling
// back to the canonical text for the code when the server sent none.
func StatusText(statusCode int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if text == "" {
		return http.StatusText(statusCode)
	}
	return text
}

// AuthErrorMessage explains the usual causes of a 401 from Dixa.
func AuthErrorMessage(body string) string {
	return "Authentication failed (401 Unauthorized). This usually means:\n" +
		"1. The DIXA_API_KEY environment variable is not set correctly in the hosting environment\n" +
		"2. The API key is invalid or has expired\n" +
		"3. The API key format is incorrect\n\n" +
		"Please verify:\n" +
		"- Check that DIXA_API_KEY is set under Environment Variables\n" +
		"- Ensure there are no extra spaces or quotes around the key\n" +
		"- Verify the API key is valid in your Dixa account\n\n" +
		"Response: " + body
}
