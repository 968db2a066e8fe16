package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mycelian/dixa-mcp/client/internal/errors"
)

func TestDo_SetsHeaders(t *testing.T) {
	t.Parallel()
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Fatalf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("Content-Type = %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	got, err := Do(context.Background(), tg, Request{Operation: "probe", Method: http.MethodGet, URL: tg.URL("v1", "tags"), APIKey: "key-123"})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if string(got) != `{"ok":true}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestDo_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls int32
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	if _, err := Do(context.Background(), tg, Request{Operation: "list", Method: http.MethodGet, URL: tg.URL("v1", "agents")}); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()
	var calls int32
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})
	_, err := Do(context.Background(), tg, Request{Operation: "list agents", Method: http.MethodGet, URL: tg.URL("v1", "agents")})
	var ce *errors.ClassifiedError
	if !stderrors.As(err, &ce) || ce.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected classified 503, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 1 attempt + 2 retries, got %d", n)
	}
	if !strings.Contains(err.Error(), "list agents: 503 Service Unavailable\nResponse: down") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()
	var calls int32
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := Do(context.Background(), tg, Request{Operation: "get agent", Method: http.MethodGet, URL: tg.URL("v1", "agents", "a1")}); err == nil {
		t.Fatal("expected error for 404")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", n)
	}
}

func TestDo_UnauthorizedExplainsCredential(t *testing.T) {
	t.Parallel()
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad token"}`))
	})
	_, err := Do(context.Background(), tg, Request{Operation: "list tags", Method: http.MethodGet, URL: tg.URL("v1", "tags")})
	if err == nil || !strings.HasPrefix(err.Error(), "Authentication failed (401 Unauthorized)") {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.HasSuffix(err.Error(), `Response: {"message":"bad token"}`) {
		t.Fatalf("body missing from message: %q", err.Error())
	}
}

func TestDo_NoContent(t *testing.T) {
	t.Parallel()
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	got, err := Do(context.Background(), tg, Request{Operation: "tag", Method: http.MethodPut, URL: tg.URL("v1", "conversations", "1", "tags", "2")})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if !strings.Contains(string(got), `"success":true`) {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	t.Parallel()
	var calls int32
	tg := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("<html>"))
	})
	_, err := Do(context.Background(), tg, Request{Operation: "get", Method: http.MethodGet, URL: tg.URL("v1", "tags")})
	if err == nil || !strings.Contains(err.Error(), "invalid JSON response from server: <html>") {
		t.Fatalf("unexpected error %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("invalid JSON must not be retried, got %d attempts", n)
	}
}

func TestDo_NetworkError(t *testing.T) {
	t.Parallel()
	tg := Target{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://example.invalid", Retry: RetryPolicy{}}
	_, err := Do(context.Background(), tg, Request{Operation: "get", Method: http.MethodGet, URL: tg.URL("v1", "tags")})
	if err == nil || !strings.HasPrefix(err.Error(), "Request failed: ") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDo_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tg := Target{HTTP: http.DefaultClient, BaseURL: "http://example.invalid"}
	if _, err := Do(ctx, tg, Request{Operation: "get", Method: http.MethodGet, URL: tg.URL("v1")}); !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTargetURL_EscapesSegments(t *testing.T) {
	t.Parallel()
	tg := Target{BaseURL: "https://dev.dixa.io/"}
	if got := tg.URL("v1", "endusers", "a/b c"); got != "https://dev.dixa.io/v1/endusers/a%2Fb%20c" {
		t.Fatalf("unexpected url %s", got)
	}
}
