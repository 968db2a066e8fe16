package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	out := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(&strings.Builder{})
	root.SetArgs(append([]string{"--base-url", srvURL}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_APIInfoAndConversation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/organization", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test_1234567890" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"data":{"id":"org-1"}}`))
	})
	mux.HandleFunc("/v1/conversations/42/notes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"n1"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("DIXA_API_KEY", "sk_test_1234567890")

	out, err := runCLI(t, srv.URL, "api-info")
	if err != nil {
		t.Fatalf("api-info failed: %v", err)
	}
	if !strings.Contains(out, `"masked": "sk_t...7890"`) || !strings.Contains(out, `"id": "org-1"`) {
		t.Fatalf("unexpected api-info output:\n%s", out)
	}

	out, err = runCLI(t, srv.URL, "get-conversation", "42", "--part", "notes")
	if err != nil {
		t.Fatalf("get-conversation failed: %v", err)
	}
	if !strings.Contains(out, `"id": "n1"`) {
		t.Fatalf("unexpected notes output:\n%s", out)
	}
}

func TestCLI_MissingKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	}))
	defer srv.Close()

	t.Setenv("DIXA_API_KEY", "")

	if _, err := runCLI(t, srv.URL, "list-tags"); err == nil || !strings.Contains(err.Error(), "DIXA_API_KEY") {
		t.Fatalf("expected configuration error, got %v", err)
	}

	// api-info never fails; it reports the problem in the document.
	out, err := runCLI(t, srv.URL, "api-info")
	if err != nil {
		t.Fatalf("api-info failed: %v", err)
	}
	if !strings.Contains(out, `"is_set": false`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCLI_UnknownPart(t *testing.T) {
	t.Setenv("DIXA_API_KEY", "sk_test_1234567890")
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := runCLI(t, srv.URL, "get-conversation", "42", "--part", "attachments"); err == nil {
		t.Fatalf("expected error for unknown part")
	}
}
