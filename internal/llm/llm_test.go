package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func testMessages() []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a reading tutor."},
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	}
}

func TestCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "deepseek-chat", 5*time.Second)
	out := c.Complete(context.Background(), testMessages())
	if !out.Success {
		t.Fatalf("expected success, got kind=%s message=%s", out.Kind, out.Message)
	}
	if out.Content != "Hi there" {
		t.Errorf("Content = %q, want %q", out.Content, "Hi there")
	}
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", 5*time.Second)
	out := c.Complete(context.Background(), testMessages())
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Kind != FailureHTTPError {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureHTTPError)
	}
	if out.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", out.StatusCode)
	}
	if out.RawBody == "" {
		t.Error("RawBody should carry the error body")
	}
	if out.FallbackText == "" {
		t.Error("FallbackText should be set on HTTP errors")
	}
}

func TestCompleteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", 5*time.Second)
	out := c.Complete(context.Background(), testMessages())
	if out.Kind != FailureMalformedResponse {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureMalformedResponse)
	}
	if out.RawBody != `<html>gateway error</html>` {
		t.Errorf("RawBody = %q", out.RawBody)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", 5*time.Second)
	out := c.Complete(context.Background(), testMessages())
	if out.Kind != FailureUnexpectedShape {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureUnexpectedShape)
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", 50*time.Millisecond)
	out := c.Complete(context.Background(), testMessages())
	if out.Kind != FailureTimeout {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureTimeout)
	}
	if out.FallbackText == "" {
		t.Error("FallbackText should be set on timeouts")
	}
}

func TestCompleteContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	out := c.Complete(ctx, testMessages())
	if out.Kind != FailureTimeout {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureTimeout)
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, "k", "m", 5*time.Second)
	out := c.Complete(context.Background(), testMessages())
	if out.Kind != FailureTransport {
		t.Errorf("Kind = %s, want %s", out.Kind, FailureTransport)
	}
	if out.Success {
		t.Error("expected failure")
	}
}
