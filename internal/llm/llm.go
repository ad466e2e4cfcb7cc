// Package llm talks to an OpenAI-compatible chat completion endpoint.
// Complete never returns a Go error: every failure is folded into an
// Outcome so callers can always produce a usable reply for the learner.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// FailureKind classifies why a completion attempt produced no content.
type FailureKind string

const (
	FailureNone              FailureKind = ""
	FailureTimeout           FailureKind = "timeout"
	FailureTransport         FailureKind = "transport"
	FailureHTTPError         FailureKind = "http_error"
	FailureMalformedResponse FailureKind = "malformed_response"
	FailureUnexpectedShape   FailureKind = "unexpected_shape"
)

// Outcome is the result of one completion attempt. On success Content
// holds the model's reply. On failure Kind says what went wrong and
// FallbackText, when non-empty, is a ready apology the caller may show
// if it has nothing better.
type Outcome struct {
	Success      bool
	Content      string
	Kind         FailureKind
	Message      string
	StatusCode   int
	RawBody      string
	FallbackText string
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	rawBodyLimit       = 500
)

const apologyText = "Sorry, the tutoring service is temporarily unavailable. " +
	"Please try again in a moment."

type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// New builds a client for the given chat completions endpoint. The
// timeout bounds the whole request including reading the body.
func New(endpoint, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: timeout},
	}
}

// Complete sends the messages to the model and folds any failure into
// the returned Outcome.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) Outcome {
	reqBody := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Outcome{
			Kind:    FailureTransport,
			Message: fmt.Sprintf("encode request: %v", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Outcome{
			Kind:    FailureTransport,
			Message: fmt.Sprintf("build request: %v", err),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			slog.Warn("completion request timed out", "endpoint", c.endpoint)
			return Outcome{
				Kind:         FailureTimeout,
				Message:      err.Error(),
				FallbackText: apologyText,
			}
		}
		slog.Warn("completion request failed", "endpoint", c.endpoint, "error", err)
		return Outcome{
			Kind:         FailureTransport,
			Message:      err.Error(),
			FallbackText: apologyText,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{
			Kind:         FailureTransport,
			Message:      fmt.Sprintf("read response: %v", err),
			StatusCode:   resp.StatusCode,
			FallbackText: apologyText,
		}
	}

	// Decode before checking the status: error bodies from the
	// provider are JSON too, and their detail is worth logging.
	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		slog.Warn("completion response is not valid JSON",
			"status", resp.StatusCode, "body", bodyPrefix(body))
		return Outcome{
			Kind:         FailureMalformedResponse,
			Message:      fmt.Sprintf("decode response: %v", err),
			StatusCode:   resp.StatusCode,
			RawBody:      bodyPrefix(body),
			FallbackText: apologyText,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("completion request rejected",
			"status", resp.StatusCode, "body", bodyPrefix(body))
		return Outcome{
			Kind:         FailureHTTPError,
			Message:      fmt.Sprintf("provider returned status %d", resp.StatusCode),
			StatusCode:   resp.StatusCode,
			RawBody:      bodyPrefix(body),
			FallbackText: apologyText,
		}
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		slog.Warn("completion response has no content", "status", resp.StatusCode)
		return Outcome{
			Kind:         FailureUnexpectedShape,
			Message:      "response contained no choices",
			StatusCode:   resp.StatusCode,
			RawBody:      bodyPrefix(body),
			FallbackText: apologyText,
		}
	}

	return Outcome{
		Success:    true,
		Content:    completion.Choices[0].Message.Content,
		StatusCode: resp.StatusCode,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

func bodyPrefix(body []byte) string {
	if len(body) > rawBodyLimit {
		return string(body[:rawBodyLimit])
	}
	return string(body)
}
