package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
)

func completionBody(content string) string {
	resp := map[string]any{
		"id":    "cmpl-123",
		"model": "mistral-large-latest",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestComplete_Success(t *testing.T) {
	var gotReq mistralRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("hello there")))
	}))
	defer srv.Close()

	p := NewMistralProvider("test-key", WithBaseURL(srv.URL), WithModel("mistral-small-latest"))
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			SystemMessage("be helpful"),
			UserMessage("hi"),
		},
		Temperature: 0.9,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 10, resp.PromptTokens)
	assert.Equal(t, 20, resp.CompletionTokens)

	assert.Equal(t, "mistral-small-latest", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, RoleSystem, gotReq.Messages[0].Role)
	assert.InDelta(t, 0.9, gotReq.Temperature, 0.001)
}

func TestComplete_ModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req mistralRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "mistral-medium", req.Model)
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	p := NewMistralProvider("k", WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{UserMessage("hi")},
		Model:    "mistral-medium",
	})
	require.NoError(t, err)
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"object":"error","message":"invalid api key","type":"authentication_error"}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("bad-key", WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{UserMessage("hi")}})
	require.Error(t, err)

	var provErr *cerrors.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Contains(t, provErr.Message, "invalid api key")
	assert.False(t, cerrors.IsRetryable(err))
}

func TestComplete_ServerError_IsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewMistralProvider("k", WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{UserMessage("hi")}})
	require.Error(t, err)
	assert.True(t, cerrors.IsRetryable(err))
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cmpl-1","choices":[]}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("k", WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{UserMessage("hi")}})
	require.Error(t, err)

	var provErr *cerrors.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Message, "no extractable text")
}

func TestComplete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionBody("too late")))
	}))
	defer srv.Close()

	p := NewMistralProvider("k", WithBaseURL(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, CompletionRequest{Messages: []Message{UserMessage("hi")}})
	require.Error(t, err)
	assert.ErrorIs(t, err, cerrors.ErrTimeout)
}

func TestCountByRole(t *testing.T) {
	msgs := []Message{
		UserMessage("a"),
		{Role: RoleAssistant, Content: "b"},
		UserMessage("c"),
		SystemMessage("d"),
	}
	assert.Equal(t, 2, CountByRole(msgs, RoleUser))
	assert.Equal(t, 1, CountByRole(msgs, RoleAssistant))
	assert.Equal(t, 1, CountByRole(msgs, RoleSystem))
	assert.Equal(t, 0, CountByRole(nil, RoleUser))
}
