package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
)

const (
	mistralAPIBase = "https://api.mistral.ai/v1"
	defaultModel   = "mistral-large-latest"
)

// MistralProvider implements Provider using the Mistral chat completions API.
type MistralProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// MistralOption configures the provider.
type MistralOption func(*MistralProvider)

func WithModel(model string) MistralOption {
	return func(p *MistralProvider) { p.model = model }
}

func WithBaseURL(url string) MistralOption {
	return func(p *MistralProvider) { p.baseURL = url }
}

func WithHTTPClient(c *http.Client) MistralOption {
	return func(p *MistralProvider) { p.client = c }
}

func WithLogger(l zerolog.Logger) MistralOption {
	return func(p *MistralProvider) { p.logger = l }
}

// NewMistralProvider constructs a new Mistral provider.
func NewMistralProvider(apiKey string, opts ...MistralOption) *MistralProvider {
	p := &MistralProvider{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: mistralAPIBase,
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(p)
	}
	p.logger = p.logger.With().Str("component", "mistral").Logger()
	return p
}

func (p *MistralProvider) ModelID() string { return p.model }

// ---- Mistral wire types ----

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralRequest struct {
	Model       string           `json:"model"`
	Messages    []mistralMessage `json:"messages"`
	Temperature float64          `json:"temperature,omitempty"`
}

type mistralResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type mistralError struct {
	Object  string `json:"object"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (p *MistralProvider) buildRequest(req CompletionRequest) mistralRequest {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	msgs := make([]mistralMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, mistralMessage{Role: m.Role, Content: m.Content})
	}

	return mistralRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: req.Temperature,
	}
}

// Complete sends a blocking completion request. A single attempt: transport
// failures, non-2xx statuses, and empty replies all surface as ProviderError.
func (p *MistralProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	mr := p.buildRequest(req)

	body, err := json.Marshal(mr)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &cerrors.ProviderError{Provider: "mistral", Message: "request timed out", Err: cerrors.ErrTimeout}
		}
		return nil, &cerrors.ProviderError{Provider: "mistral", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &cerrors.ProviderError{Provider: "mistral", StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr mistralError
		msg := string(raw)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return nil, cerrors.NewProviderError("mistral", resp.StatusCode, msg)
	}

	var mresp mistralResponse
	if err := json.Unmarshal(raw, &mresp); err != nil {
		return nil, &cerrors.ProviderError{Provider: "mistral", StatusCode: resp.StatusCode, Message: "unmarshal response", Err: err}
	}

	if len(mresp.Choices) == 0 || mresp.Choices[0].Message.Content == "" {
		return nil, cerrors.NewProviderError("mistral", resp.StatusCode, "response contained no extractable text")
	}

	out := &CompletionResponse{
		Text:             mresp.Choices[0].Message.Content,
		FinishReason:     mresp.Choices[0].FinishReason,
		PromptTokens:     mresp.Usage.PromptTokens,
		CompletionTokens: mresp.Usage.CompletionTokens,
	}

	p.logger.Debug().
		Str("model", mr.Model).
		Str("finish_reason", out.FinishReason).
		Int("prompt_tokens", out.PromptTokens).
		Int("completion_tokens", out.CompletionTokens).
		Msg("mistral complete")

	return out, nil
}
