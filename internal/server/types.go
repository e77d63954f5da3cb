package server

import "github.com/ideaforge/collaborator/internal/llm"

// ChatRequest is the body of POST /chat and POST /generate-prd: the full
// ordered turn history held by the client.
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

// ChatResponse carries the provider's raw reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of every failure response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// InfoResponse documents an endpoint for GET requests against POST routes.
type InfoResponse struct {
	Message string `json:"message"`
	Example any    `json:"example"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	MistralAPI string `json:"mistral_api,omitempty"`
	Error      string `json:"error,omitempty"`
}
