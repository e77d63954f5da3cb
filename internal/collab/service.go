// Package collab orchestrates the conversation-to-specification pipeline:
// phase-aware chat, PRD generation with JSON recovery and validation, and
// project scaffolding. The service keeps no session state; every call receives the
// full turn history or specification it needs.
package collab

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
	"github.com/ideaforge/collaborator/internal/llm"
	"github.com/ideaforge/collaborator/internal/metrics"
	"github.com/ideaforge/collaborator/internal/prompt"
	"github.com/ideaforge/collaborator/internal/scaffold"
	"github.com/ideaforge/collaborator/internal/spec"
)

// Temperatures per operation. Chat stays creative, PRD generation needs
// consistent JSON, and the health probe matches the original probe call.
const (
	chatTemperature  = 0.9
	prdTemperature   = 0.1
	probeTemperature = 0.7
)

// Service ties the provider, prompts, and scaffold generator together.
type Service struct {
	provider  llm.Provider
	generator *scaffold.Generator
	specsDir  string
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewService creates the orchestration service. metrics may be nil.
func NewService(provider llm.Provider, generator *scaffold.Generator, specsDir string, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		provider:  provider,
		generator: generator,
		specsDir:  specsDir,
		metrics:   m,
		logger:    logger.With().Str("component", "collab").Logger(),
	}
}

// Chat runs one conversational exchange: selects the phase from the turn
// count, prepends the matching system turn, and returns the provider's raw
// reply. A single provider attempt, no retries.
func (s *Service) Chat(ctx context.Context, msgs []llm.Message) (string, error) {
	phase := prompt.SelectPhase(msgs)

	all := make([]llm.Message, 0, len(msgs)+1)
	all = append(all, llm.SystemMessage(prompt.SystemPrompt(phase)))
	all = append(all, msgs...)

	s.logger.Info().
		Str("phase", string(phase)).
		Int("turns", len(msgs)).
		Msg("chat request")

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    all,
		Temperature: chatTemperature,
	})
	if err != nil {
		s.metrics.RecordProviderCall("chat", "error")
		return "", err
	}
	s.metrics.RecordProviderCall("chat", "ok")
	return resp.Text, nil
}

// GeneratePRD asks the provider for a structured PRD over the full
// conversation, recovers the JSON object from the reply, and validates it.
func (s *Service) GeneratePRD(ctx context.Context, msgs []llm.Message) (*spec.ProjectSpecification, error) {
	all := make([]llm.Message, 0, len(msgs)+2)
	all = append(all, llm.SystemMessage(prompt.PRDSystemPrompt))
	all = append(all, msgs...)
	all = append(all, llm.UserMessage(prompt.PRDFormatInstruction))

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    all,
		Temperature: prdTemperature,
	})
	if err != nil {
		s.metrics.RecordProviderCall("generate_prd", "error")
		return nil, err
	}
	s.metrics.RecordProviderCall("generate_prd", "ok")

	data, err := spec.Extract(resp.Text)
	if err != nil {
		return nil, err
	}

	validated, err := spec.Validate(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("title", validated.Title).
		Int("features", len(validated.Features)).
		Msg("PRD generated")

	return validated, nil
}

// CreateProject scaffolds the project directory for a validated
// specification and returns where it was written.
func (s *Service) CreateProject(ctx context.Context, specification *spec.ProjectSpecification) (*scaffold.Result, error) {
	res, err := s.generator.Create(ctx, specification)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordProjectCreated()
	return res, nil
}

// SaveSpec writes the specification to specs/<slug>_spec.json and returns
// the file path. Used by the offline intake flow.
func (s *Service) SaveSpec(specification *spec.ProjectSpecification) (string, error) {
	if err := os.MkdirAll(s.specsDir, 0o755); err != nil {
		return "", &cerrors.FilesystemError{Path: s.specsDir, Err: err}
	}

	path := filepath.Join(s.specsDir, spec.Slug(specification.Title)+"_spec.json")
	data, err := json.MarshalIndent(specification, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &cerrors.FilesystemError{Path: path, Err: err}
	}

	s.logger.Info().Str("path", path).Msg("specification saved")
	return path, nil
}

// Ping exercises the provider with a trivial prompt. Used by the health probe.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{llm.UserMessage("test")},
		Temperature: probeTemperature,
	})
	if err != nil {
		s.metrics.RecordProviderCall("health", "error")
		return err
	}
	s.metrics.RecordProviderCall("health", "ok")
	return nil
}

// ModelID reports the provider's configured model.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}
