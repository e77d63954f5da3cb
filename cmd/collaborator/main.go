// Command collaborator runs the AI Creative Collaborator backend: a chat
// front-end that turns freeform product ideas into a structured PRD and
// scaffolds a project directory from it.
//
// Usage:
//
//	MISTRAL_API_KEY=... collaborator
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ideaforge/collaborator/internal/collab"
	"github.com/ideaforge/collaborator/internal/config"
	"github.com/ideaforge/collaborator/internal/health"
	"github.com/ideaforge/collaborator/internal/llm"
	"github.com/ideaforge/collaborator/internal/metrics"
	"github.com/ideaforge/collaborator/internal/scaffold"
	"github.com/ideaforge/collaborator/internal/server"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Int("http_port", cfg.HTTPPort).
		Str("model", cfg.ModelName).
		Str("output_dir", cfg.OutputDir).
		Msg("starting collaborator")

	provider := llm.NewMistralProvider(
		cfg.MistralAPIKey,
		llm.WithModel(cfg.ModelName),
		llm.WithLogger(logger),
	)

	layout := scaffold.DefaultLayout()
	if cfg.ScaffoldLayout != "" {
		layout, err = scaffold.LoadLayout(cfg.ScaffoldLayout)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.ScaffoldLayout).Msg("falling back to default scaffold layout")
		}
	}

	m := metrics.New()
	generator := scaffold.NewGenerator(cfg.OutputDir, layout, logger)
	service := collab.NewService(provider, generator, cfg.SpecsDir, m, logger)

	checker := health.NewChecker(logger)
	checker.Register("mistral", func(ctx context.Context) error {
		return service.Ping(ctx)
	})

	srv := server.NewServer(server.Config{
		ListenAddr:      fmt.Sprintf(":%d", cfg.HTTPPort),
		CORSOrigins:     cfg.CORSOrigins,
		ChatTimeout:     cfg.ChatTimeout,
		PRDTimeout:      cfg.PRDTimeout,
		ScaffoldTimeout: cfg.ScaffoldTimeout,
	}, service, checker, m, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}
}
