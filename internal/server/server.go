// Package server exposes the collaborator pipeline over HTTP: chat,
// generate-prd, and create-project, plus health and metrics. The server
// holds no session state; clients send the full turn history every call.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/ideaforge/collaborator/internal/collab"
	cerrors "github.com/ideaforge/collaborator/internal/errors"
	"github.com/ideaforge/collaborator/internal/health"
	"github.com/ideaforge/collaborator/internal/metrics"
	"github.com/ideaforge/collaborator/internal/requestid"
)

// Config holds the server's listen address, CORS origins, and the
// per-operation timeouts.
type Config struct {
	ListenAddr      string
	CORSOrigins     string
	ChatTimeout     time.Duration
	PRDTimeout      time.Duration
	ScaffoldTimeout time.Duration
}

// Server is the HTTP surface over the collaborator service.
type Server struct {
	app     *fiber.App
	service *collab.Service
	checker *health.Checker
	metrics *metrics.Metrics
	logger  zerolog.Logger
	cfg     Config
}

// NewServer creates and configures the Fiber application.
func NewServer(cfg Config, svc *collab.Service, checker *health.Checker, m *metrics.Metrics, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{
		app:     app,
		service: svc,
		checker: checker,
		metrics: m,
		logger:  logger.With().Str("component", "server").Logger(),
		cfg:     cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Request ID middleware
	s.app.Use(func(c *fiber.Ctx) error {
		ctx, reqID := requestid.Ensure(c.UserContext(), c.Get(requestid.Header))
		c.SetUserContext(ctx)
		c.Set(requestid.Header, reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	if s.cfg.CORSOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}

	// Request log + metrics middleware
	s.app.Use(func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/health" || path == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		s.metrics.RecordRequest(path, fmt.Sprintf("%d", status))
		s.metrics.ObserveDuration(path, elapsed.Seconds())

		s.logger.Info().
			Str("method", c.Method()).
			Str("path", path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("request_id", fmt.Sprintf("%v", c.Locals("request_id"))).
			Msg("http request")

		return err
	})
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.Health)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	s.app.Get("/chat", s.ChatInfo)
	s.app.Post("/chat", s.Chat)
	s.app.Get("/generate-prd", s.PRDInfo)
	s.app.Post("/generate-prd", s.GeneratePRD)
	s.app.Post("/create-project", s.CreateProject)

	// Fallback: distinguish an unknown path from a known path hit with the
	// wrong method.
	s.app.Use(s.fallback)
}

func (s *Server) fallback(c *fiber.Ctx) error {
	path := c.Path()
	method := c.Method()

	for _, route := range s.app.GetRoutes(true) {
		if route.Path == path && route.Method != method && route.Method != fiber.MethodHead {
			return c.Status(fiber.StatusMethodNotAllowed).JSON(ErrorResponse{
				Detail: fmt.Sprintf("Method %s not allowed for %s", method, path),
			})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Detail: fmt.Sprintf("Endpoint %s not found", path),
	})
}

// Start starts the server. Blocks until stopped.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("server starting")
	return s.app.Listen(s.cfg.ListenAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("server shutting down")
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler maps the error taxonomy onto JSON responses. Every domain
// failure (provider, parse, validation, filesystem) becomes a 500 with a
// human-readable detail string; nothing is retried here.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		detail := err.Error()

		var fiberErr *fiber.Error
		var provErr *cerrors.ProviderError
		var parseErr *cerrors.UnparsableResponseError
		var incErr *cerrors.IncompleteSpecificationError
		var fsErr *cerrors.FilesystemError

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			detail = fiberErr.Message
		case errors.As(err, &provErr):
			switch {
			case errors.Is(provErr, cerrors.ErrTimeout):
				detail = "The completion provider did not respond in time"
			case c.Path() == "/chat":
				detail = "Error processing chat request: " + provErr.Error()
			default:
				detail = provErr.Error()
			}
		case errors.As(err, &parseErr):
			detail = "Failed to parse JSON from the provider's response. Response: " + parseErr.Snippet
		case errors.As(err, &incErr):
			detail = err.Error()
		case errors.As(err, &fsErr):
			detail = err.Error()
		}

		logger.Error().
			Err(err).
			Int("status", code).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Msg("request failed")

		return c.Status(code).JSON(ErrorResponse{Detail: detail})
	}
}
