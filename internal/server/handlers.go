package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ideaforge/collaborator/internal/llm"
	"github.com/ideaforge/collaborator/internal/spec"
)

// serviceName appears in the health response, matching the product name.
const serviceName = "AI Creative Collaborator"

// Health handles GET /health: exercises the completion client with a trivial
// prompt as a liveness probe.
func (s *Server) Health(c *fiber.Ctx) error {
	results := s.checker.Run(c.UserContext())
	if err := results["mistral"]; err != nil {
		return c.JSON(HealthResponse{
			Status:  "unhealthy",
			Service: serviceName,
			Error:   err.Error(),
		})
	}
	return c.JSON(HealthResponse{
		Status:     "healthy",
		Service:    serviceName,
		MistralAPI: "connected",
	})
}

// ChatInfo handles GET /chat.
func (s *Server) ChatInfo(c *fiber.Ctx) error {
	return c.JSON(InfoResponse{
		Message: "This endpoint accepts POST requests with a ChatRequest body",
		Example: ChatRequest{Messages: []llm.Message{{Role: "user", Content: "Your message here"}}},
	})
}

// PRDInfo handles GET /generate-prd.
func (s *Server) PRDInfo(c *fiber.Ctx) error {
	return c.JSON(InfoResponse{
		Message: "This endpoint accepts POST requests with a ChatRequest body to generate a PRD",
		Example: ChatRequest{Messages: []llm.Message{{Role: "user", Content: "I want to build a task management app"}}},
	})
}

// Chat handles POST /chat.
func (s *Server) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if len(req.Messages) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "messages is required")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.ChatTimeout)
	defer cancel()

	reply, err := s.service.Chat(ctx, req.Messages)
	if err != nil {
		return err
	}
	return c.JSON(ChatResponse{Response: reply})
}

// GeneratePRD handles POST /generate-prd.
func (s *Server) GeneratePRD(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if len(req.Messages) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "messages is required")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.PRDTimeout)
	defer cancel()

	specification, err := s.service.GeneratePRD(ctx, req.Messages)
	if err != nil {
		return err
	}
	return c.JSON(specification)
}

// CreateProject handles POST /create-project. The body runs through the same
// required-field validation as a generated PRD, so a caller cannot scaffold
// from a partial specification (an empty title would write into the output
// root itself).
func (s *Server) CreateProject(c *fiber.Ctx) error {
	specification, err := spec.Validate(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project specification: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.ScaffoldTimeout)
	defer cancel()

	res, err := s.service.CreateProject(ctx, specification)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
