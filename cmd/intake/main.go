// Command intake is the offline idea-intake wizard: a terminal conversation
// that refines a product idea, generates a PRD, and saves it to
// specs/<slug>_spec.json without running the HTTP server.
//
// Unlike the server, the intake flow retries transient provider failures.
//
// Usage:
//
//	MISTRAL_API_KEY=... intake
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ideaforge/collaborator/internal/collab"
	"github.com/ideaforge/collaborator/internal/config"
	"github.com/ideaforge/collaborator/internal/llm"
	"github.com/ideaforge/collaborator/internal/retry"
	"github.com/ideaforge/collaborator/internal/scaffold"
	"github.com/ideaforge/collaborator/internal/spec"
)

const welcome = `IDEA INTAKE

Describe your product idea and I'll ask questions to refine it.
Commands: 'prd' to generate the specification, 'exit' to quit.`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	provider := llm.NewMistralProvider(
		cfg.MistralAPIKey,
		llm.WithModel(cfg.ModelName),
		llm.WithLogger(logger),
	)
	generator := scaffold.NewGenerator(cfg.OutputDir, scaffold.DefaultLayout(), logger)
	service := collab.NewService(provider, generator, cfg.SpecsDir, nil, logger)

	fmt.Println(welcome)

	var history []llm.Message
	scanner := bufio.NewScanner(os.Stdin)
	retryCfg := retry.DefaultConfig()

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			continue
		case strings.EqualFold(input, "exit"):
			fmt.Println("Goodbye!")
			return
		case strings.EqualFold(input, "prd"):
			if len(history) == 0 {
				fmt.Println("Describe your idea first.")
				continue
			}
			if err := generatePRD(cfg, service, retryCfg, history); err != nil {
				fmt.Fprintln(os.Stderr, "PRD generation failed:", err)
			}
			return
		}

		history = append(history, llm.UserMessage(input))

		var reply string
		err := retry.Do(context.Background(), retryCfg, func(ctx context.Context) error {
			callCtx, cancel := context.WithTimeout(ctx, cfg.ChatTimeout)
			defer cancel()
			var callErr error
			reply, callErr = service.Chat(callCtx, history)
			return callErr
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "chat failed:", err)
			history = history[:len(history)-1]
			continue
		}

		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})
		fmt.Println("\n" + reply)
	}
}

func generatePRD(cfg *config.Config, service *collab.Service, retryCfg retry.Config, history []llm.Message) error {
	fmt.Println("Generating PRD...")

	var specification *spec.ProjectSpecification
	err := retry.Do(context.Background(), retryCfg, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, cfg.PRDTimeout)
		defer cancel()
		var callErr error
		specification, callErr = service.GeneratePRD(callCtx, history)
		return callErr
	})
	if err != nil {
		return err
	}

	path, err := service.SaveSpec(specification)
	if err != nil {
		return err
	}
	fmt.Printf("Specification for %q saved to %s\n", specification.Title, path)

	fmt.Print("Scaffold the project directory now? [y/N] ")
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
		scaffoldCtx, cancel := context.WithTimeout(context.Background(), cfg.ScaffoldTimeout)
		defer cancel()
		res, err := service.CreateProject(scaffoldCtx, specification)
		if err != nil {
			return err
		}
		fmt.Println("Project scaffolded at", res.ProjectDir)
	}
	return nil
}
