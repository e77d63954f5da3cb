// Package scaffold turns a validated project specification into an on-disk
// project skeleton: directories plus a deterministic set of generated files.
package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
	"github.com/ideaforge/collaborator/internal/spec"
)

// Result reports where a project was scaffolded.
type Result struct {
	ProjectDir  string `json:"project_dir"`
	FrontendURL string `json:"frontend_url"`
	BackendURL  string `json:"backend_url"`
}

// Generator writes project skeletons under a fixed output directory.
type Generator struct {
	outputDir string
	layout    Layout
	logger    zerolog.Logger
}

// NewGenerator creates a generator rooted at outputDir.
func NewGenerator(outputDir string, layout Layout, logger zerolog.Logger) *Generator {
	return &Generator{
		outputDir: outputDir,
		layout:    layout,
		logger:    logger.With().Str("component", "scaffold").Logger(),
	}
}

// templateData wraps the specification with fields only the templates need.
type templateData struct {
	spec.ProjectSpecification
	ProjectDir string
}

// Create scaffolds the project directory for s. The directory is created if
// absent and reused otherwise; files this generator owns are overwritten,
// anything else already present is left alone. Output is purely a function
// of the specification, so re-running with the same input produces
// byte-identical files.
func (g *Generator) Create(ctx context.Context, s *spec.ProjectSpecification) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projectDir := filepath.Join(g.outputDir, spec.Slug(s.Title))
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, &cerrors.FilesystemError{Path: projectDir, Err: err}
	}

	data := templateData{ProjectSpecification: *s, ProjectDir: projectDir}

	files := []struct {
		name string
		tmpl *template.Template
	}{
		{"IMPLEMENTATION_GUIDE.md", guideTmpl},
		{"PRD.md", prdTmpl},
		{"README.md", readmeTmpl},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.writeTemplate(filepath.Join(projectDir, f.name), f.tmpl, data); err != nil {
			return nil, err
		}
	}

	envPath := filepath.Join(projectDir, ".env")
	if err := os.WriteFile(envPath, []byte(g.layout.EnvFile), 0o644); err != nil {
		return nil, &cerrors.FilesystemError{Path: envPath, Err: err}
	}

	for _, d := range g.layout.Dirs {
		sub := filepath.Join(projectDir, d)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return nil, &cerrors.FilesystemError{Path: sub, Err: err}
		}
	}

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		absDir = projectDir
	}

	g.logger.Info().
		Str("project", s.Title).
		Str("dir", absDir).
		Int("features", len(s.Features)).
		Msg("project scaffolded")

	return &Result{
		ProjectDir:  absDir,
		FrontendURL: spec.FrontendURL,
		BackendURL:  spec.BackendURL,
	}, nil
}

func (g *Generator) writeTemplate(path string, tmpl *template.Template, data templateData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return &cerrors.FilesystemError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &cerrors.FilesystemError{Path: path, Err: err}
	}
	return nil
}
