package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaforge/collaborator/internal/spec"
)

func taskTracker() *spec.ProjectSpecification {
	return &spec.ProjectSpecification{
		Title:       "Task Tracker",
		Description: "A lightweight tracker for personal tasks.",
		Features: []spec.Feature{
			{Name: "Add task", Description: "Create a task with a title", Priority: "High"},
			{Name: "Complete task", Description: "Mark a task done", Priority: "Medium"},
		},
		Technologies: []spec.Technology{
			{Name: "React", Purpose: "UI"},
			{Name: "Express", Purpose: "API server"},
		},
		Architecture: spec.Architecture{
			Type: "Client-Server",
			Components: []spec.Component{
				{Name: "API", Purpose: "serve data", Interactions: []string{"DB", "Frontend"}},
			},
		},
		ImplementationPlan: []spec.Phase{
			{Phase: "MVP", Duration: "1 week", Tasks: []spec.Task{
				{Name: "Setup", Duration: "1 day"},
				{Name: "CRUD endpoints", Duration: "3 days"},
			}},
		},
		ProjectLinks: spec.CanonicalLinks("Task Tracker"),
	}
}

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	return NewGenerator(dir, DefaultLayout(), zerolog.Nop()), dir
}

func TestCreate_DirectoryTree(t *testing.T) {
	g, dir := newTestGenerator(t)

	res, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)

	projectDir := filepath.Join(dir, "task_tracker")
	for _, sub := range []string{"src/frontend", "src/backend", "src/shared", "docs", "tests"} {
		info, err := os.Stat(filepath.Join(projectDir, sub))
		require.NoError(t, err, sub)
		assert.True(t, info.IsDir())
	}

	assert.True(t, filepath.IsAbs(res.ProjectDir))
	assert.Equal(t, "http://localhost:3000", res.FrontendURL)
	assert.Equal(t, "http://localhost:3001", res.BackendURL)
}

func TestCreate_ReadmeContent(t *testing.T) {
	g, dir := newTestGenerator(t)

	_, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(dir, "task_tracker", "README.md"))
	require.NoError(t, err)

	assert.Contains(t, string(readme), "# Task Tracker")
	assert.Contains(t, string(readme), "- Add task: Create a task with a title")
	assert.Contains(t, string(readme), "- Complete task: Mark a task done")
	assert.Contains(t, string(readme), "IMPLEMENTATION_GUIDE.md")
}

func TestCreate_EnvContent(t *testing.T) {
	g, dir := newTestGenerator(t)

	_, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)

	env, err := os.ReadFile(filepath.Join(dir, "task_tracker", ".env"))
	require.NoError(t, err)

	assert.Contains(t, string(env), "PORT=3000")
	assert.Contains(t, string(env), "API_PORT=3001")
	assert.Contains(t, string(env), "NODE_ENV=development")
}

func TestCreate_GuideContent(t *testing.T) {
	g, dir := newTestGenerator(t)

	_, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)

	guide, err := os.ReadFile(filepath.Join(dir, "task_tracker", "IMPLEMENTATION_GUIDE.md"))
	require.NoError(t, err)
	text := string(guide)

	assert.Contains(t, text, "# Project Implementation Guide: Task Tracker")
	assert.Contains(t, text, "- [ ] **Add task** (Priority: High)")
	assert.Contains(t, text, "- [ ] **React**: UI")
	assert.Contains(t, text, "**Type:** Client-Server")
	assert.Contains(t, text, "Interactions: DB, Frontend")
	assert.Contains(t, text, "### Phase 1: MVP (1 week)")
	assert.Contains(t, text, "- [ ] Setup (1 day)")
}

func TestCreate_Deterministic(t *testing.T) {
	g, dir := newTestGenerator(t)

	_, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)
	readme1, _ := os.ReadFile(filepath.Join(dir, "task_tracker", "README.md"))
	env1, _ := os.ReadFile(filepath.Join(dir, "task_tracker", ".env"))

	_, err = g.Create(context.Background(), taskTracker())
	require.NoError(t, err)
	readme2, _ := os.ReadFile(filepath.Join(dir, "task_tracker", "README.md"))
	env2, _ := os.ReadFile(filepath.Join(dir, "task_tracker", ".env"))

	assert.Equal(t, readme1, readme2)
	assert.Equal(t, env1, env2)
}

func TestCreate_PreservesUnrelatedFiles(t *testing.T) {
	g, dir := newTestGenerator(t)

	projectDir := filepath.Join(dir, "task_tracker")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	unrelated := filepath.Join(projectDir, "NOTES.md")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep me"), 0o644))

	_, err := g.Create(context.Background(), taskTracker())
	require.NoError(t, err)

	content, err := os.ReadFile(unrelated)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestCreate_CancelledContext(t *testing.T) {
	g, dir := newTestGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Create(ctx, taskTracker())
	require.ErrorIs(t, err, context.Canceled)

	// Nothing was written.
	_, statErr := os.Stat(filepath.Join(dir, "task_tracker"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadLayout_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaffold.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dirs:\n  - app\n  - migrations\n"), 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"app", "migrations"}, layout.Dirs)
	// env_file not set in the override, so the default stays.
	assert.Contains(t, layout.EnvFile, "PORT=3000")
}

func TestLoadLayout_MissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
