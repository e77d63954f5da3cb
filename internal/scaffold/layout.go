package scaffold

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes the directory skeleton and env file written into every
// generated project. The built-in default matches the standard frontend /
// backend / shared split; a YAML file can override it.
type Layout struct {
	// Dirs are created empty under the project directory.
	Dirs []string `yaml:"dirs"`

	// EnvFile is the full content of the generated .env file.
	EnvFile string `yaml:"env_file"`
}

const defaultEnvFile = `# Environment Configuration
PORT=3000
API_PORT=3001
NODE_ENV=development

# Add any API keys or secrets below (but don't commit them to version control)
# API_KEY=your_api_key_here
`

// DefaultLayout returns the built-in project layout.
func DefaultLayout() Layout {
	return Layout{
		Dirs: []string{
			"src/frontend",
			"src/backend",
			"src/shared",
			"docs",
			"tests",
		},
		EnvFile: defaultEnvFile,
	}
}

// LoadLayout reads a layout override from a YAML file. Fields left empty in
// the file keep their defaults.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("read layout file: %w", err)
	}

	var override Layout
	if err := yaml.Unmarshal(data, &override); err != nil {
		return layout, fmt.Errorf("parse layout file %s: %w", path, err)
	}

	if len(override.Dirs) > 0 {
		layout.Dirs = override.Dirs
	}
	if override.EnvFile != "" {
		layout.EnvFile = override.EnvFile
	}
	return layout, nil
}
