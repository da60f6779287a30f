// Package config handles the optional envup project configuration file.
//
// A project may carry an .envup config file overriding the default
// virtual environment directory, manifest path, base interpreter, and
// extra installer arguments. Both JSONC (JSON with Comments) and YAML
// variants are accepted: JSONC files are stripped with
// github.com/tidwall/jsonc before parsing with the standard
// encoding/json library, YAML files are parsed with gopkg.in/yaml.v3.
//
// The config file is entirely optional — with no file present, Default()
// values apply and the bootstrapper behaves exactly as if unconfigured:
// ".venv" in the working directory, "requirements.txt" as the manifest,
// "python3" as the base interpreter.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/envup/internal/model"
)

// Default values applied when the config file is absent or a field
// is left unset. These reproduce the classic bootstrap script behavior.
const (
	// DefaultVenvDir is the virtual environment directory name.
	DefaultVenvDir = ".venv"

	// DefaultManifest is the dependency manifest file name.
	DefaultManifest = "requirements.txt"

	// DefaultPython is the base interpreter used to create the
	// virtual environment. "python3" is tried first at discovery time;
	// see the venv package for the PATH fallback chain.
	DefaultPython = "python3"
)

// candidateFiles lists the config file names probed by Discover,
// in priority order. The first existing file wins; later candidates
// are ignored even if present.
var candidateFiles = []string{
	".envup.jsonc",
	".envup.json",
	".envup.yaml",
	".envup.yml",
}

// Config holds the project-level bootstrap settings.
//
// Field tags cover both accepted formats: json tags serve the JSONC/JSON
// variants, yaml tags the YAML variants. Unset fields fall back to the
// package defaults via ApplyDefaults.
type Config struct {
	// Python is the base interpreter used to create the environment.
	Python string `json:"python,omitempty" yaml:"python,omitempty"`

	// VenvDir is the virtual environment directory, relative to the
	// project root.
	VenvDir string `json:"venvDir,omitempty" yaml:"venvDir,omitempty"`

	// Manifest is the dependency manifest path, relative to the
	// project root.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// PipArgs are extra arguments appended to every installer
	// invocation (e.g. ["--quiet"] or ["--index-url", "..."]).
	PipArgs []string `json:"pipArgs,omitempty" yaml:"pipArgs,omitempty"`
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		Python:   DefaultPython,
		VenvDir:  DefaultVenvDir,
		Manifest: DefaultManifest,
	}
}

// Discover searches the project directory for a config file, probing
// the candidate names in priority order.
//
// Returns the path of the first existing candidate, or an empty string
// when no config file is present. Absence is a valid state, not an error.
func Discover(projectDir string) string {
	for _, name := range candidateFiles {
		path := filepath.Join(projectDir, name)
		// os.Stat rather than os.Open: we only need existence here,
		// Load performs the actual read.
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and parses the config file at the given path, dispatching
// on the file extension: .yaml/.yml go through the YAML parser,
// everything else through the JSONC parser.
//
// Unset fields are filled with defaults and the result is validated.
// Returns a model.CLIError with ExitConfigError on any parse or
// validation failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		// Strip JSONC comments (// and /* */) and trailing commas before
		// parsing. Plain JSON passes through jsonc.ToJSON unchanged, so
		// .json and .jsonc share this path.
		cleanJSON := jsonc.ToJSON(data)
		if err := json.Unmarshal(cleanJSON, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// LoadProject resolves the effective configuration for a project
// directory: the discovered config file if one exists, defaults
// otherwise. This is the single entry point used by the CLI.
func LoadProject(projectDir string) (*Config, error) {
	path := Discover(projectDir)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ApplyDefaults fills unset fields with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Python == "" {
		c.Python = DefaultPython
	}
	if c.VenvDir == "" {
		c.VenvDir = DefaultVenvDir
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
}

// Validate checks that the configured paths stay inside the project and
// that the interpreter name is plausible. Called by Load after defaults
// are applied; exported for callers constructing a Config directly.
func (c *Config) Validate() error {
	if err := model.ValidateVenvDir(c.VenvDir); err != nil {
		return err
	}
	if err := model.ValidateManifestPath(c.Manifest); err != nil {
		return err
	}
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("python interpreter must not be empty")
	}
	return nil
}
