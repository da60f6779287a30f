package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig is a test helper that writes a config file with the given
// name into a fresh temp directory and returns the directory path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err, "failed to write test config %s", name)
	return dir
}

// TestDefault verifies that the default configuration reproduces the
// classic bootstrap script behavior.
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, ".venv", cfg.VenvDir)
	assert.Equal(t, "requirements.txt", cfg.Manifest)
	assert.Empty(t, cfg.PipArgs)
	assert.NoError(t, cfg.Validate())
}

// TestDiscover verifies candidate probing: the first existing candidate
// wins, directories are skipped, and absence returns an empty string.
func TestDiscover(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		dir := t.TempDir()
		assert.Empty(t, Discover(dir))
	})

	t.Run("finds yaml config", func(t *testing.T) {
		dir := writeConfig(t, ".envup.yaml", "venvDir: env\n")
		assert.Equal(t, filepath.Join(dir, ".envup.yaml"), Discover(dir))
	})

	t.Run("jsonc takes priority over yaml", func(t *testing.T) {
		dir := writeConfig(t, ".envup.yaml", "venvDir: env\n")
		err := os.WriteFile(filepath.Join(dir, ".envup.jsonc"), []byte("{}"), 0644)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, ".envup.jsonc"), Discover(dir))
	})

	t.Run("skips directory with candidate name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".envup.json"), 0755))

		assert.Empty(t, Discover(dir))
	})
}

// TestLoadJSONC verifies JSONC parsing, including comment and trailing
// comma stripping, plus default filling for unset fields.
func TestLoadJSONC(t *testing.T) {
	dir := writeConfig(t, ".envup.jsonc", `{
  // virtual environment location
  "venvDir": "env",
  "pipArgs": ["--quiet"],
}`)

	cfg, err := Load(filepath.Join(dir, ".envup.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.VenvDir)
	assert.Equal(t, []string{"--quiet"}, cfg.PipArgs)
	// Unset fields fall back to defaults.
	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, "requirements.txt", cfg.Manifest)
}

// TestLoadYAML verifies YAML parsing with the same default-filling
// behavior as the JSONC path.
func TestLoadYAML(t *testing.T) {
	dir := writeConfig(t, ".envup.yaml", `python: python3.12
manifest: deps/requirements.txt
pipArgs:
  - --no-cache-dir
`)

	cfg, err := Load(filepath.Join(dir, ".envup.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "python3.12", cfg.Python)
	assert.Equal(t, "deps/requirements.txt", cfg.Manifest)
	assert.Equal(t, []string{"--no-cache-dir"}, cfg.PipArgs)
	assert.Equal(t, ".venv", cfg.VenvDir)
}

// TestLoadErrors verifies that malformed content and invalid values are
// rejected with an error rather than silently defaulted.
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "malformed json",
			file:    ".envup.json",
			content: `{"venvDir": `,
		},
		{
			name:    "malformed yaml",
			file:    ".envup.yml",
			content: "venvDir: [unclosed\n  - a",
		},
		{
			name:    "absolute venv dir",
			file:    ".envup.json",
			content: `{"venvDir": "/opt/venv"}`,
		},
		{
			name:    "manifest escapes project",
			file:    ".envup.yaml",
			content: "manifest: ../requirements.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.file, tt.content)
			_, err := Load(filepath.Join(dir, tt.file))
			assert.Error(t, err)
		})
	}
}

// TestLoadProject verifies the combined discover-and-load entry point.
func TestLoadProject(t *testing.T) {
	t.Run("defaults when no file present", func(t *testing.T) {
		cfg, err := LoadProject(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("loads discovered file", func(t *testing.T) {
		dir := writeConfig(t, ".envup.yml", "venvDir: virtualenv\n")

		cfg, err := LoadProject(dir)
		require.NoError(t, err)
		assert.Equal(t, "virtualenv", cfg.VenvDir)
	})
}
