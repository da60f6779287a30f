package pip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/envup/internal/model"
)

// TestBuildArgs verifies the argument assembly for pip invocations,
// including placement of configured extra arguments after the operation.
func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name      string
		extraArgs []string
		pipArgs   []string
		want      []string
	}{
		{
			name:    "self-upgrade without extras",
			pipArgs: []string{"install", "--upgrade", "pip"},
			want:    []string{"-m", "pip", "install", "--upgrade", "pip"},
		},
		{
			name:    "manifest install without extras",
			pipArgs: []string{"install", "-r", "requirements.txt"},
			want:    []string{"-m", "pip", "install", "-r", "requirements.txt"},
		},
		{
			name:      "extra args come last",
			extraArgs: []string{"--quiet", "--no-cache-dir"},
			pipArgs:   []string{"install", "-r", "requirements.txt"},
			want:      []string{"-m", "pip", "install", "-r", "requirements.txt", "--quiet", "--no-cache-dir"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewInstaller(".venv/bin/python", tt.extraArgs)
			assert.Equal(t, tt.want, i.buildArgs(tt.pipArgs...))
		})
	}
}

// TestFailureExitCodes verifies that installer failures carry the
// step-specific exit codes the CLI layer maps to process exits.
// A nonexistent interpreter path forces the exec failure without
// needing a Python toolchain or network access.
func TestFailureExitCodes(t *testing.T) {
	i := NewInstaller("/nonexistent/python", nil)

	t.Run("self-upgrade failure", func(t *testing.T) {
		err := i.SelfUpgrade(context.Background())

		var cliErr *model.CLIError
		assert.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitPipUpgradeFailed, cliErr.Code)
	})

	t.Run("manifest install failure", func(t *testing.T) {
		err := i.InstallManifest(context.Background(), "requirements.txt")

		var cliErr *model.CLIError
		assert.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitInstallFailed, cliErr.Code)
	})
}
