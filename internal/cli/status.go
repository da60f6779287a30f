// Package cli — status.go implements the "envup status" command.
//
// The status command is a read-only report of the environment: whether
// the virtual environment directory exists (and is a real venv), which
// interpreter it exposes, and whether the dependency manifest is
// present. It makes no changes on disk and never invokes the installer.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/venv"
)

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the state of the environment without changing it",
		Long: `Report whether the virtual environment and the dependency manifest exist.

The command is read-only: it never creates the environment, never runs
pip, and exits 0 regardless of what it finds.

Examples:
  envup status
  envup status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

// runStatus gathers the environment report and prints it.
func runStatus(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	cfg, err := config.LoadProject(cwd)
	if err != nil {
		return err
	}

	report := buildEnvReport(ctx, venv.NewManager(), cwd, cfg)
	printStatusResult(report)
	return nil
}

// buildEnvReport assembles the read-only snapshot for the status command.
// The interpreter version query is best-effort: a ready environment whose
// interpreter refuses to run is still reported as ready, just without a
// version string.
func buildEnvReport(ctx context.Context, m *venv.Manager, projectDir string, cfg *config.Config) *model.EnvReport {
	venvPath := filepath.Join(projectDir, cfg.VenvDir)
	manifestPath := filepath.Join(projectDir, cfg.Manifest)

	report := &model.EnvReport{
		VenvPath:     venvPath,
		Status:       m.Status(venvPath),
		ManifestPath: manifestPath,
	}

	if _, statErr := os.Stat(manifestPath); statErr == nil {
		report.ManifestPresent = true
	}

	if report.Status == model.StatusReady {
		version, verErr := m.Version(ctx, m.PythonPath(venvPath))
		if verErr != nil {
			VerboseLog("Could not query interpreter version: %v", verErr)
		} else {
			report.PythonVersion = version
		}
	}

	return report
}

// manifestSummary renders the manifest line for text output.
func manifestSummary(report *model.EnvReport) string {
	if report.ManifestPresent {
		return report.ManifestPath
	}
	return fmt.Sprintf("%s (not found)", report.ManifestPath)
}

// printStatusResult outputs the report in text or JSON format,
// depending on the global --json flag.
func printStatusResult(report *model.EnvReport) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Virtual environment: %s\n", report.VenvPath)
	fmt.Printf("  Status:      %s\n", report.Status)
	if report.PythonVersion != "" {
		fmt.Printf("  Interpreter: %s\n", report.PythonVersion)
	}
	fmt.Printf("  Manifest:    %s\n", manifestSummary(report))
}
