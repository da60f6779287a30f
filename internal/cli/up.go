// Package cli — up.go implements the "envup up" command, which is also
// what a bare `envup` invocation runs.
//
// The up command is the primary user-facing operation: the full
// environment bootstrap sequence.
//
// Orchestration steps:
//  1. Resolve the project configuration (defaults, or .envup file)
//  2. Run the linear bootstrap sequence (ensure env → activate →
//     upgrade installer → install deps → report)
//  3. Output results (text or JSON)
//
// All tool invocations stream their own output through directly, so
// pip progress and error text appear exactly as the tools produce them.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envup/internal/bootstrap"
	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/pip"
	"github.com/mmr-tortoise/envup/internal/venv"
)

// completionMessage is the final status line of a successful bootstrap.
// It is only printed when every step of the sequence completed; a failed
// run exits before reaching it.
const completionMessage = "Environment bootstrap complete."

// NewUpCommand creates the "up" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Bootstrap the environment (same as running envup with no arguments)",
		Long: `Run the environment bootstrap sequence in the current directory.

The command:
  - Creates the virtual environment if it does not exist (reuses it otherwise)
  - Upgrades pip inside the environment
  - Installs dependencies from the manifest if present (skips otherwise)

Examples:
  envup up
  envup up --verbose
  envup up --json`,

		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context())
		},
	}
}

// runUp is the main orchestration function for the bootstrap operation.
func runUp(ctx context.Context) error {
	// Step 1: The project is always the current working directory —
	// the CLI surface takes no path arguments.
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	// Step 2: Resolve configuration. Defaults apply when no .envup
	// config file is present.
	cfg, err := config.LoadProject(cwd)
	if err != nil {
		return err // Load already returns CLIError with ExitConfigError
	}
	VerboseLog("Project: %s (venv: %s, manifest: %s)", cwd, cfg.VenvDir, cfg.Manifest)

	// Step 3: Wire the runner with the real venv manager and installer.
	// The installer factory binds the configured extra pip args to
	// whichever environment interpreter the sequence resolves.
	runner := bootstrap.NewRunner(venv.NewManager(), func(python string) bootstrap.Installer {
		return pip.NewInstaller(python, cfg.PipArgs)
	})
	runner.Logf = VerboseLog

	result, err := runner.Run(ctx, cwd, cfg)
	if err != nil {
		return err // the runner returns CLIErrors with step-specific codes
	}

	// Step 4: Output results. This is the "report completion" step made
	// visible — the runner records it, we print it.
	printUpResult(result)
	return nil
}

// creationSummary describes what the ensure-env step did, for text output.
func creationSummary(result *model.BootstrapResult) string {
	if result.Created {
		return "created"
	}
	return "reused existing"
}

// installSummary describes what the install-deps step did, for text
// output. The skipped case doubles as the spec-mandated notice that a
// missing manifest is not an error.
func installSummary(result *model.BootstrapResult) string {
	if result.DepsInstalled {
		return fmt.Sprintf("installed from %s", result.ManifestPath)
	}
	return fmt.Sprintf("skipped (%s not found)", result.ManifestPath)
}

// printUpResult outputs the bootstrap results in text or JSON format,
// depending on the global --json flag.
func printUpResult(result *model.BootstrapResult) {
	if IsJSONOutput() {
		printUpResultJSON(result)
	} else {
		printUpResultText(result)
	}
}

// printUpResultJSON outputs the bootstrap result as structured JSON.
// The model types carry json tags, so the result marshals directly.
func printUpResultJSON(result *model.BootstrapResult) {
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printUpResultText outputs the bootstrap result as human-readable text,
// ending with the completion message.
func printUpResultText(result *model.BootstrapResult) {
	fmt.Printf("Virtual environment: %s (%s)\n", result.VenvPath, creationSummary(result))
	fmt.Printf("  Interpreter:  %s\n", result.Python)
	fmt.Printf("  Pip:          upgraded\n")
	fmt.Printf("  Dependencies: %s\n", installSummary(result))
	fmt.Println()
	fmt.Println(completionMessage)
}
