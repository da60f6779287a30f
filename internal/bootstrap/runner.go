// Package bootstrap implements the linear environment bootstrap sequence.
//
// The sequence is fixed and never branches back:
//
//  1. Ensure the virtual environment exists (create if missing)
//  2. Activate — resolve explicit interpreter paths, no session mutation
//  3. Upgrade the package installer (unconditionally, every run)
//  4. Install dependencies from the manifest if present (skip otherwise)
//  5. Report completion
//
// Every step failure is fatal: the sequence halts at the first failing
// step with no retries and no rollback of a partially created
// environment. An interrupted run is safe because step 1 is idempotent —
// the next run re-checks and picks up where things stand.
//
// The runner depends on small interfaces over the venv and pip packages
// so the sequencing rules are testable without a Python toolchain.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/model"
)

// EnvManager is the subset of venv.Manager the runner needs.
type EnvManager interface {
	// FindInterpreter locates the base interpreter on PATH.
	FindInterpreter(configured string) (string, error)

	// Status classifies the venv path as missing, ready, or conflict.
	Status(venvPath string) model.EnvStatus

	// Create builds a new virtual environment at venvPath.
	Create(ctx context.Context, python, venvPath string) error

	// PythonPath returns the interpreter path inside the environment.
	PythonPath(venvPath string) string
}

// Installer is the subset of pip.Installer the runner needs.
type Installer interface {
	// SelfUpgrade upgrades pip inside the environment.
	SelfUpgrade(ctx context.Context) error

	// InstallManifest installs packages from the manifest file.
	InstallManifest(ctx context.Context, manifestPath string) error
}

// InstallerFactory builds an Installer bound to an environment
// interpreter. The interpreter path is only known once step 2 has
// resolved it, so the runner takes a factory rather than an instance.
type InstallerFactory func(python string) Installer

// Runner executes the bootstrap sequence.
type Runner struct {
	// Env performs virtual environment operations.
	Env EnvManager

	// NewInstaller builds the package installer once the environment
	// interpreter is known.
	NewInstaller InstallerFactory

	// Logf receives step-by-step trace output. Never nil after
	// NewRunner; defaults to a no-op.
	Logf func(format string, args ...interface{})
}

// NewRunner creates a Runner with a no-op trace logger.
func NewRunner(env EnvManager, newInstaller InstallerFactory) *Runner {
	return &Runner{
		Env:          env,
		NewInstaller: newInstaller,
		Logf:         func(string, ...interface{}) {},
	}
}

// Run executes the full bootstrap sequence for the given project
// directory and configuration.
//
// The returned BootstrapResult records the steps that actually executed,
// in order; steps after a failure never appear. On failure the partial
// result is returned alongside the error so callers can still report
// progress if they choose to.
func (r *Runner) Run(ctx context.Context, projectDir string, cfg *config.Config) (*model.BootstrapResult, error) {
	venvPath := filepath.Join(projectDir, cfg.VenvDir)
	manifestPath := filepath.Join(projectDir, cfg.Manifest)

	result := &model.BootstrapResult{
		VenvPath:     venvPath,
		ManifestPath: manifestPath,
		StartedAt:    time.Now().UTC(),
	}

	// Step 1: Ensure the virtual environment exists.
	switch status := r.Env.Status(venvPath); status {
	case model.StatusReady:
		// Idempotent reuse — the environment, once created, is reused
		// on subsequent runs.
		r.Logf("Virtual environment already exists: %s", venvPath)
		result.RecordStep(model.StepEnsureEnv, model.OutcomeSkipped, "environment already exists")

	case model.StatusConflict:
		err := model.NewCLIError(model.ExitVenvCreateFailed,
			fmt.Sprintf("%s exists but is not a virtual environment (no pyvenv.cfg)", venvPath))
		result.RecordStep(model.StepEnsureEnv, model.OutcomeFailed, err.Message)
		return result, err

	default: // StatusMissing
		python, err := r.Env.FindInterpreter(cfg.Python)
		if err != nil {
			result.RecordStep(model.StepEnsureEnv, model.OutcomeFailed, "no base interpreter found")
			return result, err
		}
		r.Logf("Creating virtual environment with %s: %s", python, venvPath)

		if err := r.Env.Create(ctx, python, venvPath); err != nil {
			result.RecordStep(model.StepEnsureEnv, model.OutcomeFailed, "venv creation failed")
			return result, err
		}
		result.Created = true
		result.RecordStep(model.StepEnsureEnv, model.OutcomeDone, "created "+venvPath)
	}

	// Step 2: Activate — resolve the environment's interpreter path.
	// All subsequent invocations go through this path; no PATH or shell
	// state is mutated, so activation cannot fail.
	result.Python = r.Env.PythonPath(venvPath)
	r.Logf("Using environment interpreter: %s", result.Python)
	result.RecordStep(model.StepActivate, model.OutcomeDone, result.Python)

	installer := r.NewInstaller(result.Python)

	// Step 3: Upgrade the installer. Runs on every bootstrap regardless
	// of whether the environment or manifest already existed.
	r.Logf("Upgrading pip...")
	if err := installer.SelfUpgrade(ctx); err != nil {
		result.RecordStep(model.StepUpgradeInstaller, model.OutcomeFailed, "pip self-upgrade failed")
		return result, err
	}
	result.RecordStep(model.StepUpgradeInstaller, model.OutcomeDone, "")

	// Step 4: Install dependencies if the manifest exists. Absence is a
	// valid state — skip with a notice, not an error.
	if _, err := os.Stat(manifestPath); err == nil {
		r.Logf("Installing dependencies from %s...", manifestPath)
		if err := installer.InstallManifest(ctx, manifestPath); err != nil {
			result.RecordStep(model.StepInstallDeps, model.OutcomeFailed, "dependency install failed")
			return result, err
		}
		result.DepsInstalled = true
		result.RecordStep(model.StepInstallDeps, model.OutcomeDone, "installed from "+manifestPath)
	} else {
		r.Logf("No manifest at %s, skipping dependency install", manifestPath)
		result.RecordStep(model.StepInstallDeps, model.OutcomeSkipped, cfg.Manifest+" not found")
	}

	// Step 5: Report. The caller owns the actual output channel; a
	// completed report step is what authorizes printing the completion
	// message.
	result.RecordStep(model.StepReport, model.OutcomeDone, "")
	return result, nil
}
