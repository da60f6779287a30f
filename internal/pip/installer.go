// Package pip provides package installer operations against a virtual
// environment's interpreter.
//
// Every invocation runs `<venv python> -m pip ...` rather than calling a
// pip shim binary directly. Rooting each call in the environment's
// interpreter path guarantees the installer operates on that environment
// regardless of the caller's shell state, and survives pip upgrading
// itself mid-run (the `pip` script can be replaced while executing; the
// interpreter cannot).
//
// Installer output is never captured or rewrapped: stdout and stderr are
// inherited from the parent process so download progress and error text
// reach the user exactly as pip produced them.
package pip

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/envup/internal/model"
)

// Installer runs pip operations inside one virtual environment.
type Installer struct {
	// python is the path of the environment's interpreter. All pip
	// invocations go through it via `-m pip`.
	python string

	// extraArgs are appended to every pip command, sourced from the
	// project config's pipArgs field.
	extraArgs []string
}

// NewInstaller creates an Installer bound to the given environment
// interpreter. extraArgs may be nil.
func NewInstaller(python string, extraArgs []string) *Installer {
	return &Installer{python: python, extraArgs: extraArgs}
}

// SelfUpgrade upgrades pip inside the environment. The bootstrap
// sequence runs this unconditionally on every run, so environments
// created by older interpreters don't stay pinned to the bundled pip.
func (i *Installer) SelfUpgrade(ctx context.Context) error {
	args := i.buildArgs("install", "--upgrade", "pip")
	if err := i.run(ctx, args); err != nil {
		return model.WrapCLIError(model.ExitPipUpgradeFailed, "pip self-upgrade failed", err)
	}
	return nil
}

// InstallManifest installs the packages listed in the manifest file via
// `pip install -r <manifest>`. Callers are responsible for checking that
// the manifest exists first — a missing manifest is a skip condition in
// the bootstrap sequence, not an installer error.
func (i *Installer) InstallManifest(ctx context.Context, manifestPath string) error {
	args := i.buildArgs("install", "-r", manifestPath)
	if err := i.run(ctx, args); err != nil {
		return model.WrapCLIError(model.ExitInstallFailed,
			fmt.Sprintf("dependency install from %s failed", manifestPath), err)
	}
	return nil
}

// buildArgs assembles the full argument list for one pip invocation:
// the -m pip prefix, the operation arguments, then any configured extra
// arguments. Extra arguments go last so they can override pip defaults.
func (i *Installer) buildArgs(pipArgs ...string) []string {
	args := append([]string{"-m", "pip"}, pipArgs...)
	return append(args, i.extraArgs...)
}

// run executes the interpreter with the given arguments, inheriting the
// parent's stdout and stderr so pip's own output is shown as-is.
func (i *Installer) run(ctx context.Context, args []string) error {
	// #nosec G204 — interpreter path and args are constructed internally
	cmd := exec.CommandContext(ctx, i.python, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Name the failing command in the wrapped error. pip has already
		// printed its own diagnostics to the inherited stderr.
		return fmt.Errorf("%s %s: %w", i.python, strings.Join(args, " "), err)
	}
	return nil
}
