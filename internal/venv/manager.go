// Package venv provides Python virtual environment operations.
//
// This package wraps the Python CLI (via os/exec) to create and inspect
// virtual environments, and constructs explicit paths to the toolchain
// inside an environment. It serves as the interpreter integration layer
// for the envup CLI.
//
// Design decisions:
//   - We shell out to `python -m venv` rather than assembling the
//     environment ourselves, because venv layout is an implementation
//     detail of the interpreter and varies across Python versions.
//   - "Activation" is never performed. Shell activation only mutates the
//     calling session's PATH; an equivalent effect is achieved by
//     invoking binaries through explicit paths into the environment
//     (PythonPath), with no global mutable state.
//   - All errors from Python commands are wrapped in model.CLIError to
//     enable proper CLI exit code handling.
package venv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmr-tortoise/envup/internal/model"
)

// markerFile is the file CPython's venv module writes into every
// environment root. Its presence distinguishes a real virtual
// environment from an arbitrary directory that happens to occupy
// the venv path.
const markerFile = "pyvenv.cfg"

// interpreterCandidates are the base interpreter names probed on PATH,
// in priority order, when the configured interpreter is the default.
var interpreterCandidates = []string{"python3", "python"}

// Manager provides virtual environment operations by invoking the
// Python CLI.
//
// It is currently stateless — all methods receive the environment path
// as a parameter. The struct exists as a receiver to support future
// extensions such as a configurable venv module or logging middleware.
type Manager struct{}

// NewManager creates a new venv Manager instance.
//
// Currently there is no initialization logic, but this constructor
// follows Go convention and allows us to add setup code later
// without breaking callers.
func NewManager() *Manager {
	return &Manager{}
}

// FindInterpreter locates the base Python interpreter to create
// environments with.
//
// When the configured name is the package default ("python3"), the PATH
// is probed for "python3" first and "python" second, because some
// platforms (notably Windows installs) only ship the unversioned name.
// A custom configured name is looked up as-is with no fallback, so a
// project pinning "python3.12" fails loudly when that exact version is
// absent.
//
// Returns the resolved absolute path, or a model.CLIError with
// ExitPythonNotFound when no candidate is on PATH.
func (m *Manager) FindInterpreter(configured string) (string, error) {
	candidates := []string{configured}
	if configured == "python3" {
		candidates = interpreterCandidates
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", model.NewCLIError(model.ExitPythonNotFound,
		fmt.Sprintf("no Python interpreter found on PATH (tried: %s)", strings.Join(candidates, ", ")))
}

// Status reports the observed state of the environment directory:
// missing, ready (directory with the pyvenv.cfg marker), or conflict
// (directory without the marker).
//
// A non-directory file at the venv path also counts as a conflict, for
// the same reason a markerless directory does: creation tooling cannot
// safely run over it.
func (m *Manager) Status(venvPath string) model.EnvStatus {
	info, err := os.Stat(venvPath)
	if err != nil {
		// Path does not exist (or is unreadable) — treat as missing and
		// let the creation step surface any real permission problem.
		return model.StatusMissing
	}
	if !info.IsDir() {
		return model.StatusConflict
	}

	// The marker must be a regular file. os.Stat on the marker path
	// suffices; we never parse pyvenv.cfg contents.
	marker, err := os.Stat(filepath.Join(venvPath, markerFile))
	if err != nil || marker.IsDir() {
		return model.StatusConflict
	}
	return model.StatusReady
}

// Exists reports whether a usable virtual environment is present at the
// given path. Equivalent to Status(venvPath) == StatusReady.
func (m *Manager) Exists(venvPath string) bool {
	return m.Status(venvPath) == model.StatusReady
}

// Create builds a new virtual environment at venvPath using the given
// base interpreter, via `python -m venv <path>`.
//
// The interpreter's own output passes through to the caller's
// stdout/stderr unmodified. On failure the underlying error is wrapped
// in a model.CLIError with ExitVenvCreateFailed.
//
// Create does not guard against an existing directory — callers are
// expected to consult Status first (the bootstrap runner does).
func (m *Manager) Create(ctx context.Context, python, venvPath string) error {
	// #nosec G204 — python is resolved via LookPath, venvPath is validated config
	cmd := exec.CommandContext(ctx, python, "-m", "venv", venvPath)

	// Inherit the parent's streams so the tool's own output and error
	// text are shown as-is, with no diagnostic wrapping added.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(model.ExitVenvCreateFailed,
			fmt.Sprintf("%s -m venv %s failed", python, venvPath), err)
	}
	return nil
}

// BinDir returns the directory inside the environment that holds its
// executables: "bin" on Unix-like systems, "Scripts" on Windows.
func (m *Manager) BinDir(venvPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvPath, "Scripts")
	}
	return filepath.Join(venvPath, "bin")
}

// PythonPath returns the path of the interpreter inside the environment.
// Invoking this binary is the explicit-path equivalent of shell
// activation: it resolves packages and scripts from the environment, not
// from the system installation.
func (m *Manager) PythonPath(venvPath string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(m.BinDir(venvPath), name)
}

// Version returns the version string reported by the interpreter at the
// given path, e.g. "Python 3.12.1". Used by the status command; the
// bootstrap sequence itself never needs it.
func (m *Manager) Version(ctx context.Context, python string) (string, error) {
	// `python --version` historically wrote to stderr on 2.x, but every
	// 3.x writes to stdout. CombinedOutput covers both.
	// #nosec G204 — python path is constructed internally
	out, err := exec.CommandContext(ctx, python, "--version").CombinedOutput()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s --version failed", python), err)
	}
	return strings.TrimSpace(string(out)), nil
}
