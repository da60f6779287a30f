// Package model defines the domain types for the envup CLI.
//
// All entities in this package represent the states and results of the
// environment bootstrap sequence. These types are used throughout the
// application for passing data between components.
//
// Key design decision: there is no persistent state file. The virtual
// environment directory on disk IS the state; everything here is a
// transient representation reconstructed from filesystem checks at runtime.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// EnvStatus represents the observed state of the virtual environment
// directory. The states are:
//
//	Missing → Ready (after a successful bootstrap)
//	Missing → Conflict (a plain directory occupies the venv path)
type EnvStatus string

const (
	// StatusMissing indicates the virtual environment directory does not
	// exist yet. The bootstrap sequence will create it.
	StatusMissing EnvStatus = "missing"

	// StatusReady indicates the directory exists and carries the
	// pyvenv.cfg marker, i.e. it is a real virtual environment that
	// bootstrap runs can safely reuse.
	StatusReady EnvStatus = "ready"

	// StatusConflict indicates a directory exists at the venv path but
	// lacks the pyvenv.cfg marker. Running the creation tool over it
	// could clobber unrelated files, so bootstrap refuses to proceed.
	StatusConflict EnvStatus = "conflict"
)

// String returns the string representation of EnvStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s EnvStatus) String() string {
	return string(s)
}

// IsValid checks whether the EnvStatus value is one of the
// predefined valid states.
func (s EnvStatus) IsValid() bool {
	switch s {
	case StatusMissing, StatusReady, StatusConflict:
		return true
	default:
		return false
	}
}

// ParseEnvStatus converts a string to an EnvStatus.
// Returns an error if the string does not match any valid status.
func ParseEnvStatus(s string) (EnvStatus, error) {
	status := EnvStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid environment status: %q (valid: missing, ready, conflict)", s)
	}
	return status, nil
}

// BootstrapStep identifies one step of the linear bootstrap sequence.
// The sequence order is fixed:
//
//	ensure-env → activate → upgrade-installer → install-deps → report
type BootstrapStep string

const (
	// StepEnsureEnv creates the virtual environment directory if it does
	// not exist, and skips creation if it does.
	StepEnsureEnv BootstrapStep = "ensure-env"

	// StepActivate resolves explicit interpreter paths inside the
	// environment. No shell session state is mutated; "activation" is
	// purely internal path construction.
	StepActivate BootstrapStep = "activate"

	// StepUpgradeInstaller upgrades pip inside the environment. This runs
	// unconditionally on every bootstrap.
	StepUpgradeInstaller BootstrapStep = "upgrade-installer"

	// StepInstallDeps installs packages from the manifest file. Skipped
	// (not an error) when the manifest is absent.
	StepInstallDeps BootstrapStep = "install-deps"

	// StepReport emits the final completion message.
	StepReport BootstrapStep = "report"
)

// String returns the string representation of BootstrapStep.
func (s BootstrapStep) String() string {
	return string(s)
}

// StepOutcome describes how a single bootstrap step concluded.
type StepOutcome string

const (
	// OutcomeDone indicates the step performed its action successfully.
	OutcomeDone StepOutcome = "done"

	// OutcomeSkipped indicates the step's precondition made its action
	// unnecessary (venv already present, manifest absent). Skipping is
	// a success, never an error.
	OutcomeSkipped StepOutcome = "skipped"

	// OutcomeFailed indicates the step's external tool exited non-zero.
	// A failed step halts the sequence immediately.
	OutcomeFailed StepOutcome = "failed"
)

// String returns the string representation of StepOutcome.
func (o StepOutcome) String() string {
	return string(o)
}

// StepResult records the outcome of one executed bootstrap step.
// Steps that were never reached (because an earlier step failed)
// produce no StepResult at all.
type StepResult struct {
	// Step identifies which step this result belongs to.
	Step BootstrapStep `json:"step"`

	// Outcome is how the step concluded (done, skipped, failed).
	Outcome StepOutcome `json:"outcome"`

	// Detail is an optional human-readable note, e.g. the path that was
	// created or the reason a step was skipped.
	Detail string `json:"detail,omitempty"`
}

// BootstrapResult is the aggregate outcome of one full bootstrap run.
// It is the primary value passed from the bootstrap runner to the CLI
// output layer.
type BootstrapResult struct {
	// VenvPath is the absolute path of the virtual environment directory.
	VenvPath string `json:"venvPath"`

	// Created reports whether this run created the environment (true) or
	// reused an existing one (false).
	Created bool `json:"created"`

	// Python is the path of the interpreter inside the environment that
	// all installer invocations used.
	Python string `json:"python"`

	// ManifestPath is the manifest file path that was checked. Set even
	// when the manifest was absent.
	ManifestPath string `json:"manifestPath"`

	// DepsInstalled reports whether the manifest install step actually
	// ran (false means the manifest was absent and the step was skipped).
	DepsInstalled bool `json:"depsInstalled"`

	// Steps lists the per-step outcomes in execution order.
	Steps []StepResult `json:"steps"`

	// StartedAt is the timestamp when the bootstrap run began.
	StartedAt time.Time `json:"startedAt"`
}

// RecordStep appends a StepResult to the run's step log.
func (r *BootstrapResult) RecordStep(step BootstrapStep, outcome StepOutcome, detail string) {
	r.Steps = append(r.Steps, StepResult{Step: step, Outcome: outcome, Detail: detail})
}

// EnvReport is the read-only snapshot produced by the status command.
// It makes no changes on disk; all fields come from existence checks
// and an optional interpreter version query.
type EnvReport struct {
	// VenvPath is the absolute path of the virtual environment directory.
	VenvPath string `json:"venvPath"`

	// Status is the observed environment state.
	Status EnvStatus `json:"status"`

	// PythonVersion is the version string reported by the environment's
	// interpreter. Empty when the environment is missing or conflicted.
	PythonVersion string `json:"pythonVersion,omitempty"`

	// ManifestPath is the manifest file path that was checked.
	ManifestPath string `json:"manifestPath"`

	// ManifestPresent reports whether the manifest file exists.
	ManifestPresent bool `json:"manifestPresent"`
}

// ValidateVenvDir checks that a configured virtual environment directory
// name is usable. The directory must be a relative path contained within
// the project (no absolute paths, no parent-directory escapes), because
// the bootstrapper's contract is to manage an environment inside the
// current working directory.
func ValidateVenvDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("virtual environment directory must not be empty")
	}
	return validateProjectRelative("virtual environment directory", dir)
}

// ValidateManifestPath checks that a configured manifest path is usable.
// Like the venv directory, it must stay inside the project.
func ValidateManifestPath(path string) error {
	if path == "" {
		return fmt.Errorf("manifest path must not be empty")
	}
	return validateProjectRelative("manifest path", path)
}

// validateProjectRelative rejects absolute paths and paths that resolve
// outside the project root. filepath.Clean normalizes "a/../.." forms so
// the prefix check catches every escape, not just a literal leading "..".
func validateProjectRelative(what, path string) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("%s %q must be relative to the project root", what, path)
	}
	clean := filepath.Clean(path)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s %q escapes the project root", what, path)
	}
	return nil
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine which bootstrap step
// failed.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPythonNotFound indicates no usable base Python interpreter
	// was found on PATH.
	ExitPythonNotFound ExitCode = 2

	// ExitVenvCreateFailed indicates the virtual environment creation
	// tool exited non-zero, or the venv path is occupied by a directory
	// that is not a virtual environment.
	ExitVenvCreateFailed ExitCode = 3

	// ExitPipUpgradeFailed indicates the installer self-upgrade
	// exited non-zero.
	ExitPipUpgradeFailed ExitCode = 4

	// ExitInstallFailed indicates the manifest install exited non-zero.
	ExitInstallFailed ExitCode = 5

	// ExitConfigError indicates the project configuration file is
	// malformed or contains invalid values.
	ExitConfigError ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
