// Package model defines the domain types and value objects for the
// envup CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (BootstrapResult, StepResult, EnvReport, etc.) are transient
// representations derived from filesystem checks at runtime — the virtual
// environment directory itself is the only persistent state.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
