// Package venv provides Python virtual environment operations for the
// envup CLI.
//
// All interpreter operations are performed via os/exec calls to the
// python binary, rather than reimplementing the venv layout. This
// approach:
//   - Delegates layout decisions to the interpreter that owns them
//   - Uses the exact same venv behavior the user sees in their terminal
//   - Requires Python >= 3.3 (when the venv module was introduced)
//
// The Manager struct provides methods for interpreter discovery,
// environment existence probing (via the pyvenv.cfg marker), creation,
// and explicit path construction into an environment — the stateless
// replacement for shell activation.
package venv
