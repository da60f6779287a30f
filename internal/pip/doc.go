// Package pip runs package installer operations for the envup CLI.
//
// Operations are executed as `<venv python> -m pip ...` via os/exec,
// with stdout/stderr inherited from the parent process. The package
// exposes exactly the two operations the bootstrap sequence needs:
// self-upgrade and install-from-manifest.
package pip
