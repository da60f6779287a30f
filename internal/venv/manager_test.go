package venv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envup/internal/model"
)

// fakeVenv creates a directory shaped like a virtual environment root:
// the pyvenv.cfg marker plus an empty bin directory. This lets the
// existence and path logic be tested without invoking Python.
func fakeVenv(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), ".venv")
	require.NoError(t, os.MkdirAll(dir, 0755))

	err := os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0644)
	require.NoError(t, err, "failed to write pyvenv.cfg marker")

	binDir := "bin"
	if runtime.GOOS == "windows" {
		binDir = "Scripts"
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, binDir), 0755))

	return dir
}

// requirePython skips the test when no Python interpreter is available
// on PATH, so the suite passes on machines without a Python toolchain.
func requirePython(t *testing.T) string {
	t.Helper()

	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no python interpreter on PATH")
	return ""
}

// TestStatus verifies the three-way classification of the venv path:
// missing, ready, and conflict.
func TestStatus(t *testing.T) {
	m := NewManager()

	t.Run("missing when path does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".venv")
		assert.Equal(t, model.StatusMissing, m.Status(path))
		assert.False(t, m.Exists(path))
	})

	t.Run("ready when marker is present", func(t *testing.T) {
		path := fakeVenv(t)
		assert.Equal(t, model.StatusReady, m.Status(path))
		assert.True(t, m.Exists(path))
	})

	t.Run("conflict for directory without marker", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".venv")
		require.NoError(t, os.MkdirAll(path, 0755))

		assert.Equal(t, model.StatusConflict, m.Status(path))
		assert.False(t, m.Exists(path))
	})

	t.Run("conflict for regular file at venv path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".venv")
		require.NoError(t, os.WriteFile(path, []byte("not a venv"), 0644))

		assert.Equal(t, model.StatusConflict, m.Status(path))
	})
}

// TestPaths verifies the explicit path construction that replaces shell
// activation. The expected layout differs between Unix and Windows.
func TestPaths(t *testing.T) {
	m := NewManager()
	venvPath := filepath.Join("proj", ".venv")

	if runtime.GOOS == "windows" {
		assert.Equal(t, filepath.Join(venvPath, "Scripts"), m.BinDir(venvPath))
		assert.Equal(t, filepath.Join(venvPath, "Scripts", "python.exe"), m.PythonPath(venvPath))
	} else {
		assert.Equal(t, filepath.Join(venvPath, "bin"), m.BinDir(venvPath))
		assert.Equal(t, filepath.Join(venvPath, "bin", "python"), m.PythonPath(venvPath))
	}
}

// TestFindInterpreter verifies PATH discovery behavior for both the
// default fallback chain and explicitly pinned interpreter names.
func TestFindInterpreter(t *testing.T) {
	m := NewManager()

	t.Run("pinned name missing fails with exit code", func(t *testing.T) {
		_, err := m.FindInterpreter("python-definitely-not-installed")
		require.Error(t, err)

		cliErr, ok := err.(*model.CLIError)
		require.True(t, ok, "error should be a CLIError")
		assert.Equal(t, model.ExitPythonNotFound, cliErr.Code)
	})

	t.Run("default chain finds an interpreter when available", func(t *testing.T) {
		requirePython(t)

		path, err := m.FindInterpreter("python3")
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})
}

// TestCreate exercises real venv creation end to end. Skipped when no
// Python toolchain is installed.
func TestCreate(t *testing.T) {
	python := requirePython(t)
	m := NewManager()

	venvPath := filepath.Join(t.TempDir(), ".venv")
	err := m.Create(context.Background(), python, venvPath)
	require.NoError(t, err, "venv creation should succeed")

	// The created environment must pass the same readiness probe the
	// bootstrap sequence uses on subsequent runs.
	assert.True(t, m.Exists(venvPath))

	// The environment interpreter must exist at the constructed path.
	_, statErr := os.Stat(m.PythonPath(venvPath))
	assert.NoError(t, statErr, "environment interpreter should exist")
}

// TestVersion verifies the interpreter version query used by the status
// command. Skipped when no Python toolchain is installed.
func TestVersion(t *testing.T) {
	python := requirePython(t)
	m := NewManager()

	version, err := m.Version(context.Background(), python)
	require.NoError(t, err)
	assert.Contains(t, version, "Python")
}
