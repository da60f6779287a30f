// Package cli — up_test.go contains unit tests for the pure formatting
// functions used by the up command's output.
//
// These tests verify data transformation logic without requiring a
// Python toolchain or any external dependencies.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/envup/internal/model"
)

// TestCreationSummary verifies the created-vs-reused wording in the
// text output of a bootstrap run.
func TestCreationSummary(t *testing.T) {
	tests := []struct {
		name   string
		result model.BootstrapResult
		want   string
	}{
		{
			name:   "freshly created environment",
			result: model.BootstrapResult{Created: true},
			want:   "created",
		},
		{
			name:   "existing environment reused",
			result: model.BootstrapResult{Created: false},
			want:   "reused existing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creationSummary(&tt.result))
		})
	}
}

// TestInstallSummary verifies the dependency line wording, including the
// skip notice for an absent manifest.
func TestInstallSummary(t *testing.T) {
	tests := []struct {
		name   string
		result model.BootstrapResult
		want   string
	}{
		{
			name: "dependencies installed",
			result: model.BootstrapResult{
				ManifestPath:  "requirements.txt",
				DepsInstalled: true,
			},
			want: "installed from requirements.txt",
		},
		{
			name: "manifest absent",
			result: model.BootstrapResult{
				ManifestPath:  "requirements.txt",
				DepsInstalled: false,
			},
			want: "skipped (requirements.txt not found)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, installSummary(&tt.result))
		})
	}
}
