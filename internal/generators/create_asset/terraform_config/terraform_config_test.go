package terraform_config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascribe/terrascribe/internal/types"
)

func TestRunWritesBundleAndManifest(t *testing.T) {
	outputDir := t.TempDir()

	generator := NewTerraformConfigAssetGenerator(TerraformConfigOpts{
		Instruction: "create a small vm named web-01",
		OutputDir:   outputDir,
		ProjectID:   "acme-project",
		Environment: "staging",
	})

	require.NoError(t, generator.Run())

	targetDir := filepath.Join(outputDir, "compute-instance")
	for _, name := range []string{"provider.tf", "main.tf", "variables.tf", "terraform.tfvars", "README.md"} {
		content, err := os.ReadFile(filepath.Join(targetDir, name))
		require.NoError(t, err, "expected %s to be written", name)
		assert.NotEmpty(t, content)
	}

	mainTf, err := os.ReadFile(filepath.Join(targetDir, "main.tf"))
	require.NoError(t, err)
	assert.Contains(t, string(mainTf), "google_compute_instance")
	assert.Contains(t, string(mainTf), "web-01")

	manifestData, err := os.ReadFile(filepath.Join(targetDir, "manifest.json"))
	require.NoError(t, err)

	var manifest types.Manifest
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	assert.Equal(t, "compute-instance", manifest.ResourceKind)
	assert.Equal(t, "create a small vm named web-01", manifest.Instruction)
	assert.Equal(t, []string{"provider.tf", "main.tf", "variables.tf", "terraform.tfvars", "README.md"}, manifest.Files)
}

func TestRunUnrecognizedInstruction(t *testing.T) {
	generator := NewTerraformConfigAssetGenerator(TerraformConfigOpts{
		Instruction: "make me a sandwich",
		OutputDir:   t.TempDir(),
	})

	err := generator.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not recognize a resource kind")
}

func TestRunCreatesKindSubdirectoryPerKind(t *testing.T) {
	outputDir := t.TempDir()

	tests := []struct {
		name        string
		instruction string
		expectedDir string
	}{
		{
			name:        "storage bucket",
			instruction: "create a storage bucket named artifacts",
			expectedDir: "object-storage",
		},
		{
			name:        "vpc network",
			instruction: "set up a vpc network for production",
			expectedDir: "virtual-network",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			generator := NewTerraformConfigAssetGenerator(TerraformConfigOpts{
				Instruction: tc.instruction,
				OutputDir:   outputDir,
			})
			require.NoError(t, generator.Run())

			info, err := os.Stat(filepath.Join(outputDir, tc.expectedDir))
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}
