package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smarttest/smarttest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, config.DefaultFramework, cfg.Framework)
	assert.Equal(t, config.DefaultTestOutputDir, cfg.TestOutputDir)
	assert.Equal(t, config.DefaultPriorityLimit, cfg.PriorityLimit)
	assert.Equal(t, config.DefaultExclude, cfg.Exclude)
	assert.False(t, cfg.IncludePrivate)
}

func TestLoad_JSON(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "smart_test.json", `{
  "coverage_path": "reports/coverage.xml",
  "test_output_dir": "generated_tests",
  "priority_limit": 10,
  "include_private": true,
  "exclude": ["vendor"]
}`)

	cfg, err := config.Load(root)
	require.NoError(t, err)

	assert.Equal(t, "reports/coverage.xml", cfg.CoveragePath)
	assert.Equal(t, "generated_tests", cfg.TestOutputDir)
	assert.Equal(t, 10, cfg.PriorityLimit)
	assert.True(t, cfg.IncludePrivate)
	assert.Equal(t, []string{"vendor"}, cfg.Exclude)
	// Unset values still fall back to defaults.
	assert.Equal(t, config.DefaultFramework, cfg.Framework)
}

func TestLoad_YAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "smart_test.yaml", "framework: unittest\npriority_limit: 3\n")

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "unittest", cfg.Framework)
	assert.Equal(t, 3, cfg.PriorityLimit)
}

func TestLoad_Pyproject(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "pyproject.toml", `[project]
name = "demo"

[tool.smart-test]
test_output_dir = "spec"
use_ai = true
`)

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "spec", cfg.TestOutputDir)
	assert.True(t, cfg.UseAI)
}

// A dedicated config file wins over pyproject.toml.
func TestLoad_Precedence(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "smart_test.json", `{"framework": "pytest-json"}`)
	writeConfig(t, root, "pyproject.toml", "[tool.smart-test]\nframework = \"pytest-toml\"\n")

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "pytest-json", cfg.Framework)
}

func TestLoad_MalformedFallsBackToDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "smart_test.json", "{not json")

	cfg, err := config.Load(root)
	assert.Error(t, err)
	assert.Equal(t, config.DefaultFramework, cfg.Framework)
	assert.Equal(t, config.DefaultPriorityLimit, cfg.PriorityLimit)
}
