package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smarttest/smarttest/generator"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_TestFilePath(t *testing.T) {
	writer := generator.NewWriter()
	fn := &graph.Function{ModuleRel: "pkg/calc.py"}
	assert.Equal(t, filepath.Join("tests", "test_calc.py"), writer.TestFilePath("tests", fn))
}

func TestWriter_WriteTests(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_calc.py")
	writer := generator.NewWriter()
	ctx := context.Background()

	err := writer.WriteTests(ctx, path, "calc", []string{"def test_add():\n    assert True\n"}, false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "import pytest")
	assert.Contains(t, content, "from calc import *")
	assert.Contains(t, content, "def test_add():")

	// Existing file is preserved unless forced.
	err = writer.WriteTests(ctx, path, "calc", []string{"def test_other():\n    assert True\n"}, false)
	assert.Error(t, err)

	err = writer.WriteTests(ctx, path, "calc", []string{"def test_other():\n    assert True\n"}, true)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "def test_add():")
	assert.Contains(t, string(data), "def test_other():")
}

func TestWriter_AppendMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_calc.py")
	writer := generator.NewWriter()
	ctx := context.Background()

	require.NoError(t, writer.WriteTests(ctx, path, "calc",
		[]string{"def test_add():\n    assert True\n"}, false))

	appended, err := writer.AppendMissing(ctx, path, "calc", map[string]string{
		"test_add":      "def test_add():\n    assert False\n",
		"test_subtract": "def test_subtract():\n    assert True\n",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, appended)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "def test_subtract():")
	// The existing body is untouched.
	assert.NotContains(t, content, "assert False")
}

func TestWriter_AppendMissingCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_calc.py")
	writer := generator.NewWriter()

	appended, err := writer.AppendMissing(context.Background(), path, "calc", map[string]string{
		"test_add": "def test_add():\n    assert True\n",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, appended)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "import pytest")
	assert.Contains(t, string(data), "def test_add():")
}
