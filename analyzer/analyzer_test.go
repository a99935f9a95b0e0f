package analyzer_test

import (
	"testing"

	"github.com/smarttest/smarttest/analyzer"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calcSource = `class Calculator:
    def __init__(self, precision):
        self.precision = precision

    def divide(self, a, b):
        if b == 0:
            raise ValueError("division by zero")
        return a / b


def add(a, b):
    return a + b
`

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, root, "calc.py", calcSource)
	writeTestFile(t, root, "tests/test_calc.py", "def test_add():\n    assert add(1, 2) == 3\n")
	// Files under excluded directories must never surface as subjects.
	writeTestFile(t, root, "venv/lib/site.py", "def hidden():\n    pass\n")
	return root
}

func TestAnalyzer_AnalyzeProject(t *testing.T) {
	root := setupProject(t)

	a := analyzer.New(nil)
	functions, outcomes, err := a.AnalyzeProject(root)
	require.NoError(t, err)

	byQualName := make(map[string]*graph.Function)
	for _, fn := range functions {
		byQualName[fn.QualName] = fn
	}

	require.Len(t, functions, 3)
	assert.Contains(t, byQualName, "Calculator.__init__")
	assert.Contains(t, byQualName, "Calculator.divide")
	assert.Contains(t, byQualName, "add")
	assert.NotContains(t, byQualName, "hidden")

	assert.True(t, byQualName["add"].HasTests)
	assert.False(t, byQualName["Calculator.divide"].HasTests)
	assert.Equal(t, "calc.py", byQualName["add"].ModuleRel)

	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.NotZero(t, outcomes[0].File.Digest)
}

// Re-analyzing an unchanged project yields identical records and digests.
func TestAnalyzer_Idempotent(t *testing.T) {
	root := setupProject(t)
	a := analyzer.New(nil)

	first, firstOutcomes, err := a.AnalyzeProject(root)
	require.NoError(t, err)
	second, secondOutcomes, err := a.AnalyzeProject(root)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Record(), second[i].Record())
	}
	require.Equal(t, len(firstOutcomes), len(secondOutcomes))
	assert.Equal(t, firstOutcomes[0].File.Digest, secondOutcomes[0].File.Digest)
}

func TestAnalyzer_ParseFailureIsNonFatal(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "good.py", "def keep(x):\n    return x\n")
	writeTestFile(t, root, "bad.py", "def broken(:\n    pass\n")

	a := analyzer.New(nil)
	functions, outcomes, err := a.AnalyzeProject(root)
	require.NoError(t, err)

	require.Len(t, functions, 1)
	assert.Equal(t, "keep", functions[0].QualName)

	var failed int
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestCollectTestFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "tests/helpers.py", "")
	writeTestFile(t, root, "pkg/test_api.py", "")
	writeTestFile(t, root, "pkg/api_test.py", "")
	writeTestFile(t, root, "pkg/api.py", "")
	writeTestFile(t, root, ".pytest_cache/test_cached.py", "")

	testFiles, err := analyzer.CollectTestFiles(root, []string{".pytest_cache"})
	require.NoError(t, err)

	names := make([]string, 0, len(testFiles))
	for _, path := range testFiles {
		names = append(names, path)
	}
	assert.Len(t, names, 3)
}
