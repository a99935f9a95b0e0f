package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/smarttest/smarttest/inspector/graph"
)

// Matcher decides, per function, whether a corresponding test likely
// exists. The check is literal substring containment over candidate test
// files: incidental over- and under-matches are an accepted property of
// the heuristic, not a defect.
type Matcher struct {
	testFiles []string
	contents  map[string]string
}

// NewMatcher creates a matcher over the given candidate test files.
func NewMatcher(testFiles []string) *Matcher {
	return &Matcher{
		testFiles: testFiles,
		contents:  make(map[string]string),
	}
}

// HasTests reports whether any relevant candidate file contains a test
// naming the function. A candidate is relevant when its filename stem
// contains the module's stem, or, for methods, case-insensitively contains
// the enclosing class name.
func (m *Matcher) HasTests(fn *graph.Function) bool {
	moduleStem := stem(fn.ModuleRel)

	for _, testFile := range m.testFiles {
		testStem := stem(testFile)
		relevant := strings.Contains(testStem, moduleStem)
		if !relevant && fn.IsMethod() {
			relevant = strings.Contains(strings.ToLower(testStem), strings.ToLower(fn.ClassName))
		}
		if !relevant {
			continue
		}

		text, ok := m.read(testFile)
		if !ok {
			continue
		}
		if strings.Contains(text, "test_"+fn.Name) || strings.Contains(text, fn.TestName()) {
			return true
		}
		if fn.IsMethod() && strings.Contains(text, "Test"+fn.ClassName) {
			return true
		}
	}
	return false
}

// read returns the cached content of a candidate file; an unreadable file
// is skipped rather than failing the run.
func (m *Matcher) read(path string) (string, bool) {
	if text, ok := m.contents[path]; ok {
		return text, true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	m.contents[path] = string(data)
	return m.contents[path], true
}

// stem returns the filename without directory or extension
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
