package analyzer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/smarttest/smarttest/config"
	"github.com/smarttest/smarttest/inspector"
	"github.com/smarttest/smarttest/inspector/graph"
)

// FileOutcome is the per-file result of one analysis pass: either the
// extracted records or the reason the file was skipped. Skipping a file
// never aborts the batch.
type FileOutcome struct {
	Path string
	File *graph.File
	Err  error
}

// Analyzer runs the single synchronous analysis pass over a project root.
type Analyzer struct {
	config  *config.Config
	factory *inspector.Factory
}

// New creates an Analyzer bound to an immutable configuration snapshot.
func New(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = &config.Config{Exclude: config.DefaultExclude}
	}
	return &Analyzer{
		config:  cfg,
		factory: inspector.NewFactory(&graph.Config{IncludePrivate: cfg.IncludePrivate}),
	}
}

// AnalyzeProject discovers Python files under root, extracts function
// records from each, and marks the ones for which tests likely exist.
// The returned records preserve discovery order. A failure to enumerate
// the root is fatal; per-file parse failures are reported in the outcomes
// and skipped.
func (a *Analyzer) AnalyzeProject(root string) ([]*graph.Function, []FileOutcome, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve project root %s: %w", root, err)
	}

	testFiles, err := CollectTestFiles(absRoot, a.config.Exclude)
	if err != nil {
		return nil, nil, err
	}
	matcher := NewMatcher(testFiles)

	var functions []*graph.Function
	var outcomes []FileOutcome

	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != absRoot && a.excluded(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".py" || a.excluded(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Test files are candidates for the matcher, not subjects.
		if isTestFile(rel) {
			return nil
		}

		aFile, err := a.factory.InspectFile(path)
		if err != nil {
			slog.Warn("skipping file", "path", rel, "error", err)
			outcomes = append(outcomes, FileOutcome{Path: path, Err: err})
			return nil
		}
		aFile.RelPath = rel

		for _, fn := range aFile.Functions {
			fn.File = path
			fn.ModuleRel = rel
			fn.HasTests = matcher.HasTests(fn)
			functions = append(functions, fn)
		}
		outcomes = append(outcomes, FileOutcome{Path: path, File: aFile})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk project root %s: %w", absRoot, err)
	}

	return functions, outcomes, nil
}

// excluded matches a path element against the configured exclusion patterns
func (a *Analyzer) excluded(name string) bool {
	for _, pattern := range a.config.Exclude {
		if pattern == name {
			return true
		}
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			// A bad pattern should not break scanning.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// isTestFile reports whether the relative path names a test file by
// convention: inside a tests directory, or test_*/ *_test named.
func isTestFile(rel string) bool {
	base := filepath.Base(rel)
	if matchesTestPattern(base) {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/") {
		if part == "tests" {
			return true
		}
	}
	return false
}

func matchesTestPattern(base string) bool {
	for _, pattern := range []string{"test_*.py", "*_test.py"} {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// CollectTestFiles gathers candidate test files: everything under a
// conventional tests directory plus test_*/ *_test named files anywhere
// under the root.
func CollectTestFiles(root string, exclude []string) ([]string, error) {
	var testFiles []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			for _, pattern := range exclude {
				if matched, _ := doublestar.Match(pattern, entry.Name()); matched || pattern == entry.Name() {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if filepath.Ext(path) != ".py" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if isTestFile(filepath.ToSlash(rel)) {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect test files under %s: %w", root, err)
	}
	return testFiles, nil
}
