package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const fileHeader = "# Generated by smarttest. Review assertions before committing.\n"

// preamble renders the import header of a generated test file.
func preamble(module string) string {
	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString("import pytest\n")
	if module != "" {
		fmt.Fprintf(&b, "\nfrom %s import *\n", module)
	}
	return b.String()
}

// Writer persists generated test files under the configured output
// directory. One test file is written per analyzed module.
type Writer struct {
	fs afs.Service
}

// NewWriter creates a test file writer.
func NewWriter() *Writer {
	return &Writer{fs: afs.New()}
}

// TestFilePath returns the destination for a function's test file:
// test_<module stem>.py inside the output directory.
func (w *Writer) TestFilePath(outputDir string, fn *graph.Function) string {
	name := strings.TrimSuffix(filepath.Base(fn.ModuleRel), ".py")
	return filepath.Join(outputDir, "test_"+name+".py")
}

// WriteTests writes a new test file with the given bodies, importing the
// module under test. An existing file is only replaced when force is set.
func (w *Writer) WriteTests(ctx context.Context, path, module string, bodies []string, force bool) error {
	exists, err := w.fs.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to check test file %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("test file %s already exists, use --force to overwrite", path)
	}

	content := preamble(module) + "\n\n" + strings.Join(bodies, "\n\n")
	if err := w.fs.Upload(ctx, path, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write test file %s: %w", path, err)
	}
	return nil
}

// AppendMissing appends the bodies whose test name does not yet appear in
// the file, keyed by test name. A missing file is created. It returns the
// number of bodies appended.
func (w *Writer) AppendMissing(ctx context.Context, path, module string, bodies map[string]string) (int, error) {
	var existing string
	ok, err := w.fs.Exists(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to check test file %s: %w", path, err)
	}
	if ok {
		data, err := w.fs.DownloadWithURL(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("failed to read test file %s: %w", path, err)
		}
		existing = string(data)
	} else {
		existing = preamble(module)
	}

	names := make([]string, 0, len(bodies))
	for name := range bodies {
		names = append(names, name)
	}
	sort.Strings(names)

	appended := 0
	var b strings.Builder
	b.WriteString(existing)
	for _, name := range names {
		if strings.Contains(existing, "def "+name+"(") {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(bodies[name])
		appended++
	}
	if appended == 0 {
		return 0, nil
	}

	if err := w.fs.Upload(ctx, path, file.DefaultFileOsMode, strings.NewReader(b.String())); err != nil {
		return 0, fmt.Errorf("failed to update test file %s: %w", path, err)
	}
	return appended, nil
}
