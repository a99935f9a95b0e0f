package analyzer

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/smarttest/smarttest/inspector/graph"
)

// coberturaLine is one line element of a Cobertura-style report
type coberturaLine struct {
	Number int `xml:"number,attr"`
	Hits   int `xml:"hits,attr"`
}

// coberturaClass is one class element carrying a filename and its lines
type coberturaClass struct {
	Filename string          `xml:"filename,attr"`
	Lines    []coberturaLine `xml:"lines>line"`
}

// coberturaReport is the root coverage element of the report
type coberturaReport struct {
	XMLName xml.Name         `xml:"coverage"`
	Classes []coberturaClass `xml:"packages>package>classes>class"`
}

// ParseCoverageXML reads a Cobertura-style XML report and returns the set
// of covered lines per reported filename. A line counts as covered when
// its hits attribute exceeds zero. A malformed report is a fatal error for
// the invoking command: no partial coverage results are produced.
func ParseCoverageXML(path string) (graph.CoverageMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage report %s: %w", path, err)
	}

	var report coberturaReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse coverage report %s: %w", path, err)
	}

	coverage := make(graph.CoverageMap)
	for _, class := range report.Classes {
		for _, line := range class.Lines {
			if line.Hits > 0 {
				coverage.Add(class.Filename, line.Number)
			}
		}
	}
	return coverage, nil
}

// MapCoverage marks each function covered when its declaration line is in
// the covered set keyed by an exact match of the record's relative module
// path against the report's filename attribute. A path-representation
// mismatch silently yields "not covered". This is the only place records
// are mutated after extraction.
func MapCoverage(functions []*graph.Function, coverage graph.CoverageMap) {
	for _, fn := range functions {
		if coverage.Covered(fn.ModuleRel, fn.Line) {
			fn.Covered = true
		}
	}
}
