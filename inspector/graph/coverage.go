package graph

// CoverageMap maps a file path, exactly as written in the coverage report,
// to the set of line numbers reported as executed.
type CoverageMap map[string]map[int]bool

// Covered reports whether the given file/line pair was executed. A filename
// absent from the report yields false rather than an error.
func (c CoverageMap) Covered(filename string, line int) bool {
	lines, ok := c[filename]
	if !ok {
		return false
	}
	return lines[line]
}

// Add marks a line of the given file as covered.
func (c CoverageMap) Add(filename string, line int) {
	lines, ok := c[filename]
	if !ok {
		lines = make(map[int]bool)
		c[filename] = lines
	}
	lines[line] = true
}

// Summary aggregates per-function results for reporting
type Summary struct {
	NeedTestsCount    int      `json:"need_tests_count"`
	LowCoverageCount  int      `json:"low_coverage_count"`
	PriorityFunctions []string `json:"priority_functions"`
}
