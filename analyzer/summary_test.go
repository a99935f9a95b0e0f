package analyzer_test

import (
	"testing"

	"github.com/smarttest/smarttest/analyzer"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	functions := []*graph.Function{
		{Name: "add", QualName: "add", ModuleRel: "calc.py", HasTests: false, Covered: true},
		{Name: "divide", QualName: "Calculator.divide", ModuleRel: "calc.py", ClassName: "Calculator", HasTests: true, Covered: false},
		{Name: "__init__", QualName: "Parser.__init__", ModuleRel: "parser.py", ClassName: "Parser", HasTests: false, Covered: false},
		{Name: "parse", QualName: "Parser.parse", ModuleRel: "parser.py", ClassName: "Parser", HasTests: true, Covered: true},
	}

	summary := analyzer.Summarize(functions, 0, true)

	assert.Equal(t, 3, summary.NeedTestsCount)
	assert.Equal(t, 2, summary.LowCoverageCount)
	// Initializers come first, the rest keeps discovery order.
	assert.Equal(t, []string{"Parser.__init__", "add", "Calculator.divide"}, summary.PriorityFunctions)
}

// Without a mapped report the covered flag carries no signal: tested
// functions stay off the attention list, and no record is mutated.
func TestSummarize_WithoutCoverage(t *testing.T) {
	functions := []*graph.Function{
		{Name: "add", QualName: "add", ModuleRel: "calc.py", HasTests: true, Covered: false},
		{Name: "mul", QualName: "mul", ModuleRel: "calc.py", HasTests: false, Covered: false},
	}

	summary := analyzer.Summarize(functions, 0, false)

	assert.Equal(t, 1, summary.NeedTestsCount)
	assert.Equal(t, []string{"mul"}, summary.PriorityFunctions)
	assert.False(t, functions[0].Covered)
	assert.False(t, functions[1].Covered)
}

func TestSummarize_LimitTruncates(t *testing.T) {
	functions := []*graph.Function{
		{Name: "a", QualName: "a", ModuleRel: "m.py"},
		{Name: "b", QualName: "b", ModuleRel: "m.py"},
		{Name: "c", QualName: "c", ModuleRel: "m.py"},
	}

	summary := analyzer.Summarize(functions, 2, true)
	assert.Equal(t, 3, summary.NeedTestsCount)
	assert.Equal(t, []string{"a", "b"}, summary.PriorityFunctions)
}

func TestSummarize_AllHealthy(t *testing.T) {
	functions := []*graph.Function{
		{Name: "a", QualName: "a", ModuleRel: "m.py", HasTests: true, Covered: true},
	}

	summary := analyzer.Summarize(functions, 0, true)
	assert.Equal(t, 0, summary.NeedTestsCount)
	assert.Equal(t, 0, summary.LowCoverageCount)
	assert.Empty(t, summary.PriorityFunctions)
}
