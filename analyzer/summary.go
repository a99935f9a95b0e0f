package analyzer

import (
	"github.com/smarttest/smarttest/inspector/graph"
)

// defaultPriorityLimit bounds the reported priority list when the caller
// passes no limit.
const defaultPriorityLimit = 5

// Summarize aggregates per-function results into reportable statistics.
// A function needs attention when it has no tests or, when a coverage
// report was mapped, is not covered; without a report the covered flag
// carries no signal and is ignored. Initializers are listed first in the
// priority window; the discovery order is preserved otherwise. The input
// records are not mutated.
func Summarize(functions []*graph.Function, limit int, withCoverage bool) *graph.Summary {
	if limit <= 0 {
		limit = defaultPriorityLimit
	}

	var needAttention []*graph.Function
	modules := make(map[string]bool)
	for _, fn := range functions {
		if !fn.HasTests || (withCoverage && !fn.Covered) {
			needAttention = append(needAttention, fn)
			modules[fn.ModuleRel] = true
		}
	}

	// Stable partition: constructors first, everything else in order.
	var priority []*graph.Function
	for _, fn := range needAttention {
		if fn.IsConstructor() {
			priority = append(priority, fn)
		}
	}
	for _, fn := range needAttention {
		if !fn.IsConstructor() {
			priority = append(priority, fn)
		}
	}
	if len(priority) > limit {
		priority = priority[:limit]
	}

	names := make([]string, 0, len(priority))
	for _, fn := range priority {
		names = append(names, fn.QualName)
	}

	return &graph.Summary{
		NeedTestsCount:    len(needAttention),
		LowCoverageCount:  len(modules),
		PriorityFunctions: names,
	}
}
