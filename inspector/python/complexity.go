package python

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// branchNodeTypes are the constructs that add one point of structural
// complexity wherever they appear inside a function body: conditional
// branches, loops, exception handling (the try plus each handler), and
// scoped resource acquisition.
var branchNodeTypes = map[string]bool{
	"if_statement":     true,
	"elif_clause":      true,
	"for_statement":    true,
	"while_statement":  true,
	"try_statement":    true,
	"except_clause":    true,
	"with_statement":   true,
	"boolean_operator": true,
}

// Complexity computes the structural cyclomatic score of a function
// definition. Every function starts at 1; each branch construct adds 1.
// Chained and/or expressions nest one boolean_operator node per extra
// operand, so counting the nodes yields k-1 for k operands.
//
// This is a structural approximation, not a flow-graph-accurate McCabe
// count.
func Complexity(node *sitter.Node) int {
	score := 1
	countBranches(node, &score)
	return score
}

func countBranches(node *sitter.Node, score *int) {
	for j := uint32(0); j < node.ChildCount(); j++ {
		childNode := node.Child(int(j))
		if branchNodeTypes[childNode.Type()] {
			*score++
		}
		countBranches(childNode, score)
	}
}
