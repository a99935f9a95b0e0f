package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// parseParameters extracts ordered parameter names from a function
// definition. The implicit self/cls receiver is stripped for methods;
// *args/**kwargs splats are not part of the declared positional list.
func parseParameters(node *sitter.Node, src []byte, isMethod bool) []string {
	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []string
	for j := uint32(0); j < paramsNode.NamedChildCount(); j++ {
		paramNode := paramsNode.NamedChild(int(j))
		name := parameterName(paramNode, src)
		if name != "" {
			params = append(params, name)
		}
	}

	if isMethod && len(params) > 0 && (params[0] == "self" || params[0] == "cls") {
		params = params[1:]
	}
	return params
}

// parameterName resolves the identifier of a single parameter node
func parameterName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "identifier":
		return node.Content(src)
	case "typed_parameter":
		for j := uint32(0); j < node.NamedChildCount(); j++ {
			childNode := node.NamedChild(int(j))
			if childNode.Type() == "identifier" {
				return childNode.Content(src)
			}
		}
	case "default_parameter", "typed_default_parameter":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			return nameNode.Content(src)
		}
	}
	// list_splat_pattern, dictionary_splat_pattern and separators fall
	// through: they are not declared positional parameters.
	return ""
}

// parseReturnType captures the literal return annotation text, if any
func parseReturnType(node *sitter.Node, src []byte) string {
	returnNode := node.ChildByFieldName("return_type")
	if returnNode == nil {
		return ""
	}
	return returnNode.Content(src)
}

// parseDocstring returns the docstring when the first statement of the body
// is a plain string literal
func parseDocstring(bodyNode *sitter.Node, src []byte) string {
	if bodyNode == nil || bodyNode.NamedChildCount() == 0 {
		return ""
	}
	stmtNode := bodyNode.NamedChild(0)
	if stmtNode.Type() != "expression_statement" || stmtNode.NamedChildCount() == 0 {
		return ""
	}
	strNode := stmtNode.NamedChild(0)
	if strNode.Type() != "string" {
		return ""
	}
	return cleanStringLiteral(strNode.Content(src))
}

// cleanStringLiteral strips prefixes and quotes from a string literal
func cleanStringLiteral(literal string) string {
	s := strings.TrimLeft(literal, "rRbBuUfF")
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			s = s[len(quote) : len(s)-len(quote)]
			break
		}
	}
	return strings.TrimSpace(s)
}
