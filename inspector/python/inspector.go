package python

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smarttest/smarttest/inspector/graph"
)

// Inspector provides functionality to inspect Python code and extract
// testable functions, classes and imports
type Inspector struct {
	config *graph.Config
}

// NewInspector creates a new Python Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{
		config: config,
	}
}

// InspectSource parses Python source code from a byte slice and extracts records
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.inspect(src, "source.py")
}

// InspectFile parses a Python source file and extracts records
func (i *Inspector) InspectFile(filename string) (*graph.File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspect(src, filename)
}

func (i *Inspector) inspect(src []byte, filename string) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, fmt.Errorf("syntax error in %s", filename)
	}

	return i.processPythonFile(rootNode, src, filename)
}

// processPythonFile extracts functions, classes, and imports from a parsed file
func (i *Inspector) processPythonFile(rootNode *sitter.Node, src []byte, filename string) (*graph.File, error) {
	aFile := &graph.File{Path: filename}

	digest, err := graph.Digest(src)
	if err != nil {
		return nil, fmt.Errorf("failed to digest %s: %w", filename, err)
	}
	aFile.Digest = digest

	i.walk(rootNode, src, nil, aFile)
	return aFile, nil
}

// walk traverses the entire tree so that functions nested at any depth are
// captured, carrying an explicit enclosing-class stack instead of relying
// on the call stack.
func (i *Inspector) walk(node *sitter.Node, src []byte, classStack []string, aFile *graph.File) {
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		childNode := node.NamedChild(int(j))
		switch childNode.Type() {
		case "import_statement", "import_from_statement", "future_import_statement":
			aFile.Imports = append(aFile.Imports, &graph.Import{
				Statement: childNode.Content(src),
				Line:      int(childNode.StartPoint().Row + 1),
			})
		case "class_definition":
			i.processClass(childNode, src, classStack, aFile)
		case "function_definition":
			i.processFunction(childNode, src, classStack, nil, aFile)
		case "decorated_definition":
			i.processDecorated(childNode, src, classStack, aFile)
		default:
			i.walk(childNode, src, classStack, aFile)
		}
	}
}

// processClass records the class and descends into its body with the class
// name pushed onto the enclosing-class stack
func (i *Inspector) processClass(node *sitter.Node, src []byte, classStack []string, aFile *graph.File) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(src)
	aFile.Classes = append(aFile.Classes, &graph.Class{
		Name: name,
		Line: int(node.StartPoint().Row + 1),
	})

	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		i.walk(bodyNode, src, append(classStack, name), aFile)
	}
}

// processDecorated unwraps a decorated_definition and forwards the captured
// decorator texts to the wrapped function or class
func (i *Inspector) processDecorated(node *sitter.Node, src []byte, classStack []string, aFile *graph.File) {
	var decorators []string
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		childNode := node.NamedChild(int(j))
		if childNode.Type() == "decorator" {
			text := strings.TrimSpace(strings.TrimPrefix(childNode.Content(src), "@"))
			decorators = append(decorators, text)
		}
	}

	defNode := node.ChildByFieldName("definition")
	if defNode == nil {
		return
	}
	switch defNode.Type() {
	case "function_definition":
		i.processFunction(defNode, src, classStack, decorators, aFile)
	case "class_definition":
		i.processClass(defNode, src, classStack, aFile)
	}
}

// processFunction builds a Function record unless the name is excluded. The
// body is walked either way so nested definitions and imports are not lost.
func (i *Inspector) processFunction(node *sitter.Node, src []byte, classStack []string, decorators []string, aFile *graph.File) {
	bodyNode := node.ChildByFieldName("body")
	defer func() {
		if bodyNode != nil {
			i.walk(bodyNode, src, classStack, aFile)
		}
	}()

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(src)

	// Functions following the test naming convention are never subjects
	// under test themselves.
	if strings.HasPrefix(name, "test_") {
		return
	}
	// Private helpers are excluded, the initializer is always kept.
	if !i.config.IncludePrivate && strings.HasPrefix(name, "_") && name != "__init__" {
		return
	}

	className := ""
	if len(classStack) > 0 {
		className = classStack[len(classStack)-1]
	}
	qualName := name
	if className != "" {
		qualName = className + "." + name
	}

	fn := &graph.Function{
		Name:       name,
		QualName:   qualName,
		File:       aFile.Path,
		Line:       int(node.StartPoint().Row + 1),
		Params:     parseParameters(node, src, className != ""),
		ReturnType: parseReturnType(node, src),
		Docstring:  parseDocstring(bodyNode, src),
		Decorators: decorators,
		IsAsync:    isAsync(node),
		ClassName:  className,
		Source:     node.Content(src),
		Complexity: Complexity(node),
	}
	aFile.AddFunction(fn)
}

// isAsync reports whether the function_definition carries the async keyword
func isAsync(node *sitter.Node) bool {
	for j := uint32(0); j < node.ChildCount(); j++ {
		if node.Child(int(j)).Type() == "async" {
			return true
		}
	}
	return false
}
