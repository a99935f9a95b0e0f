package graph

import "strings"

// Function represents one testable unit extracted from a Python source file.
// The matcher sets HasTests once per run; the coverage mapper flips Covered
// in place; every other field is fixed at extraction time.
type Function struct {
	Name       string   // Bare function name
	QualName   string   // ClassName.method for methods, Name otherwise
	File       string   // Absolute path of the declaring file
	ModuleRel  string   // Slash-separated path relative to the project root
	Line       int      // 1-based declaration line
	Params     []string // Ordered parameter names, receiver stripped for methods
	ReturnType string   // Literal return annotation text, empty when absent
	Docstring  string   // First statement string literal, empty when absent
	Decorators []string // Literal decorator texts in source order
	IsAsync    bool
	ClassName  string // Enclosing class name, empty for free functions
	Source     string // Raw source text of the definition
	Complexity int    // Structural complexity, always >= 1
	HasTests   bool
	Covered    bool
}

// IsMethod reports whether the function is declared inside a class.
func (f *Function) IsMethod() bool {
	return f.ClassName != ""
}

// IsConstructor reports whether the function is an initializer.
func (f *Function) IsConstructor() bool {
	return f.Name == "__init__"
}

// TestName returns the conventional test function name for this record.
func (f *Function) TestName() string {
	return "test_" + strings.ReplaceAll(f.QualName, ".", "_")
}

// Record is the serializable shape handed to the CLI layer.
type Record struct {
	File      string `json:"file"`
	ModuleRel string `json:"module_rel"`
	QualName  string `json:"qualname"`
	Line      int    `json:"lineno"`
	HasTests  bool   `json:"has_tests"`
	Covered   bool   `json:"covered"`
}

// Record returns the CLI-facing projection of the function.
func (f *Function) Record() Record {
	return Record{
		File:      f.File,
		ModuleRel: f.ModuleRel,
		QualName:  f.QualName,
		Line:      f.Line,
		HasTests:  f.HasTests,
		Covered:   f.Covered,
	}
}

// Class represents a class declared in a source file
type Class struct {
	Name string
	Line int
}

// Import represents an import statement captured as its literal source text
type Import struct {
	Statement string
	Line      int
}
