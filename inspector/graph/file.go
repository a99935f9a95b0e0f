package graph

// File represents the analysis result for one source unit
type File struct {
	Path      string // Absolute path
	RelPath   string // Path relative to the project root, slash-separated
	Digest    uint64 // Content digest of the raw source
	Functions []*Function
	Classes   []*Class
	Imports   []*Import

	functionMap map[string]int // Map of functions for quick lookup
}

// TotalComplexity sums the complexity of every function in the file.
func (f *File) TotalComplexity() int {
	total := 0
	for _, fn := range f.Functions {
		total += fn.Complexity
	}
	return total
}

// AverageComplexity returns the mean complexity, 0 for a file without functions.
func (f *File) AverageComplexity() float64 {
	if len(f.Functions) == 0 {
		return 0
	}
	return float64(f.TotalComplexity()) / float64(len(f.Functions))
}

// AddFunction appends a function and indexes it by qualname.
func (f *File) AddFunction(fn *Function) {
	if f.functionMap == nil {
		f.functionMap = make(map[string]int)
	}
	f.Functions = append(f.Functions, fn)
	f.functionMap[fn.QualName] = len(f.Functions) - 1
}

// LookupFunction retrieves a function by qualname from the file
func (f *File) LookupFunction(qualName string) *Function {
	if f.functionMap == nil {
		return nil
	}
	if idx, ok := f.functionMap[qualName]; ok && idx < len(f.Functions) {
		return f.Functions[idx]
	}
	return nil
}

// HasFunction checks if a function with the given qualname exists in the file
func (f *File) HasFunction(qualName string) bool {
	if f.functionMap == nil {
		return false
	}
	_, ok := f.functionMap[qualName]
	return ok
}
