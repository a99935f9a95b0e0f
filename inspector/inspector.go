package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/smarttest/smarttest/inspector/python"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts records
	InspectSource(src []byte) (*graph.File, error)

	// InspectFile parses a source file and extracts records
	InspectFile(filename string) (*graph.File, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	config *graph.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".py", ".pyi":
		return python.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}

	return inspector.InspectFile(filename)
}
