package generator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/smarttest/smarttest/generator"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/stretchr/testify/assert"
)

type failingProvider struct{}

func (failingProvider) ParameterNames(fn *graph.Function, root string) ([]string, error) {
	return nil, errors.New("module not importable")
}

func TestSkeleton_Generate(t *testing.T) {
	tests := []struct {
		name         string
		fn           *graph.Function
		wantContains []string
	}{
		{
			name: "free function",
			fn: &graph.Function{
				Name: "add", QualName: "add",
				ModuleRel: "calc.py", Params: []string{"a", "b"},
			},
			wantContains: []string{
				"def test_add():",
				"result = add(None, None)",
				"assert result is not None",
			},
		},
		{
			name: "method constructs the instance first",
			fn: &graph.Function{
				Name: "divide", QualName: "Calculator.divide",
				ModuleRel: "calc.py", ClassName: "Calculator",
				Params: []string{"a", "b"},
			},
			wantContains: []string{
				"def test_Calculator_divide():",
				"instance = Calculator()",
				"result = instance.divide(None, None)",
			},
		},
		{
			name: "initializer asserts construction",
			fn: &graph.Function{
				Name: "__init__", QualName: "Calculator.__init__",
				ModuleRel: "calc.py", ClassName: "Calculator",
				Params: []string{"precision"},
			},
			wantContains: []string{
				"def test_Calculator___init__():",
				"instance = Calculator(None)",
				"assert instance is not None",
			},
		},
		{
			name: "no parameters",
			fn: &graph.Function{
				Name: "reset", QualName: "reset", ModuleRel: "calc.py",
			},
			wantContains: []string{"result = reset()"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skeleton := generator.NewSkeleton(generator.StaticSignatures{})
			body := skeleton.Generate(tt.fn, ".")
			for _, want := range tt.wantContains {
				assert.Contains(t, body, want)
			}
		})
	}
}

// A failed signature lookup still yields a named, passing placeholder.
func TestSkeleton_Fallback(t *testing.T) {
	skeleton := generator.NewSkeleton(failingProvider{})
	fn := &graph.Function{
		Name: "divide", QualName: "Calculator.divide",
		ModuleRel: "calc.py", ClassName: "Calculator",
	}

	body := skeleton.Generate(fn, ".")
	assert.Contains(t, body, "def test_Calculator_divide():")
	assert.Contains(t, body, "Calculator.divide")
	assert.Contains(t, body, "assert True")
	assert.NotContains(t, body, "instance =")
}

func TestModulePath(t *testing.T) {
	assert.Equal(t, "calc", generator.ModulePath("calc.py"))
	assert.Equal(t, "pkg.sub.mod", generator.ModulePath("pkg/sub/mod.py"))
}

func TestSkeleton_NilProviderDefaultsToStatic(t *testing.T) {
	skeleton := generator.NewSkeleton(nil)
	fn := &graph.Function{Name: "add", QualName: "add", ModuleRel: "calc.py", Params: []string{"a"}}
	body := skeleton.Generate(fn, ".")
	assert.True(t, strings.Contains(body, "add(None)"))
}
