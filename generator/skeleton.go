package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/smarttest/smarttest/inspector/graph"
)

// SignatureProvider resolves the call parameters of a function. Providers
// that cannot resolve a signature return an error; the skeleton builder
// degrades to a fallback body instead of failing.
type SignatureProvider interface {
	ParameterNames(fn *graph.Function, root string) ([]string, error)
}

// StaticSignatures resolves parameters from the extracted record alone.
// It never fails: the record always carries the declared parameter list.
type StaticSignatures struct{}

// ParameterNames returns the record's declared parameters.
func (StaticSignatures) ParameterNames(fn *graph.Function, root string) ([]string, error) {
	return fn.Params, nil
}

// Skeleton builds pytest-style test skeletons for extracted functions.
type Skeleton struct {
	signatures SignatureProvider
}

// NewSkeleton creates a skeleton builder using the given signature
// provider; a nil provider falls back to static record signatures.
func NewSkeleton(signatures SignatureProvider) *Skeleton {
	if signatures == nil {
		signatures = StaticSignatures{}
	}
	return &Skeleton{signatures: signatures}
}

// Generate returns the test skeleton source for the function. It never
// fails: when the signature cannot be resolved the result is a minimal
// placeholder body that still carries the conventional test name.
func (s *Skeleton) Generate(fn *graph.Function, root string) string {
	params, err := s.signatures.ParameterNames(fn, root)
	if err != nil {
		slog.Debug("signature lookup failed, using placeholder body",
			"function", fn.QualName, "error", err)
		return s.fallback(fn)
	}
	return s.render(fn, params)
}

// render produces the preferred skeleton: an arrange/act/assert body with
// one None argument per parameter.
func (s *Skeleton) render(fn *graph.Function, params []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "def %s():\n", fn.TestName())
	fmt.Fprintf(&b, "    \"\"\"Test for %s.\"\"\"\n", fn.QualName)

	args := placeholderArgs(len(params))

	switch {
	case fn.IsConstructor():
		fmt.Fprintf(&b, "    instance = %s(%s)\n", fn.ClassName, args)
		b.WriteString("    assert instance is not None\n")
	case fn.IsMethod():
		fmt.Fprintf(&b, "    instance = %s()\n", fn.ClassName)
		fmt.Fprintf(&b, "    result = instance.%s(%s)\n", fn.Name, args)
		b.WriteString("    assert result is not None  # adjust expected value\n")
	default:
		fmt.Fprintf(&b, "    result = %s(%s)\n", fn.Name, args)
		b.WriteString("    assert result is not None  # adjust expected value\n")
	}

	b.WriteString("    # cleanup if needed\n")
	return b.String()
}

// fallback produces the minimal skeleton used when no signature is
// available. It always parses and always passes.
func (s *Skeleton) fallback(fn *graph.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def %s():\n", fn.TestName())
	fmt.Fprintf(&b, "    # TODO: implement test for %s\n", fn.QualName)
	b.WriteString("    assert True\n")
	return b.String()
}

// placeholderArgs renders n comma-separated None arguments
func placeholderArgs(n int) string {
	if n == 0 {
		return ""
	}
	args := make([]string, n)
	for i := range args {
		args[i] = "None"
	}
	return strings.Join(args, ", ")
}
