package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/smarttest/smarttest/inspector/graph"
)

// introspectScript imports the target module in-process and prints the
// resolved parameter names as JSON. The receiver parameter is excluded so
// the output matches the call-site arity.
const introspectScript = `
import importlib, inspect, json, sys
sys.path.insert(0, sys.argv[1])
module = importlib.import_module(sys.argv[2])
target = module
for part in sys.argv[3].split("."):
    target = getattr(target, part)
params = [
    p.name for p in inspect.signature(target).parameters.values()
    if p.name not in ("self", "cls")
]
print(json.dumps(params))
`

// LiveSignatures resolves parameters by importing the target module with
// the project's Python interpreter. Import-time side effects of the target
// module run inside the subprocess, never in this process.
type LiveSignatures struct {
	// Python names the interpreter binary, python3 when empty.
	Python string
	// Timeout bounds a single introspection call, 10s when zero.
	Timeout time.Duration
}

// ParameterNames imports the function's module and inspects its signature.
func (l *LiveSignatures) ParameterNames(fn *graph.Function, root string) ([]string, error) {
	python := l.Python
	if python == "" {
		python = "python3"
	}
	timeout := l.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, python, "-c", introspectScript,
		root, ModulePath(fn.ModuleRel), fn.QualName)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to introspect %s: %w (%s)",
			fn.QualName, err, strings.TrimSpace(stderr.String()))
	}

	var params []string
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &params); err != nil {
		return nil, fmt.Errorf("failed to decode signature of %s: %w", fn.QualName, err)
	}
	return params, nil
}

// ModulePath converts a relative file path to an importable module path
func ModulePath(rel string) string {
	rel = strings.TrimSuffix(rel, ".py")
	return strings.ReplaceAll(rel, "/", ".")
}
