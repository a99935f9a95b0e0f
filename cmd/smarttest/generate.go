package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/smarttest/smarttest/analyzer"
	"github.com/smarttest/smarttest/config"
	"github.com/smarttest/smarttest/generator"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/urfave/cli/v2"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate test skeletons for untested functions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "directory for generated test files",
			},
			&cli.StringSliceFlag{
				Name:    "function",
				Aliases: []string{"f"},
				Usage:   "only generate for the named function (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "module",
				Aliases: []string{"m"},
				Usage:   "only generate for the given module path (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite existing test files",
			},
			&cli.BoolFlag{
				Name:  "update",
				Usage: "append only tests missing from existing files",
			},
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "print generated tests without writing files",
			},
			&cli.BoolFlag{
				Name:  "no-ai",
				Usage: "skip the generative model, skeletons only",
			},
			&cli.BoolFlag{
				Name:  "no-introspect",
				Usage: "resolve signatures from source only, never import the project",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	root, _ := resolveRoot(c.String("root"))
	cfg, err := config.Load(root)
	if err != nil {
		slog.Warn("using default configuration", "error", err)
	}

	a := analyzer.New(cfg)
	functions, _, err := a.AnalyzeProject(root)
	if err != nil {
		return err
	}

	targets := selectTargets(functions, c.StringSlice("function"), c.StringSlice("module"))
	if len(targets) == 0 {
		fmt.Println("No untested functions matched, nothing to generate.")
		return nil
	}

	var provider generator.SignatureProvider = &generator.LiveSignatures{}
	if c.Bool("no-introspect") {
		provider = generator.StaticSignatures{}
	}
	skeleton := generator.NewSkeleton(provider)

	var llm *generator.Client
	if cfg.UseAI && !c.Bool("no-ai") {
		if cfg.APIKey == "" {
			slog.Warn("no API key configured, falling back to skeletons")
		} else {
			llm = generator.NewClient(cfg.APIKey, cfg.Model, cfg.Framework)
		}
	}

	outputDir := resolveOutputDir(c.String("output-dir"), root, cfg.TestOutputDir)

	return writeTests(c, targets, skeleton, llm, root, outputDir)
}

// resolveOutputDir picks the destination for generated files: an explicit
// flag wins as-is, otherwise the configured directory anchored at the
// project root.
func resolveOutputDir(flagValue, root, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(root, configured)
}

// selectTargets keeps untested functions, narrowed by the optional
// function and module filters. Filters match by containment, so a bare
// name selects every qualname carrying it.
func selectTargets(functions []*graph.Function, names, modules []string) []*graph.Function {
	var targets []*graph.Function
	for _, fn := range functions {
		if fn.HasTests {
			continue
		}
		if len(names) > 0 && !containsName(names, fn) {
			continue
		}
		if len(modules) > 0 && !containsModule(modules, fn.ModuleRel) {
			continue
		}
		targets = append(targets, fn)
	}
	return targets
}

func containsName(names []string, fn *graph.Function) bool {
	for _, name := range names {
		if strings.Contains(fn.QualName, name) {
			return true
		}
	}
	return false
}

func containsModule(modules []string, rel string) bool {
	for _, module := range modules {
		if strings.Contains(rel, module) {
			return true
		}
	}
	return false
}

func writeTests(c *cli.Context, targets []*graph.Function, skeleton *generator.Skeleton, llm *generator.Client, root, outputDir string) error {
	writer := generator.NewWriter()

	// One test file per analyzed module, targets grouped in source order.
	grouped := make(map[string][]*graph.Function)
	var order []string
	for _, fn := range targets {
		if _, seen := grouped[fn.ModuleRel]; !seen {
			order = append(order, fn.ModuleRel)
		}
		grouped[fn.ModuleRel] = append(grouped[fn.ModuleRel], fn)
	}

	for _, module := range order {
		group := grouped[module]
		bodies := make([]string, 0, len(group))
		byName := make(map[string]string, len(group))
		for _, fn := range group {
			body := generateBody(c, fn, skeleton, llm, root)
			bodies = append(bodies, body)
			byName[fn.TestName()] = body
		}

		path := writer.TestFilePath(outputDir, group[0])
		importPath := generator.ModulePath(module)

		switch {
		case c.Bool("preview"):
			fmt.Printf("# --- %s ---\n", path)
			fmt.Println(strings.Join(bodies, "\n\n"))
		case c.Bool("update"):
			appended, err := writer.AppendMissing(c.Context, path, importPath, byName)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%d added)\n", path, appended)
		default:
			if err := writer.WriteTests(c.Context, path, importPath, bodies, c.Bool("force")); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d tests)\n", path, len(bodies))
		}
	}
	return nil
}

// generateBody prefers the generative model when configured and falls
// back to the deterministic skeleton on any failure.
func generateBody(c *cli.Context, fn *graph.Function, skeleton *generator.Skeleton, llm *generator.Client, root string) string {
	if llm != nil {
		body, err := llm.GenerateTest(c.Context, fn)
		if err == nil {
			return body
		}
		slog.Warn("model generation failed, using skeleton", "function", fn.QualName, "error", err)
	}
	return skeleton.Generate(fn, root)
}
