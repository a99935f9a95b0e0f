package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/smarttest/smarttest/analyzer"
	"github.com/smarttest/smarttest/config"
	"github.com/smarttest/smarttest/inspector/graph"
	"github.com/urfave/cli/v2"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "report functions lacking tests or coverage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "coverage",
				Aliases: []string{"c"},
				Usage:   "path to a Cobertura coverage.xml report",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write analysis records as JSON to this file",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "summary format: text or json",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	root, _ := resolveRoot(c.String("root"))
	cfg, err := config.Load(root)
	if err != nil {
		slog.Warn("using default configuration", "error", err)
	}

	a := analyzer.New(cfg)
	functions, outcomes, err := a.AnalyzeProject(root)
	if err != nil {
		return err
	}

	coveragePath := c.String("coverage")
	if coveragePath == "" {
		coveragePath = cfg.CoveragePath
	}
	if coveragePath != "" {
		coverage, err := analyzer.ParseCoverageXML(coveragePath)
		if err != nil {
			return err
		}
		analyzer.MapCoverage(functions, coverage)
	}

	// Without a report the covered flags stay false and the summarizer
	// ignores them; exported records never claim unmeasured coverage.
	summary := analyzer.Summarize(functions, cfg.PriorityLimit, coveragePath != "")

	if out := c.String("output"); out != "" {
		if err := exportRecords(out, functions); err != nil {
			return err
		}
		slog.Info("wrote analysis records", "path", out, "count", len(functions))
	}

	switch c.String("format") {
	case "json":
		return printJSON(summary)
	case "text":
		printText(c, functions, outcomes, summary, coveragePath != "")
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", c.String("format"))
	}
}

// exportRecords writes the per-function records as indented JSON.
func exportRecords(path string, functions []*graph.Function) error {
	records := make([]graph.Record, 0, len(functions))
	for _, fn := range functions {
		records = append(records, fn.Record())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis records: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis records to %s: %w", path, err)
	}
	return nil
}

func printJSON(summary *graph.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printText(c *cli.Context, functions []*graph.Function, outcomes []analyzer.FileOutcome, summary *graph.Summary, withCoverage bool) {
	analyzed, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		} else {
			analyzed++
		}
	}

	fmt.Printf("Analyzed %d files (%d skipped), %d functions\n", analyzed, failed, len(functions))
	fmt.Printf("Functions needing tests: %d\n", summary.NeedTestsCount)
	if withCoverage {
		fmt.Printf("Modules with coverage gaps: %d\n", summary.LowCoverageCount)
	}

	if len(summary.PriorityFunctions) > 0 {
		fmt.Println("\nPriority:")
		for _, name := range summary.PriorityFunctions {
			fmt.Printf("  %s\n", name)
		}
	}

	if c.Bool("verbose") {
		printModuleDetail(functions, withCoverage)
	}
}

// printModuleDetail groups missing-test functions per module.
func printModuleDetail(functions []*graph.Function, withCoverage bool) {
	byModule := make(map[string][]*graph.Function)
	for _, fn := range functions {
		if fn.HasTests && (!withCoverage || fn.Covered) {
			continue
		}
		byModule[fn.ModuleRel] = append(byModule[fn.ModuleRel], fn)
	}
	if len(byModule) == 0 {
		return
	}

	modules := make([]string, 0, len(byModule))
	for module := range byModule {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	fmt.Println("\nDetail:")
	for _, module := range modules {
		fmt.Printf("  %s\n", module)
		for _, fn := range byModule[module] {
			status := ""
			if !fn.HasTests {
				status = "no tests"
			}
			if withCoverage && !fn.Covered {
				if status != "" {
					status += ", "
				}
				status += "uncovered"
			}
			fmt.Printf("    %s:%d %s (%s, complexity %d)\n",
				fn.ModuleRel, fn.Line, fn.QualName, status, fn.Complexity)
		}
	}
}
