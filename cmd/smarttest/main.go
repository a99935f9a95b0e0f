package main

import (
	"log/slog"
	"os"

	"github.com/smarttest/smarttest/inspector/repository"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "smarttest",
		Usage: "find untested Python functions and generate test skeletons",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Value:   ".",
				Usage:   "project root to analyze",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging and per-module detail",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
			return nil
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			generateCommand(),
			cleanupCommand(),
		},
	}
}

// resolveRoot widens the requested path to the enclosing project root when
// one is detectable, so commands work from any subdirectory.
func resolveRoot(path string) (string, *repository.Project) {
	project, err := repository.New().DetectProject(path)
	if err != nil || project.Type == "unknown" {
		return path, nil
	}
	slog.Debug("detected project",
		"name", project.Name, "type", project.Type, "root", project.RootPath)
	return project.RootPath, project
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
