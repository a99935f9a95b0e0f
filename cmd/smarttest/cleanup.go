package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
)

// cleanupPatterns name the bytecode artifacts removed by default.
var cleanupPatterns = []string{"__pycache__", "*.pyc", "*.pyo", "*.pyd"}

// cleanupAllPatterns adds test and build artifacts removed with --all.
var cleanupAllPatterns = []string{
	".pytest_cache", ".coverage", "htmlcov", "build", "dist", "*.egg-info",
}

func cleanupCommand() *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "remove Python bytecode and cache artifacts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "also remove test caches and build output",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "list what would be removed without deleting",
			},
		},
		Action: runCleanup,
	}
}

func runCleanup(c *cli.Context) error {
	root := c.String("root")
	patterns := cleanupPatterns
	if c.Bool("all") {
		patterns = append(append([]string(nil), cleanupPatterns...), cleanupAllPatterns...)
	}
	dryRun := c.Bool("dry-run")

	removed := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if !matchesAny(patterns, entry.Name()) {
			return nil
		}

		fmt.Printf("removing %s\n", path)
		removed++
		if entry.IsDir() {
			if !dryRun {
				if err := os.RemoveAll(path); err != nil {
					return fmt.Errorf("failed to remove %s: %w", path, err)
				}
			}
			return filepath.SkipDir
		}
		if !dryRun {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clean %s: %w", root, err)
	}

	if dryRun {
		fmt.Printf("%d artifacts would be removed\n", removed)
	} else {
		fmt.Printf("%d artifacts removed\n", removed)
	}
	return nil
}

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if pattern == name {
			return true
		}
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
