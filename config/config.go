package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a value is absent from every configuration source.
const (
	DefaultFramework     = "pytest"
	DefaultTestOutputDir = "tests"
	DefaultPriorityLimit = 5
	DefaultModel         = "gemini-1.5-pro"
)

// DefaultExclude lists directory and file patterns skipped during project
// walks: virtualenvs, caches, build output.
var DefaultExclude = []string{
	"venv", "env", ".venv", ".env", ".git",
	"__pycache__", "build", "dist", ".pytest_cache",
	".mypy_cache", ".tox", ".eggs", "*.egg-info",
}

// configFilenames are probed in order at the project root.
var configFilenames = []string{
	"smart_test.json",
	"smart_test.yaml",
	"smart_test.toml",
	"pyproject.toml",
}

// Config is the immutable per-run configuration snapshot. It is constructed
// once at the start of a run and passed explicitly into each component;
// nothing mutates it afterwards.
type Config struct {
	CoveragePath   string   `json:"coverage_path" yaml:"coverage_path" toml:"coverage_path"`
	TestOutputDir  string   `json:"test_output_dir" yaml:"test_output_dir" toml:"test_output_dir"`
	Framework      string   `json:"framework" yaml:"framework" toml:"framework"`
	Exclude        []string `json:"exclude" yaml:"exclude" toml:"exclude"`
	PriorityLimit  int      `json:"priority_limit" yaml:"priority_limit" toml:"priority_limit"`
	IncludePrivate bool     `json:"include_private" yaml:"include_private" toml:"include_private"`
	UseAI          bool     `json:"use_ai" yaml:"use_ai" toml:"use_ai"`

	// API credentials come from the environment, never from project files.
	APIKey string `json:"-" yaml:"-" toml:"-"`
	Model  string `json:"model" yaml:"model" toml:"model"`
}

// pyprojectFile carries the [tool.smart-test] section of pyproject.toml
type pyprojectFile struct {
	Tool struct {
		SmartTest Config `toml:"smart-test"`
	} `toml:"tool"`
}

// Load builds the run configuration for the given project root. A missing
// config file yields defaults; an unreadable or unparsable one yields
// defaults plus the error so the caller can report it without aborting.
func Load(root string) (*Config, error) {
	cfg := &Config{}
	var loadErr error

	if path := findConfigFile(root); path != "" {
		if err := loadFile(path, cfg); err != nil {
			loadErr = fmt.Errorf("failed to load config from %s: %w", path, err)
			cfg = &Config{}
		}
	}

	applyDefaults(cfg)
	return cfg, loadErr
}

// findConfigFile returns the first configuration file present at the root
func findConfigFile(root string) string {
	for _, name := range configFilenames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch {
	case filepath.Base(path) == "pyproject.toml":
		var wrapper pyprojectFile
		if err := toml.Unmarshal(data, &wrapper); err != nil {
			return err
		}
		*cfg = wrapper.Tool.SmartTest
	case filepath.Ext(path) == ".json":
		return json.Unmarshal(data, cfg)
	case filepath.Ext(path) == ".yaml" || filepath.Ext(path) == ".yml":
		return yaml.Unmarshal(data, cfg)
	case filepath.Ext(path) == ".toml":
		return toml.Unmarshal(data, cfg)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Framework == "" {
		cfg.Framework = DefaultFramework
	}
	if cfg.TestOutputDir == "" {
		cfg.TestOutputDir = DefaultTestOutputDir
	}
	if cfg.PriorityLimit <= 0 {
		cfg.PriorityLimit = DefaultPriorityLimit
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("GEMINI_MODEL")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
}
