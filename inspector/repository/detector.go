package repository

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector identifies project root folders and provides project-related
// information. Detection is language-agnostic even though analysis targets
// Python sources: a repository may mix ecosystems.
type Detector struct {
	// Project root marker files, most specific first
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"pyproject.toml",   // Python projects
			"setup.py",         // Python projects
			"setup.cfg",        // Python projects
			"requirements.txt", // Python projects
			"go.mod",           // Go projects
			"package.json",     // JavaScript/Node projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)

	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if projectType != "" {
		info.Name = d.extractProjectName(rootPath, projectType)
	}

	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		repo := &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(gitRoot),
		}
		if info, err := d.DetectProject(filePath); err == nil {
			repo.Info = info
		}
		return repo, nil
	}

	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir, determineProjectType(marker)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		gitDir := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if homeDir == parent {
			return ""
		}
		dir = parent
	}
	return ""
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	configPath := filepath.Join(gitRoot, ".git", "config")
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	switch projectType {
	case "python":
		if name := extractPyProjectName(filepath.Join(rootPath, "pyproject.toml")); name != "" {
			return name
		}
		return extractSetupPyName(rootPath)
	case "go":
		return extractGoModuleName(filepath.Join(rootPath, "go.mod"))
	case "javascript":
		return extractJSPackageName(filepath.Join(rootPath, "package.json"))
	default:
		return filepath.Base(rootPath)
	}
}

// pyProject mirrors the subset of pyproject.toml carrying a project name
type pyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func extractPyProjectName(pyprojectPath string) string {
	data, err := os.ReadFile(pyprojectPath)
	if err != nil {
		return ""
	}
	var cfg pyProject
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	if cfg.Project.Name != "" {
		return cfg.Project.Name
	}
	return cfg.Tool.Poetry.Name
}

func extractSetupPyName(rootPath string) string {
	setupPath := filepath.Join(rootPath, "setup.py")
	data, err := os.ReadFile(setupPath)
	if err != nil {
		return filepath.Base(rootPath)
	}
	nameRegex := regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(rootPath)
	}
	return string(matches[1])
}

func extractGoModuleName(goModPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), goModPath); len(content) > 0 {
		if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil {
			return mod.Module.Mod.Path
		}
	}
	return filepath.Base(filepath.Dir(goModPath))
}

func extractJSPackageName(packageJSONPath string) string {
	data, err := os.ReadFile(packageJSONPath)
	if err != nil {
		return filepath.Base(filepath.Dir(packageJSONPath))
	}
	nameRegex := regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(packageJSONPath))
	}
	return string(matches[1])
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "pyproject.toml", "setup.py", "setup.cfg", "requirements.txt":
		return "python"
	case "go.mod":
		return "go"
	case "package.json":
		return "javascript"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
