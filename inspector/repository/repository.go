package repository

// Repository describes the version-controlled container of a project
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (python, go, javascript, git, ...)
	Name         string // Name of the project (extracted from config files)
	RelativePath string // Path from project root to the specified file
}
