// Package workspace handles a directory containing a mdpkg.toml recipe.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/pkg/recipe"
)

const (
	// RecipeName is the file name of the recipe
	RecipeName = "mdpkg.toml"
	// LockfileName is the file name of the lockfile
	LockfileName = "mdpkg-lock.toml"
	// BuildDirName is where builds are expected to place their output
	BuildDirName = "build"
)

var (
	// ErrNoWorkspace is returned if no recipe was found
	ErrNoWorkspace = &commands.CliError{
		Text: "No mdpkg.toml file was found in this directory",
		Suggestions: []string{
			`Create a new recipe with "mdpkg init"`,
			"Move into a folder containing a mdpkg.toml file",
		},
	}
)

// Workspace is a directory with a recipe and maybe a lockfile
type Workspace struct {
	// Dir is the absolute path of the workspace
	Dir      string
	Recipe   *recipe.Recipe
	Lockfile *recipe.Lockfile
}

// RecipePath returns the path to the mdpkg.toml
func (w *Workspace) RecipePath() string {
	return filepath.Join(w.Dir, RecipeName)
}

// LockfilePath returns the path to the mdpkg-lock.toml
func (w *Workspace) LockfilePath() string {
	return filepath.Join(w.Dir, LockfileName)
}

// BuildDir returns the directory build output is expected in
func (w *Workspace) BuildDir() string {
	return filepath.Join(w.Dir, BuildDirName)
}

// HasLockfile reports whether the workspace has a lockfile on disk
func (w *Workspace) HasLockfile() bool {
	return w.Lockfile != nil
}

// SaveRecipe writes the recipe back to disk
func (w *Workspace) SaveRecipe() error {
	return w.Recipe.Save(w.RecipePath())
}

// SaveLockfile writes the lockfile to disk
func (w *Workspace) SaveLockfile() error {
	return w.Lockfile.Save(w.LockfilePath())
}

// NewFromDir opens the workspace at the given directory
func NewFromDir(dir string) (*Workspace, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	w := &Workspace{Dir: absDir}
	w.Recipe, err = recipe.NewFromFile(w.RecipePath())
	if os.IsNotExist(err) {
		return nil, ErrNoWorkspace
	}
	if err != nil {
		return nil, err
	}

	// a missing lockfile is fine, resolving creates it
	lockfile, err := recipe.NewLockfileFromFile(w.LockfilePath())
	if err == nil {
		w.Lockfile = lockfile
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return w, nil
}

// NewFromWd opens the workspace in the current working directory
func NewFromWd() (*Workspace, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewFromDir(dir)
}
