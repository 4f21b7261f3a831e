package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// ResolvedEntryPoint is a declared entry point together with the executable
// it resolved to
type ResolvedEntryPoint struct {
	// Name is the command name the entry point is exposed as
	Name string
	// Target is the reference from the recipe
	Target string
	// Path is the absolute path of the resolved executable
	Path string
}

func binDir(buildDir string) string {
	return filepath.Join(buildDir, "bin")
}

// ResolveEntryPoints checks that every declared entry point resolves to an
// executable file under the build dir. It is called after a build, a
// missing or non-executable target fails the build
func (w *Workspace) ResolveEntryPoints() ([]ResolvedEntryPoint, error) {
	resolved := make([]ResolvedEntryPoint, 0, len(w.Recipe.Build.EntryPoints))

	names := w.Recipe.EntryPointNames()
	for _, name := range names {
		target := w.Recipe.Build.EntryPoints[name]
		path := filepath.Join(w.BuildDir(), target)

		stat, err := os.Stat(path)
		if err != nil {
			return nil, &ErrEntryPointUnresolved{Name: name, Target: target, Path: path}
		}
		if stat.IsDir() || !isExecutable(stat.Mode()) {
			return nil, &ErrEntryPointUnresolved{Name: name, Target: target, Path: path, Exists: true}
		}

		resolved = append(resolved, ResolvedEntryPoint{Name: name, Target: target, Path: path})
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Name < resolved[j].Name })
	return resolved, nil
}

func isExecutable(mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		// the execute bit means nothing there
		return true
	}
	return mode&0111 != 0
}

// ErrEntryPointUnresolved is returned when an entry point does not point to
// an executable build output
type ErrEntryPointUnresolved struct {
	Name   string
	Target string
	Path   string
	// Exists is true when something is at Path but it isn't an executable file
	Exists bool
}

func (e *ErrEntryPointUnresolved) Error() string {
	if e.Exists {
		return fmt.Sprintf("entry point %q resolves to %s which is not an executable file", e.Name, e.Path)
	}
	return fmt.Sprintf("entry point %q does not resolve: %s does not exist", e.Name, e.Path)
}
