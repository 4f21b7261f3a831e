/*
Package recipe defines the file format that describes how a package is built,
distributed and smoke-tested. The "mdpkg.toml" recipe is the way mdpkg defines
packages. A recipe declares the package identity, its build, run and test
requirements, the commands it installs on the PATH and a test invocation.
*/
package recipe

import (
	"bytes"
	"io"
	"log"
	"os"
	"sort"

	"github.com/pelletier/go-toml"
)

// Phase describes when a requirement is needed
type Phase string

const (
	// PhaseBuild marks requirements needed to compile/build the package
	PhaseBuild Phase = "build"
	// PhaseRun marks requirements needed at runtime
	PhaseRun Phase = "run"
	// PhaseTest marks requirements needed only to run the tests
	PhaseTest Phase = "test"
)

// Recipe is a collection of data that describes how to build and
// distribute a package
type Recipe struct {
	Package struct {
		// Name is the name of the package. It may NOT include spaces. It may
		// ONLY consist of lowercase alphanumeric chars but can also include
		// `-` and `_`
		// This field is REQUIRED
		Name string `toml:"name" json:"name"`
		// Version is the version number of this package. A proceeding `v`
		// (like `v2.1.1`) is NOT allowed to preserve consistency.
		// The version may include prerelease information like `1.2.2-beta.0`
		// This field is REQUIRED
		Version string `toml:"version" json:"version"`
		// Description can be any free text that describes this package. Should be short(ish)
		Description string `toml:"description,omitempty" json:"description,omitempty"`
	} `toml:"package" json:"package"`
	Build struct {
		// Number distinguishes rebuilds of the same package version
		Number int `toml:"number,omitempty" json:"number,omitempty"`
		// Script is the shell command used to build this package
		Script string `toml:"script,omitempty" json:"script,omitempty"`
		// EntryPoints maps a command name to the executable the build
		// produces for it. Every command listed here is exposed on the
		// PATH when the package is installed. Example:
		//   mdconvert = "bin/mdconvert"
		EntryPoints map[string]string `toml:"entryPoints,omitempty" json:"entryPoints,omitempty"`
	} `toml:"build" json:"build"`
	// Requirements lists what this package needs to build and to run.
	// Each entry is a dependency spec like `numgo` or `numgo >=1.10,<2`
	Requirements struct {
		Build []string `toml:"build,omitempty" json:"build,omitempty"`
		Run   []string `toml:"run,omitempty" json:"run,omitempty"`
	} `toml:"requirements" comment:"Build and runtime requirements" json:"requirements"`
	Test struct {
		// Requires are packages needed only to run the tests
		Requires []string `toml:"requires,omitempty" json:"requires,omitempty"`
		// OptionalRequires are test packages that are only included when the
		// MDPKG_OPTIONAL_TESTS environment variable is set
		OptionalRequires []string `toml:"optionalRequires,omitempty" json:"optionalRequires,omitempty"`
		// Commands are shell commands invoked to validate the build.
		// They run in order, a failing command aborts the test run
		Commands []string `toml:"commands,omitempty" json:"commands,omitempty"`
	} `toml:"test" json:"test"`
	About struct {
		// Home is an URL that should point to the website of this package (if any)
		Home string `toml:"home,omitempty" json:"home,omitempty"`
		// License for this package. Should be a valid SPDX identifier if possible
		// see https://spdx.org/licenses/
		License string `toml:"license,omitempty" json:"license,omitempty"`
		// Summary is a one line description of the package
		Summary string `toml:"summary,omitempty" json:"summary,omitempty"`
	} `toml:"about" json:"about"`
}

// Identifier returns the package identity as "name@version"
func (r *Recipe) Identifier() string {
	return r.Package.Name + "@" + r.Package.Version
}

// PhaseRequirements returns the dependency specs of the given phase.
// Test requirements include the optional ones only if withOptional is set
func (r *Recipe) PhaseRequirements(phase Phase, withOptional bool) []string {
	switch phase {
	case PhaseBuild:
		return r.Requirements.Build
	case PhaseRun:
		return r.Requirements.Run
	case PhaseTest:
		reqs := r.Test.Requires
		if withOptional {
			reqs = append(append([]string{}, reqs...), r.Test.OptionalRequires...)
		}
		return reqs
	}
	return nil
}

// EntryPointNames returns the declared command names in sorted order
func (r *Recipe) EntryPointNames() []string {
	names := make([]string, 0, len(r.Build.EntryPoints))
	for name := range r.Build.EntryPoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddRequirement adds a dependency spec to the given phase. An existing
// spec for the same package is replaced
func (r *Recipe) AddRequirement(phase Phase, spec string) {
	r.RemoveRequirement(phase, specName(spec))
	switch phase {
	case PhaseBuild:
		r.Requirements.Build = append(r.Requirements.Build, spec)
	case PhaseRun:
		r.Requirements.Run = append(r.Requirements.Run, spec)
	case PhaseTest:
		r.Test.Requires = append(r.Test.Requires, spec)
	}
}

// RemoveRequirement removes the dependency with the given package name
// from the given phase
func (r *Recipe) RemoveRequirement(phase Phase, name string) {
	switch phase {
	case PhaseBuild:
		r.Requirements.Build = removeSpec(r.Requirements.Build, name)
	case PhaseRun:
		r.Requirements.Run = removeSpec(r.Requirements.Run, name)
	case PhaseTest:
		r.Test.Requires = removeSpec(r.Test.Requires, name)
		r.Test.OptionalRequires = removeSpec(r.Test.OptionalRequires, name)
	}
}

func removeSpec(specs []string, name string) []string {
	filtered := specs[:0]
	for _, s := range specs {
		if specName(s) != name {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// Buffer returns the recipe as toml in Buffer form
func (r *Recipe) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(r); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (r *Recipe) String() string {
	return r.Buffer().String()
}

// Save writes the recipe to the given path
func (r *Recipe) Save(path string) error {
	return os.WriteFile(path, r.Buffer().Bytes(), 0644)
}

// New returns a new recipe
func New() *Recipe {
	recipe := Recipe{}
	recipe.Build.EntryPoints = make(map[string]string)
	return &recipe
}

// Load reads a toml recipe from the given reader
func Load(reader io.Reader) (*Recipe, error) {
	recipe := Recipe{}
	if err := toml.NewDecoder(reader).Decode(&recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// NewFromFile reads the recipe file at the given path
func NewFromFile(path string) (*Recipe, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}
