package recipe

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mdpkg/mdpkg/pkg/recipe/depspec"
)

const (
	ErrorLevelWarn = iota
	ErrorLevelFatal
)

type ValidationError struct {
	message string
	Path    string
	Level   int
}

func (e ValidationError) Error() string {
	return e.message
}

var (
	// ErrNameEmpty is returned when the package name is empty.
	ErrNameEmpty = ValidationError{
		message: "name is empty",
		Path:    "package.name",
		Level:   ErrorLevelFatal,
	}
	// ErrNameInvalid is returned when the package name is invalid.
	ErrNameInvalid = ValidationError{
		message: "name is invalid",
		Path:    "package.name",
		Level:   ErrorLevelFatal,
	}
	// ErrVersionEmpty is returned when the package version is empty.
	ErrVersionEmpty = ValidationError{
		message: "version is empty",
		Path:    "package.version",
		Level:   ErrorLevelFatal,
	}
	// ErrVersionInvalid is returned when the package version does not parse as semver.
	ErrVersionInvalid = ValidationError{
		message: "version is not a valid semver version",
		Path:    "package.version",
		Level:   ErrorLevelFatal,
	}
	// ErrNoLicense is returned when the recipe does not declare a license.
	ErrNoLicense = ValidationError{
		message: "recipe does not declare a license",
		Path:    "about.license",
		Level:   ErrorLevelWarn,
	}
	// ErrNoTestCommands is returned when a recipe declares test requirements
	// but no test commands.
	ErrNoTestCommands = ValidationError{
		message: "test requirements are declared but there is no test command",
		Path:    "test.commands",
		Level:   ErrorLevelWarn,
	}
)

// helper regexes
var (
	validName = regexp.MustCompile(`^[a-z0-9][a-z0-9-_]*$`)
)

type Problems []ValidationError

// Fatal returns the first fatal error in the list. If there are no fatal
// errors, it returns nil.
func (p Problems) Fatal() error {
	for _, problem := range p {
		if problem.Level == ErrorLevelFatal {
			return problem
		}
	}
	return nil
}

func validateRequirements(path string, specs []string) Problems {
	problems := Problems{}

	for _, raw := range specs {
		if _, err := depspec.Parse(raw); err != nil {
			problems = append(problems, ValidationError{
				message: err.Error(),
				Path:    path,
				Level:   ErrorLevelFatal,
			})
		}
	}

	return problems
}

func validateEntryPoints(entryPoints map[string]string) Problems {
	problems := Problems{}

	for name, target := range entryPoints {
		switch {
		case !validName.MatchString(name):
			problems = append(problems, ValidationError{
				message: "entry point name is invalid",
				Path:    "build.entryPoints." + name,
				Level:   ErrorLevelFatal,
			})
		case strings.TrimSpace(target) == "":
			problems = append(problems, ValidationError{
				message: "entry point target is empty",
				Path:    "build.entryPoints." + name,
				Level:   ErrorLevelFatal,
			})
		}
	}

	return problems
}

// Validate checks the recipe for correctness.
func (r *Recipe) Validate() Problems {
	problems := Problems{}

	// package name
	switch {
	case r.Package.Name == "":
		problems = append(problems, ErrNameEmpty)
	case !validName.MatchString(r.Package.Name):
		problems = append(problems, ErrNameInvalid)
	}

	// package version
	switch {
	case r.Package.Version == "":
		problems = append(problems, ErrVersionEmpty)
	default:
		if _, err := semver.NewVersion(r.Package.Version); err != nil {
			problems = append(problems, ErrVersionInvalid)
		} else if strings.HasPrefix(r.Package.Version, "v") {
			problems = append(problems, ValidationError{
				message: "version should not start with a v",
				Path:    "package.version",
				Level:   ErrorLevelWarn,
			})
		}
	}

	// requirements
	problems = append(problems, validateRequirements("requirements.build", r.Requirements.Build)...)
	problems = append(problems, validateRequirements("requirements.run", r.Requirements.Run)...)
	problems = append(problems, validateRequirements("test.requires", r.Test.Requires)...)
	problems = append(problems, validateRequirements("test.optionalRequires", r.Test.OptionalRequires)...)

	// entry points
	problems = append(problems, validateEntryPoints(r.Build.EntryPoints)...)

	// test commands
	if len(r.Test.Commands) == 0 && (len(r.Test.Requires) != 0 || len(r.Test.OptionalRequires) != 0) {
		problems = append(problems, ErrNoTestCommands)
	}
	for _, command := range r.Test.Commands {
		if strings.TrimSpace(command) == "" {
			problems = append(problems, ValidationError{
				message: "test command is empty",
				Path:    "test.commands",
				Level:   ErrorLevelFatal,
			})
		}
	}

	// license
	if r.About.License == "" {
		problems = append(problems, ErrNoLicense)
	}

	return problems
}
