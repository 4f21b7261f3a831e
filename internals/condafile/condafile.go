// Package condafile imports conda "meta.yaml" recipes.
//
// A lot of published MD software already ships a conda recipe. Importing one
// gives users a mdpkg.toml to start from instead of writing it by hand.
package condafile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mdpkg/mdpkg/pkg/recipe"
)

// metaYaml mirrors the subset of the conda recipe schema we can map
type metaYaml struct {
	Package struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Build struct {
		Number      int      `yaml:"number"`
		Script      string   `yaml:"script"`
		EntryPoints []string `yaml:"entry_points"`
	} `yaml:"build"`
	Requirements struct {
		Build []string `yaml:"build"`
		Host  []string `yaml:"host"`
		Run   []string `yaml:"run"`
	} `yaml:"requirements"`
	Test struct {
		Requires []string `yaml:"requires"`
		Commands []string `yaml:"commands"`
	} `yaml:"test"`
	About struct {
		Home    string `yaml:"home"`
		License string `yaml:"license"`
		Summary string `yaml:"summary"`
	} `yaml:"about"`
}

// conda line selectors: `- gromacs  # [with_gromacs]`
var selectorPattern = regexp.MustCompile(`#\s*\[([^\]]+)\]\s*$`)

// conda entry points: `mdconvert = mdtraj.scripts.mdconvert:entry_point`
var entryPointPattern = regexp.MustCompile(`^([^=\s]+)\s*=\s*(\S+)$`)

// ErrBadEntryPoint is returned for an entry point line that isn't
// "command = module:function"
type ErrBadEntryPoint struct {
	Line string
}

func (e *ErrBadEntryPoint) Error() string {
	return fmt.Sprintf("cannot parse entry point %q", e.Line)
}

// Importer converts conda meta.yaml documents to recipes
type Importer struct {
	// Flags are the selector flags that evaluate to true. An entry gated on
	// any other selector is dropped, except in test.requires where it
	// becomes an optional requirement instead
	Flags map[string]bool
}

// Import parses a meta.yaml document and maps it onto a recipe
func (imp *Importer) Import(raw []byte) (*recipe.Recipe, error) {
	preprocessed, optionalTest := imp.applySelectors(string(raw))

	var meta metaYaml
	if err := yaml.Unmarshal([]byte(preprocessed), &meta); err != nil {
		return nil, fmt.Errorf("cannot parse meta.yaml: %w", err)
	}

	converted := recipe.New()
	converted.Package.Name = meta.Package.Name
	converted.Package.Version = meta.Package.Version
	converted.Build.Number = meta.Build.Number
	converted.Build.Script = meta.Build.Script

	for _, line := range meta.Build.EntryPoints {
		name, target, err := parseEntryPoint(line)
		if err != nil {
			return nil, err
		}
		converted.Build.EntryPoints[name] = target
	}

	// conda splits compile-time requirements into build and host,
	// mdpkg only knows build
	converted.Requirements.Build = append(meta.Requirements.Build, meta.Requirements.Host...)
	converted.Requirements.Run = meta.Requirements.Run
	converted.Test.Requires = meta.Test.Requires
	converted.Test.Commands = meta.Test.Commands
	converted.About.Home = meta.About.Home
	converted.About.License = meta.About.License
	converted.About.Summary = meta.About.Summary

	// selector-gated test requirements survive as optional requirements,
	// the condition is kept as data instead of being evaluated at import time
	converted.Test.OptionalRequires = optionalTest

	return converted, nil
}

// ImportFile reads and converts the meta.yaml at the given path
func (imp *Importer) ImportFile(path string) (*recipe.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return imp.Import(raw)
}

// applySelectors evaluates conda line selectors. Lines whose selector flag
// is enabled are kept (with the selector stripped), others are dropped.
// Gated entries inside the test.requires block are collected and returned
// instead of being dropped
func (imp *Importer) applySelectors(document string) (string, []string) {
	var kept []string
	var optionalTest []string

	inTest := false
	inTestRequires := false
	for _, line := range strings.Split(document, "\n") {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		trimmed := strings.TrimSpace(line)

		// crude block tracking, good enough for the flat meta.yaml layout
		if indent == 0 && trimmed != "" {
			inTest = strings.HasPrefix(trimmed, "test:")
			inTestRequires = false
		} else if inTest && strings.HasPrefix(trimmed, "requires:") {
			inTestRequires = true
		} else if inTest && indent <= 2 && strings.HasSuffix(trimmed, ":") {
			inTestRequires = false
		}

		match := selectorPattern.FindStringSubmatch(line)
		if match == nil {
			kept = append(kept, line)
			continue
		}

		flag := strings.TrimSpace(match[1])
		stripped := strings.TrimRight(strings.TrimSuffix(line, match[0]), " \t")
		if imp.Flags[flag] {
			kept = append(kept, stripped)
			continue
		}

		if inTestRequires {
			entry := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(stripped), "-"))
			if entry != "" {
				optionalTest = append(optionalTest, entry)
			}
		}
	}

	return strings.Join(kept, "\n"), optionalTest
}

func parseEntryPoint(line string) (string, string, error) {
	match := entryPointPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", "", &ErrBadEntryPoint{Line: line}
	}

	name := match[1]
	// conda references a python module, our builds produce an executable
	// with the command's name
	return name, "bin/" + name, nil
}
