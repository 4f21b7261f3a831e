package recipe

import (
	"strings"

	"github.com/mdpkg/mdpkg/pkg/recipe/depspec"
)

// InterpretedRequirement is a raw requirement entry that has been parsed.
// It carries the phase it was declared for so callers don't need to track
// which list it came from
type InterpretedRequirement struct {
	// Spec is the parsed dependency spec
	Spec *depspec.Spec
	// Phase is the phase the requirement was declared for
	Phase Phase
	// Optional is true for entries from test.optionalRequires
	Optional bool
}

// InterpretedRequirements parses all requirements of the given phases.
// See InterpretedRequirement for details
func (r *Recipe) InterpretedRequirements(phases ...Phase) ([]*InterpretedRequirement, error) {
	interpreted := make([]*InterpretedRequirement, 0)

	for _, phase := range phases {
		for _, raw := range r.PhaseRequirements(phase, false) {
			spec, err := depspec.Parse(raw)
			if err != nil {
				return nil, err
			}
			interpreted = append(interpreted, &InterpretedRequirement{Spec: spec, Phase: phase})
		}
		if phase != PhaseTest {
			continue
		}
		for _, raw := range r.Test.OptionalRequires {
			spec, err := depspec.Parse(raw)
			if err != nil {
				return nil, err
			}
			interpreted = append(interpreted, &InterpretedRequirement{Spec: spec, Phase: phase, Optional: true})
		}
	}

	return interpreted, nil
}

// specName extracts the package name from a raw dependency spec without
// validating the rest of it
func specName(spec string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(spec), " ")
	return name
}
