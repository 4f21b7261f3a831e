// Package depspec parses dependency specs as they appear in a recipe.
//
// A spec is a package name optionally followed by a version constraint,
// separated by whitespace:
//
//	numgo
//	numgo >=1.10
//	numgo >=1.10,<2.0
//	trajkit ==1.4.2
//
// Constraints use the semver constraint grammar. The `==` operator is
// accepted as an alias for `=`.
package depspec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9-_]*$`)

// Spec is a single parsed dependency spec
type Spec struct {
	// Name is the package name
	Name string
	// Constraint is the version constraint. nil means any version
	Constraint *semver.Constraints

	rawConstraint string
}

// ErrInvalidSpec is returned when a dependency spec can not be parsed
type ErrInvalidSpec struct {
	Spec   string
	Reason string
}

func (e *ErrInvalidSpec) Error() string {
	return fmt.Sprintf("invalid dependency spec %q: %s", e.Spec, e.Reason)
}

// Parse parses a single dependency spec
func Parse(raw string) (*Spec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ErrInvalidSpec{raw, "spec is empty"}
	}

	name, rawConstraint, _ := strings.Cut(trimmed, " ")
	if !validName.MatchString(name) {
		return nil, &ErrInvalidSpec{raw, "name is not a valid package identifier"}
	}

	spec := &Spec{Name: name}
	rawConstraint = strings.TrimSpace(rawConstraint)
	if rawConstraint == "" {
		return spec, nil
	}

	// `==1.0.0` means the same as `=1.0.0`
	normalized := strings.ReplaceAll(rawConstraint, "==", "=")
	constraint, err := semver.NewConstraint(normalized)
	if err != nil {
		return nil, &ErrInvalidSpec{raw, err.Error()}
	}
	spec.Constraint = constraint
	spec.rawConstraint = normalized
	return spec, nil
}

// ParseAll parses a list of dependency specs. It stops at the first
// invalid spec
func ParseAll(raw []string) ([]*Spec, error) {
	specs := make([]*Spec, len(raw))
	for i, r := range raw {
		spec, err := Parse(r)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

// Matches checks the given version against the constraint of this spec
func (s *Spec) Matches(version *semver.Version) bool {
	if s.Constraint == nil {
		return true
	}
	return s.Constraint.Check(version)
}

// MatchesString is like Matches but parses the version first. Invalid
// versions never match
func (s *Spec) MatchesString(version string) bool {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return s.Matches(parsed)
}

// IsPinned reports whether the constraint only allows a single exact version
func (s *Spec) IsPinned() bool {
	return strings.HasPrefix(s.rawConstraint, "=") && !strings.ContainsAny(s.rawConstraint, ",*xX~^")
}

// String returns the spec in its canonical form
func (s *Spec) String() string {
	if s.rawConstraint == "" {
		return s.Name
	}
	return s.Name + " " + s.rawConstraint
}
