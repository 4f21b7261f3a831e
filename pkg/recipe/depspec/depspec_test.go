package depspec

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw        string
		name       string
		constraint bool
	}{
		{"numgo", "numgo", false},
		{"numgo >=1.10", "numgo", true},
		{"numgo >=1.10,<2.0", "numgo", true},
		{"trajkit ==1.4.2", "trajkit", true},
		{"  h5-utils   ~1.2  ", "h5-utils", true},
		{"snake_case_pkg", "snake_case_pkg", false},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			spec, err := Parse(test.raw)
			if err != nil {
				t.Fatalf("expected %q to parse, got %s", test.raw, err)
			}
			if spec.Name != test.name {
				t.Errorf("expected name %q, got %q", test.name, spec.Name)
			}
			if (spec.Constraint != nil) != test.constraint {
				t.Errorf("expected constraint presence to be %v", test.constraint)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"UpperCase",
		"-leading-dash",
		"numgo >=not.a.version",
		"numgo version two please",
	}

	for _, raw := range invalid {
		if _, err := Parse(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		matches bool
	}{
		{"numgo", "0.0.1", true},
		{"numgo >=1.10", "1.10.0", true},
		{"numgo >=1.10", "1.9.9", false},
		{"numgo >=1.10,<2.0", "1.22.4", true},
		{"numgo >=1.10,<2.0", "2.0.0", false},
		{"trajkit ==1.4.2", "1.4.2", true},
		{"trajkit ==1.4.2", "1.4.3", false},
		{"trajkit ~1.4", "1.4.9", true},
		{"trajkit ~1.4", "1.5.0", false},
	}

	for _, test := range tests {
		spec, err := Parse(test.spec)
		if err != nil {
			t.Fatalf("could not parse %q: %s", test.spec, err)
		}
		if got := spec.MatchesString(test.version); got != test.matches {
			t.Errorf("%q matching %q: expected %v, got %v", test.spec, test.version, test.matches, got)
		}
	}
}

func TestMatchesInvalidVersion(t *testing.T) {
	spec, _ := Parse("numgo >=1.0")
	if spec.MatchesString("not-a-version") {
		t.Error("invalid versions should never match")
	}
}

func TestIsPinned(t *testing.T) {
	pinned, _ := Parse("numgo ==1.2.3")
	if !pinned.IsPinned() {
		t.Error("expected ==1.2.3 to be pinned")
	}

	loose, _ := Parse("numgo >=1.2")
	if loose.IsPinned() {
		t.Error("expected >=1.2 to not be pinned")
	}

	bare, _ := Parse("numgo")
	if bare.IsPinned() {
		t.Error("expected a bare name to not be pinned")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"numgo", "numgo"},
		{" numgo  >=1.10,<2.0 ", "numgo >=1.10,<2.0"},
		{"trajkit ==1.4.2", "trajkit =1.4.2"},
	}

	for _, test := range tests {
		spec, err := Parse(test.raw)
		if err != nil {
			t.Fatalf("could not parse %q: %s", test.raw, err)
		}
		if spec.String() != test.want {
			t.Errorf("expected %q to render as %q, got %q", test.raw, test.want, spec.String())
		}
	}
}
