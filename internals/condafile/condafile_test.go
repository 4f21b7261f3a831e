package condafile

import (
	"errors"
	"reflect"
	"testing"
)

var testMetaYaml = `package:
  name: mdtraj
  version: "1.9.7"

build:
  number: 1
  script: make install
  entry_points:
    - mdconvert = mdtraj.scripts.mdconvert:entry_point
    - mdinspect = mdtraj.scripts.mdinspect:entry_point

requirements:
  build:
    - compilerkit >=2.0
  host:
    - h5-utils
  run:
    - numgo >=1.10,<2
    - tablekit  # [tables]

test:
  requires:
    - testkit
    - gromacs-wrapper  # [gromacs]
  commands:
    - mdinspect --version

about:
  home: https://mdtraj.org
  license: LGPL-2.1-or-later
  summary: Read, write and analyze MD trajectories
`

func TestImport(t *testing.T) {
	imp := &Importer{}
	converted, err := imp.Import([]byte(testMetaYaml))
	if err != nil {
		t.Fatal(err)
	}

	if converted.Identifier() != "mdtraj@1.9.7" {
		t.Errorf("unexpected identifier %q", converted.Identifier())
	}
	if converted.Build.Number != 1 || converted.Build.Script != "make install" {
		t.Errorf("unexpected build section: %+v", converted.Build)
	}

	wantEntryPoints := map[string]string{
		"mdconvert": "bin/mdconvert",
		"mdinspect": "bin/mdinspect",
	}
	if !reflect.DeepEqual(converted.Build.EntryPoints, wantEntryPoints) {
		t.Errorf("unexpected entry points: %v", converted.Build.EntryPoints)
	}

	// build and host requirements are merged
	wantBuild := []string{"compilerkit >=2.0", "h5-utils"}
	if !reflect.DeepEqual(converted.Requirements.Build, wantBuild) {
		t.Errorf("unexpected build requirements: %v", converted.Requirements.Build)
	}

	if converted.About.License != "LGPL-2.1-or-later" {
		t.Errorf("unexpected license %q", converted.About.License)
	}

	// the converted recipe should be valid as far as the importer can help it
	if err := converted.Validate().Fatal(); err != nil {
		t.Errorf("converted recipe has fatal problems: %s", err)
	}
}

func TestImportSelectors(t *testing.T) {
	imp := &Importer{}
	converted, err := imp.Import([]byte(testMetaYaml))
	if err != nil {
		t.Fatal(err)
	}

	// run requirement gated on a disabled flag is dropped
	if !reflect.DeepEqual(converted.Requirements.Run, []string{"numgo >=1.10,<2"}) {
		t.Errorf("unexpected run requirements: %v", converted.Requirements.Run)
	}

	// gated test requirement survives as an optional requirement
	if !reflect.DeepEqual(converted.Test.Requires, []string{"testkit"}) {
		t.Errorf("unexpected test requirements: %v", converted.Test.Requires)
	}
	if !reflect.DeepEqual(converted.Test.OptionalRequires, []string{"gromacs-wrapper"}) {
		t.Errorf("unexpected optional test requirements: %v", converted.Test.OptionalRequires)
	}
}

func TestImportEnabledSelectors(t *testing.T) {
	imp := &Importer{Flags: map[string]bool{"tables": true, "gromacs": true}}
	converted, err := imp.Import([]byte(testMetaYaml))
	if err != nil {
		t.Fatal(err)
	}

	wantRun := []string{"numgo >=1.10,<2", "tablekit"}
	if !reflect.DeepEqual(converted.Requirements.Run, wantRun) {
		t.Errorf("unexpected run requirements: %v", converted.Requirements.Run)
	}

	// with the flag enabled the test requirement is a plain one
	wantTest := []string{"testkit", "gromacs-wrapper"}
	if !reflect.DeepEqual(converted.Test.Requires, wantTest) {
		t.Errorf("unexpected test requirements: %v", converted.Test.Requires)
	}
	if len(converted.Test.OptionalRequires) != 0 {
		t.Errorf("unexpected optional requirements: %v", converted.Test.OptionalRequires)
	}
}

func TestImportBadEntryPoint(t *testing.T) {
	imp := &Importer{}
	_, err := imp.Import([]byte(`package:
  name: broken
  version: "1.0.0"
build:
  entry_points:
    - just some words
`))

	var badEntryPoint *ErrBadEntryPoint
	if !errors.As(err, &badEntryPoint) {
		t.Fatalf("expected ErrBadEntryPoint, got %v", err)
	}
}

func TestImportGarbage(t *testing.T) {
	imp := &Importer{}
	if _, err := imp.Import([]byte("\tnot yaml at all: [")); err == nil {
		t.Error("expected an error for invalid yaml")
	}
}
