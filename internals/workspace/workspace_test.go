package workspace

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mdpkg/mdpkg/pkg/recipe"
)

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	dir := t.TempDir()

	r := recipe.New()
	r.Package.Name = "trajkit"
	r.Package.Version = "0.1.0"
	r.Build.Script = "true"
	r.Build.EntryPoints["mdinspect"] = "bin/mdinspect"
	r.Test.Commands = []string{"mdinspect --version"}
	if err := r.Save(filepath.Join(dir, RecipeName)); err != nil {
		t.Fatal(err)
	}

	w, err := NewFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestNewFromDir(t *testing.T) {
	w := testWorkspace(t)

	if w.Recipe.Package.Name != "trajkit" {
		t.Errorf("unexpected recipe: %+v", w.Recipe.Package)
	}
	if w.HasLockfile() {
		t.Error("fresh workspace should have no lockfile")
	}
}

func TestNewFromDirMissingRecipe(t *testing.T) {
	_, err := NewFromDir(t.TempDir())
	if !errors.Is(err, ErrNoWorkspace) {
		t.Fatalf("expected ErrNoWorkspace, got %v", err)
	}
}

func TestLockfileRoundTrip(t *testing.T) {
	w := testWorkspace(t)

	w.Lockfile = recipe.NewLockfile(w.Recipe)
	w.Lockfile.AddDependency(&recipe.DependencyLock{
		Name: "numgo", Version: "1.22.4", Phase: recipe.PhaseRun,
	})
	if err := w.SaveLockfile(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFromDir(w.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.HasLockfile() {
		t.Fatal("expected the lockfile to be picked up")
	}
	if reopened.Lockfile.Dependency("numgo", recipe.PhaseRun) == nil {
		t.Error("locked dependency did not survive")
	}
}

func TestBuildScript(t *testing.T) {
	w := testWorkspace(t)

	cmd := w.BuildScript()
	if cmd.Dir != w.Dir {
		t.Errorf("build should run in the workspace dir, got %q", cmd.Dir)
	}

	found := false
	for _, env := range cmd.Env {
		if env == "MDPKG_BUILD_DIR="+w.BuildDir() {
			found = true
		}
	}
	if !found {
		t.Error("expected MDPKG_BUILD_DIR in the build environment")
	}
}

func TestBuildScriptFallback(t *testing.T) {
	w := testWorkspace(t)
	w.Recipe.Build.Script = ""

	cmd := w.BuildScript()
	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, DefaultBuildScript) {
		t.Errorf("expected the default build script, got %v", cmd.Args)
	}
}

func TestTestCommands(t *testing.T) {
	w := testWorkspace(t)

	cmds := w.TestCommands()
	if len(cmds) != 1 {
		t.Fatalf("expected 1 test command, got %d", len(cmds))
	}

	foundPath := false
	for _, env := range cmds[0].Env {
		if strings.HasPrefix(env, "PATH=") && strings.Contains(env, binDir(w.BuildDir())) {
			foundPath = true
		}
	}
	if !foundPath {
		t.Error("expected the build bin dir on the PATH of test commands")
	}
}

func TestTestCommandsRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	w := testWorkspace(t)
	w.Recipe.Test.Commands = []string{"true", "false"}

	cmds := w.TestCommands()
	if err := cmds[0].Run(); err != nil {
		t.Fatalf("expected the passing command to exit 0, got %v", err)
	}

	err := cmds[1].Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected an exit error from the failing command, got %v", err)
	}
	if exitErr.ExitCode() == 0 {
		t.Error("failing command reported exit status 0")
	}
}

func TestResolveEntryPoints(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits don't exist on windows")
	}
	w := testWorkspace(t)

	// nothing built yet
	_, err := w.ResolveEntryPoints()
	var unresolved *ErrEntryPointUnresolved
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected ErrEntryPointUnresolved, got %v", err)
	}
	if unresolved.Exists {
		t.Error("the target should be reported as missing")
	}

	// fake a build output
	if err := os.MkdirAll(binDir(w.BuildDir()), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(w.BuildDir(), "bin", "mdinspect")
	if err := os.WriteFile(target, []byte("#!/bin/sh\necho inspect"), 0644); err != nil {
		t.Fatal(err)
	}

	// present but not executable
	_, err = w.ResolveEntryPoints()
	if !errors.As(err, &unresolved) || !unresolved.Exists {
		t.Fatalf("expected a non-executable error, got %v", err)
	}

	if err := os.Chmod(target, 0755); err != nil {
		t.Fatal(err)
	}
	resolved, err := w.ResolveEntryPoints()
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 1 || resolved[0].Name != "mdinspect" || resolved[0].Path != target {
		t.Errorf("unexpected resolution: %+v", resolved)
	}
}

func TestPack(t *testing.T) {
	w := testWorkspace(t)
	if err := os.MkdirAll(binDir(w.BuildDir()), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir(w.BuildDir()), "mdinspect"), []byte("bin"), 0755); err != nil {
		t.Fatal(err)
	}

	artifact, err := w.Pack(filepath.Join(w.Dir, "dist"))
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(artifact.Path) != "trajkit-0.1.0.tar.gz" {
		t.Errorf("unexpected artifact name %q", artifact.Path)
	}
	if artifact.Size <= 0 || len(artifact.Sha256) != 64 {
		t.Errorf("unexpected artifact metadata: %+v", artifact)
	}
	if _, err := os.Stat(artifact.Path); err != nil {
		t.Errorf("artifact is not on disk: %v", err)
	}
}
