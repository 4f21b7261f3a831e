package recipe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	r := validRecipe()
	lock := NewLockfile(r)
	lock.AddDependency(&DependencyLock{
		Name:    "numgo",
		Version: "1.22.4",
		Phase:   PhaseRun,
		URL:     "https://channel.mdpkg.dev/numgo/numgo-1.22.4.tar.gz",
		Sha256:  "50b8837cd5e1295419e14dd12db865c1c29c13f5661cbd6b91aff5f503316ab6",
	})
	lock.AddDependency(&DependencyLock{Name: "testkit", Version: "0.3.0", Phase: PhaseTest})

	path := filepath.Join(t.TempDir(), "mdpkg-lock.toml")
	if err := lock.Save(path); err != nil {
		t.Fatal(err)
	}

	reread, err := NewLockfileFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if reread.Package != "mdtraj" || reread.LockfileVersion != LockfileVersion {
		t.Errorf("unexpected lockfile header: %+v", reread)
	}
	if len(reread.Dependencies) != 2 {
		t.Fatalf("expected 2 locked dependencies, got %d", len(reread.Dependencies))
	}

	numgo := reread.Dependency("numgo", PhaseRun)
	if numgo == nil || numgo.Version != "1.22.4" {
		t.Errorf("unexpected numgo lock: %+v", numgo)
	}
	if reread.Dependency("numgo", PhaseBuild) != nil {
		t.Error("numgo should not be locked for the build phase")
	}
}

func TestLockfileAddReplaces(t *testing.T) {
	lock := NewLockfile(validRecipe())
	lock.AddDependency(&DependencyLock{Name: "numgo", Version: "1.22.4", Phase: PhaseRun})
	lock.AddDependency(&DependencyLock{Name: "numgo", Version: "1.23.0", Phase: PhaseRun})

	if len(lock.Dependencies) != 1 {
		t.Fatalf("expected the second lock to replace the first, got %d entries", len(lock.Dependencies))
	}
	if lock.Dependencies[0].Version != "1.23.0" {
		t.Errorf("expected version 1.23.0, got %s", lock.Dependencies[0].Version)
	}
}

func TestLockfileMissingFile(t *testing.T) {
	_, err := NewLockfileFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
