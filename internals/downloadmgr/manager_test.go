package downloadmgr

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdpkg/mdpkg/pkg/recipe"
)

func testServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.tar.gz" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	server := testServer(t, "artifact-bytes")
	target := filepath.Join(t.TempDir(), "cache", "numgo-1.22.4.tar.gz")

	item := NewHTTPItem(server.URL+"/numgo-1.22.4.tar.gz", target)
	item.Sha256 = fmt.Sprintf("%x", sha256.Sum256([]byte("artifact-bytes")))

	if err := item.Download(context.Background()); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "artifact-bytes" {
		t.Errorf("unexpected file content %q", content)
	}
}

func TestDownloadBadSha(t *testing.T) {
	server := testServer(t, "artifact-bytes")
	target := filepath.Join(t.TempDir(), "numgo-1.22.4.tar.gz")

	item := NewHTTPItem(server.URL+"/numgo-1.22.4.tar.gz", target)
	item.Sha256 = "definitely-not-the-sum"

	err := item.Download(context.Background())
	var invalidSha *ErrInvalidSha
	if !errors.As(err, &invalidSha) {
		t.Fatalf("expected ErrInvalidSha, got %v", err)
	}
	// the corrupted file must not stay around
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("expected the corrupted download to be removed")
	}
}

func TestDownloadNotFound(t *testing.T) {
	server := testServer(t, "")
	target := filepath.Join(t.TempDir(), "missing.tar.gz")

	item := NewHTTPItem(server.URL+"/missing.tar.gz", target)
	if err := item.Download(context.Background()); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

type fakeDownload struct {
	err  error
	done chan struct{}
}

func (f *fakeDownload) Download(ctx context.Context) error {
	defer close(f.done)
	return f.err
}

func TestStartFirstError(t *testing.T) {
	mgr := &DownloadManager{}
	items := make([]*fakeDownload, 12)
	for i := range items {
		items[i] = &fakeDownload{done: make(chan struct{})}
		mgr.Add(items[i])
	}
	items[0].err = errors.New("connection reset")

	if err := mgr.Start(context.Background()); err == nil {
		t.Fatal("expected the failing download to surface")
	}

	// an early return must not strand the rest of the queue
	for i, item := range items {
		select {
		case <-item.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("download %d never finished", i)
		}
	}
}

func TestAddFromLockfile(t *testing.T) {
	server := testServer(t, "artifact-bytes")
	cacheDir := t.TempDir()

	rec := recipe.New()
	rec.Package.Name = "mdtraj"
	rec.Package.Version = "1.9.7"
	lock := recipe.NewLockfile(rec)
	lock.AddDependency(&recipe.DependencyLock{
		Name:    "numgo",
		Version: "1.22.4",
		Phase:   recipe.PhaseRun,
		URL:     server.URL + "/numgo-1.22.4.tar.gz",
	})
	// no URL means the dependency is expected locally and is skipped
	lock.AddDependency(&recipe.DependencyLock{
		Name:    "localkit",
		Version: "0.1.0",
		Phase:   recipe.PhaseBuild,
	})

	mgr := &DownloadManager{}
	if queued := mgr.AddFromLockfile(lock, cacheDir); queued != 1 {
		t.Fatalf("expected 1 queued download, got %d", queued)
	}

	if err := mgr.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, "numgo-1.22.4.tar.gz")); err != nil {
		t.Errorf("expected the artifact in the cache dir: %v", err)
	}
}
