package workspace

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v3"
	"github.com/pkg/errors"
)

// Artifact is a packed build output
type Artifact struct {
	// Path is where the archive was written
	Path string
	// Sha256 is the checksum channels list for this artifact
	Sha256 string
	// Size in bytes
	Size int64
}

// ArtifactName returns the file name a packed build gets
func (w *Workspace) ArtifactName() string {
	return fmt.Sprintf("%s-%s.tar.gz", w.Recipe.Package.Name, w.Recipe.Package.Version)
}

// Pack bundles the build output and the recipe into a tar.gz in destDir.
// The archive is what a channel would serve for this release
func (w *Workspace) Pack(destDir string) (*Artifact, error) {
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return nil, err
	}

	dest := filepath.Join(destDir, w.ArtifactName())
	// archiver refuses to overwrite
	if err := os.RemoveAll(dest); err != nil {
		return nil, err
	}

	sources := []string{w.BuildDir(), w.RecipePath()}
	if err := archiver.Archive(sources, dest); err != nil {
		return nil, errors.Wrap(err, "could not pack the build output")
	}

	file, err := os.Open(dest)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	hasher := sha256.New()
	size, err := io.Copy(hasher, file)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Path:   dest,
		Sha256: fmt.Sprintf("%x", hasher.Sum(nil)),
		Size:   size,
	}, nil
}
