package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DirChannel is a channel backed by a local directory. It expects one
// <name>.json document per package and is mainly useful for air-gapped
// setups and tests
type DirChannel struct {
	Dir string
}

// Releases implements Channel
func (c *DirChannel) Releases(ctx context.Context, name string) ([]Release, error) {
	raw, err := os.ReadFile(filepath.Join(c.Dir, name+".json"))
	if os.IsNotExist(err) {
		return nil, &ErrPackageNotFound{Name: name, Channel: c.Dir}
	}
	if err != nil {
		return nil, err
	}

	var pkgIndex PackageIndex
	if err := json.Unmarshal(raw, &pkgIndex); err != nil {
		return nil, errors.Wrapf(err, "invalid package index for %q", name)
	}

	return pkgIndex.Releases, nil
}
