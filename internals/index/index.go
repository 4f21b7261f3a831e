// Package index talks to package channels. A channel publishes, per package,
// the list of released versions together with download URLs and checksums.
// The resolver turns a recipe's requirements into exact pins using that data.
package index

import (
	"context"
	"fmt"
)

// Release is a single published version of a package
type Release struct {
	// Version is the exact released version
	Version string `json:"version"`
	// URL is where the artifact can be downloaded
	URL string `json:"url,omitempty"`
	// Sha256 is the checksum of the artifact
	Sha256 string `json:"sha256,omitempty"`
	// Size is the artifact size in bytes (0 if the channel doesn't know)
	Size int64 `json:"size,omitempty"`
}

// PackageIndex is everything a channel knows about one package
type PackageIndex struct {
	Name     string    `json:"name"`
	Releases []Release `json:"releases"`
}

// Channel answers release queries for packages
type Channel interface {
	// Releases returns all published releases of the given package.
	// Returns ErrPackageNotFound if the channel doesn't carry the package
	Releases(ctx context.Context, name string) ([]Release, error)
}

// ErrPackageNotFound is returned when a channel does not carry a package
type ErrPackageNotFound struct {
	Name    string
	Channel string
}

func (e *ErrPackageNotFound) Error() string {
	return fmt.Sprintf("package %q not found in channel %s", e.Name, e.Channel)
}
