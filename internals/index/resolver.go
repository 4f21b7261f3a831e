package index

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/mdpkg/mdpkg/pkg/recipe"
	"github.com/mdpkg/mdpkg/pkg/recipe/depspec"
)

// ErrNoMatch is returned when a channel carries a package but no release
// satisfies the requested constraint
type ErrNoMatch struct {
	Spec      *depspec.Spec
	Available int
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf(
		"no release of %q matches %q (%d releases available)",
		e.Spec.Name, e.Spec.String(), e.Available,
	)
}

// Resolver resolves the requirements of a recipe against a channel
type Resolver struct {
	Channel Channel
	// IncludeOptional also resolves test.optionalRequires
	IncludeOptional bool
}

// Resolve pins every requirement of the given phases to the newest release
// that satisfies its constraint and returns the result as a lockfile
func (r *Resolver) Resolve(ctx context.Context, rec *recipe.Recipe, phases ...recipe.Phase) (*recipe.Lockfile, error) {
	requirements, err := rec.InterpretedRequirements(phases...)
	if err != nil {
		return nil, err
	}

	lockfile := recipe.NewLockfile(rec)
	for _, req := range requirements {
		if req.Optional && !r.IncludeOptional {
			continue
		}

		release, err := r.resolveOne(ctx, req.Spec)
		if err != nil {
			return nil, err
		}
		lockfile.AddDependency(&recipe.DependencyLock{
			Name:    req.Spec.Name,
			Version: release.Version,
			Phase:   req.Phase,
			URL:     release.URL,
			Sha256:  release.Sha256,
		})
	}

	return lockfile, nil
}

func (r *Resolver) resolveOne(ctx context.Context, spec *depspec.Spec) (*Release, error) {
	releases, err := r.Channel.Releases(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	var best *Release
	var bestVersion *semver.Version
	for i := range releases {
		version, err := semver.NewVersion(releases[i].Version)
		if err != nil {
			// channels may carry releases that don't follow semver,
			// those can never be picked
			continue
		}
		if !spec.Matches(version) {
			continue
		}
		if bestVersion == nil || version.GreaterThan(bestVersion) {
			best = &releases[i]
			bestVersion = version
		}
	}

	if best == nil {
		return nil, &ErrNoMatch{Spec: spec, Available: len(releases)}
	}
	return best, nil
}
