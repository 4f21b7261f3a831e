package recipe

import (
	"bytes"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

// LockfileVersion is the current version of the lockfile format
const LockfileVersion = 1

// Lockfile includes the resolved requirements of a recipe. It pins every
// requirement to an exact release so builds are reproducible
type Lockfile struct {
	LockfileVersion int               `toml:"lockfileVersion" json:"lockfileVersion"`
	Package         string            `toml:"package" json:"package"`
	Version         string            `toml:"version" json:"version"`
	Dependencies    []*DependencyLock `toml:"dependency,omitempty" json:"dependencies,omitempty"`
}

// DependencyLock is a single resolved dependency
type DependencyLock struct {
	Name string `toml:"name" json:"name"`
	// Version is the exact resolved version
	Version string `toml:"version" json:"version"`
	// Phase records which requirement list this dependency came from
	Phase Phase `toml:"phase" json:"phase"`
	// URL is where the artifact can be downloaded
	URL string `toml:"url,omitempty" json:"url,omitempty"`
	// Sha256 is the checksum of the artifact at URL
	Sha256 string `toml:"sha256,omitempty" json:"sha256,omitempty"`
}

// Dependency returns the locked dependency with the given name and phase
// or nil if there is none
func (l *Lockfile) Dependency(name string, phase Phase) *DependencyLock {
	for _, dep := range l.Dependencies {
		if dep.Name == name && dep.Phase == phase {
			return dep
		}
	}
	return nil
}

// AddDependency adds a resolved dependency, replacing an existing lock for
// the same package and phase
func (l *Lockfile) AddDependency(lock *DependencyLock) {
	for i, dep := range l.Dependencies {
		if dep.Name == lock.Name && dep.Phase == lock.Phase {
			l.Dependencies[i] = lock
			return
		}
	}
	l.Dependencies = append(l.Dependencies, lock)
}

// Buffer returns the lockfile as toml in Buffer form
func (l *Lockfile) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(l); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (l *Lockfile) String() string {
	return l.Buffer().String()
}

// Save writes the lockfile to the given path
func (l *Lockfile) Save(path string) error {
	return os.WriteFile(path, l.Buffer().Bytes(), 0644)
}

// NewLockfile returns a new lockfile for the given recipe
func NewLockfile(r *Recipe) *Lockfile {
	return &Lockfile{
		LockfileVersion: LockfileVersion,
		Package:         r.Package.Name,
		Version:         r.Package.Version,
	}
}

// NewLockfileFromFile reads the lockfile at the given path
func NewLockfileFromFile(path string) (*Lockfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lockfile := Lockfile{}
	if err := toml.Unmarshal(raw, &lockfile); err != nil {
		return nil, err
	}
	return &lockfile, nil
}
