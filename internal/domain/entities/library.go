package entities

import "fmt"

// Library is a named unit of source code released in lockstep with its siblings.
// Two libraries are the same library when their names are equal.
//
// Dependencies is set once at construction and must not be modified afterwards.
// Acyclicity is not enforced here; OrderLibraries reports cycles.
type Library struct {
	Name         string
	Dependencies []*Library

	// Path is the root of the local working copy. Only collaborators use it.
	Path string
	// VersionFile is the version store location relative to Path.
	VersionFile string
	// Artifact is the published artifact id.
	Artifact string
	// Repository identifies the remote counterpart on the hosting service.
	Repository Repository
}

// NewLibrary creates a library depending on the given libraries, in order.
func NewLibrary(name string, dependencies ...*Library) *Library {
	deps := make([]*Library, len(dependencies))
	copy(deps, dependencies)
	return &Library{Name: name, Artifact: name, Dependencies: deps}
}

func (l *Library) String() string { return l.Name }

// Branch returns the short name of the remote branch the library is released from.
func (l *Library) Branch() string {
	return trimBranchPrefix(l.Repository.DefaultBranch)
}

// Libraries is a working set of libraries. Names are unique within a set.
type Libraries []*Library

// Names returns the library names in set order.
func (s Libraries) Names() []string {
	names := make([]string, 0, len(s))
	for _, lib := range s {
		names = append(names, lib.Name)
	}
	return names
}

// Find returns the library with the given name, or nil.
func (s Libraries) Find(name string) *Library {
	for _, lib := range s {
		if lib.Name == name {
			return lib
		}
	}
	return nil
}

// Contains reports whether a library with the same name is in the set.
func (s Libraries) Contains(lib *Library) bool {
	return s.Find(lib.Name) != nil
}

// NewLibrariesFromSettings builds the configured working set and links the
// dependency references by name.
func NewLibrariesFromSettings(settings *Settings) (Libraries, error) {
	libraries := make(Libraries, 0, len(settings.Libraries))
	for _, cfg := range settings.Libraries {
		if libraries.Find(cfg.Name) != nil {
			return nil, fmt.Errorf("library %q is declared more than once", cfg.Name)
		}
		libraries = append(libraries, newLibraryFromConfig(cfg))
	}

	for i, cfg := range settings.Libraries {
		deps := make([]*Library, 0, len(cfg.Dependencies))
		for _, depName := range cfg.Dependencies {
			dep := libraries.Find(depName)
			if dep == nil {
				return nil, fmt.Errorf("library %q depends on unknown library %q", cfg.Name, depName)
			}
			deps = append(deps, dep)
		}
		libraries[i].Dependencies = deps
	}

	return libraries, nil
}

func newLibraryFromConfig(cfg LibraryConfig) *Library {
	lib := NewLibrary(cfg.Name)
	lib.Path = cfg.Path
	lib.VersionFile = cfg.VersionFile
	if cfg.Artifact != "" {
		lib.Artifact = cfg.Artifact
	}

	branch := cfg.Branch
	if branch == "" {
		branch = defaultBranch
	}
	lib.Repository = Repository{
		ID:            cfg.Owner + "/" + cfg.Repository,
		Name:          cfg.Repository,
		Organization:  cfg.Owner,
		DefaultBranch: branchPrefix + branch,
		RemoteURL:     fmt.Sprintf("https://github.com/%s/%s.git", cfg.Owner, cfg.Repository),
		ProviderName:  "github",
	}
	return lib
}
