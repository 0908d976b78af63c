//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/lockstep/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// LibraryBuilder helps create test libraries with a fluent interface.
type LibraryBuilder struct {
	*testkit.BaseBuilder
	name         string
	path         string
	versionFile  string
	artifact     string
	owner        string
	branch       string
	dependencies []*entities.Library
}

// NewLibraryBuilder creates a new library builder with sensible defaults.
func NewLibraryBuilder() *LibraryBuilder {
	return &LibraryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-library",
		path:        "/tmp/test-library",
		versionFile: "buildSrc/src/main/kotlin/Versions.kt",
		owner:       "test-org",
		branch:      "main",
	}
}

// WithName sets the library name.
func (b *LibraryBuilder) WithName(name string) *LibraryBuilder {
	b.name = name
	return b
}

// WithPath sets the working copy root.
func (b *LibraryBuilder) WithPath(path string) *LibraryBuilder {
	b.path = path
	return b
}

// WithVersionFile sets the version file location relative to the path.
func (b *LibraryBuilder) WithVersionFile(versionFile string) *LibraryBuilder {
	b.versionFile = versionFile
	return b
}

// WithArtifact sets the published artifact id.
func (b *LibraryBuilder) WithArtifact(artifact string) *LibraryBuilder {
	b.artifact = artifact
	return b
}

// WithOwner sets the owner of the remote repository.
func (b *LibraryBuilder) WithOwner(owner string) *LibraryBuilder {
	b.owner = owner
	return b
}

// WithBranch sets the release branch.
func (b *LibraryBuilder) WithBranch(branch string) *LibraryBuilder {
	b.branch = branch
	return b
}

// WithDependencies sets the libraries this one depends on.
func (b *LibraryBuilder) WithDependencies(dependencies ...*entities.Library) *LibraryBuilder {
	b.dependencies = dependencies
	return b
}

// Build creates the library (satisfies testkit.Builder interface).
func (b *LibraryBuilder) Build() interface{} {
	return b.BuildLibrary()
}

// BuildLibrary creates the library with a concrete return type.
func (b *LibraryBuilder) BuildLibrary() *entities.Library {
	lib := entities.NewLibrary(b.name, b.dependencies...)
	lib.Path = b.path
	lib.VersionFile = b.versionFile
	if b.artifact != "" {
		lib.Artifact = b.artifact
	}
	lib.Repository = entities.Repository{
		ID:            b.owner + "/" + b.name,
		Name:          b.name,
		Organization:  b.owner,
		DefaultBranch: "refs/heads/" + b.branch,
		RemoteURL:     "https://github.com/" + b.owner + "/" + b.name + ".git",
		ProviderName:  "github",
	}
	return lib
}

// Reset clears the builder state, allowing it to be reused.
func (b *LibraryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-library"
	b.path = "/tmp/test-library"
	b.versionFile = "buildSrc/src/main/kotlin/Versions.kt"
	b.artifact = ""
	b.owner = "test-org"
	b.branch = "main"
	b.dependencies = nil
	return b
}

// Clone creates a deep copy of the LibraryBuilder.
func (b *LibraryBuilder) Clone() testkit.Builder {
	deps := make([]*entities.Library, len(b.dependencies))
	copy(deps, b.dependencies)
	return &LibraryBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		path:         b.path,
		versionFile:  b.versionFile,
		artifact:     b.artifact,
		owner:        b.owner,
		branch:       b.branch,
		dependencies: deps,
	}
}
