//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/lockstep/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	libraries     []entities.LibraryConfig
	commitMessage string
}

// NewSettingsBuilder creates a new settings builder without libraries.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		commitMessage: "chore(release): synchronize versions to %s",
	}
}

// WithLibrary adds a library depending on the named libraries.
func (b *SettingsBuilder) WithLibrary(name string, dependencies ...string) *SettingsBuilder {
	b.libraries = append(b.libraries, entities.LibraryConfig{
		Name:         name,
		Path:         "/tmp/" + name,
		VersionFile:  "Versions.kt",
		Owner:        "test-org",
		Repository:   name,
		Branch:       "main",
		Dependencies: dependencies,
	})
	return b
}

// WithCommitMessage sets the commit message format.
func (b *SettingsBuilder) WithCommitMessage(message string) *SettingsBuilder {
	b.commitMessage = message
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	libraries := make([]entities.LibraryConfig, len(b.libraries))
	copy(libraries, b.libraries)
	return &entities.Settings{
		GitHub: entities.GitHubConfig{
			APIURL:     "https://api.github.com/",
			AppID:      1,
			PrivateKey: "test-key",
			Retries:    entities.DefaultRetryAttempts,
		},
		Artifacts: entities.ArtifactsConfig{
			RepositoryURL: "https://repo.example.com/releases",
			Group:         "com.example",
		},
		Build: entities.BuildConfig{
			Command:     "./gradlew",
			InstallArgs: []string{"publishToMavenLocal"},
			PublishArgs: []string{"publish"},
		},
		Libraries:     libraries,
		CommitMessage: b.commitMessage,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.libraries = nil
	b.commitMessage = "chore(release): synchronize versions to %s"
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	libraries := make([]entities.LibraryConfig, len(b.libraries))
	copy(libraries, b.libraries)
	return &SettingsBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		libraries:     libraries,
		commitMessage: b.commitMessage,
	}
}
