package repositories

import (
	"fmt"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	domainRepos "github.com/rios0rios0/lockstep/internal/domain/repositories"
	"github.com/rios0rios0/lockstep/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/lockstep/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/lockstep/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/lockstep/internal/infrastructure/repositories/gradle"
	"github.com/rios0rios0/lockstep/internal/infrastructure/repositories/maven"
)

// CollaboratorsFactory wires the GitHub, git, Gradle and Maven backed
// collaborators. One token session is shared by fetches and pushes.
type CollaboratorsFactory struct{}

var _ domainRepos.CollaboratorsFactory = (*CollaboratorsFactory)(nil)

// NewCollaboratorsFactory creates the default factory.
func NewCollaboratorsFactory() *CollaboratorsFactory {
	return &CollaboratorsFactory{}
}

// Build creates the collaborators described by settings.
func (it *CollaboratorsFactory) Build(settings *entities.Settings) (*domainRepos.Collaborators, error) {
	authority, err := ghRepo.NewTokenAuthorityFromSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create token authority: %w", err)
	}
	session := ghRepo.NewSession(authority)

	hosting, err := ghRepo.NewHostingRepositoryFromSettings(settings, session, authority)
	if err != nil {
		return nil, fmt.Errorf("failed to create hosting repository: %w", err)
	}

	return &domainRepos.Collaborators{
		VersionStores: filesystem.NewVersionStoreRepository(),
		SourceControl: git.NewSourceControlRepository(session),
		BuildTool:     gradle.NewBuildToolRepositoryFromSettings(settings),
		Artifacts:     maven.NewArtifactRepositoryFromSettings(settings),
		Hosting:       hosting,
	}, nil
}
