package repositories

import "github.com/rios0rios0/lockstep/internal/domain/entities"

// Collaborators groups the external systems a release run talks to.
type Collaborators struct {
	VersionStores VersionStoreRepository
	SourceControl SourceControlRepository
	BuildTool     BuildToolRepository
	Artifacts     ArtifactRepository
	Hosting       HostingRepository
}

// CollaboratorsFactory builds the collaborators of a run from its settings.
// Settings are only known once the configuration file was read, so the
// collaborators cannot be constructed up front.
type CollaboratorsFactory interface {
	Build(settings *entities.Settings) (*Collaborators, error)
}
