package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// ArtifactRepository answers whether an artifact version is already published.
type ArtifactRepository interface {
	// IsPublished returns true on 2xx, false on 404 and an error on any
	// other answer, since the state is then unknown.
	IsPublished(ctx context.Context, library *entities.Library, version entities.Version) (bool, error)
}
