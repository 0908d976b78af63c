package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// VersionStoreRepository loads and writes the version file of a library.
type VersionStoreRepository interface {
	// Load reads the library's version file into a fresh snapshot. A missing
	// file yields entities.ErrVersionStoreNotFound.
	Load(ctx context.Context, library *entities.Library) (*entities.VersionStore, error)

	// Overwrite rewrites the lines named in targets and persists the result.
	// Nothing is written when no line matched; the returned bool reports
	// whether a write happened.
	Overwrite(
		ctx context.Context,
		library *entities.Library,
		targets map[string]entities.Version,
	) (bool, error)
}
