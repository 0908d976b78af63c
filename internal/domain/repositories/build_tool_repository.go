package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// BuildToolRepository drives the external build tool of a library.
type BuildToolRepository interface {
	// BuildAndInstall builds the library and installs it where its dependents
	// resolve it from locally.
	BuildAndInstall(ctx context.Context, library *entities.Library) error

	// Publish uploads the library's artifacts to the artifact repository.
	Publish(ctx context.Context, library *entities.Library) error
}
