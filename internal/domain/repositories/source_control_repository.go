package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// SourceControlRepository manipulates the local working copy of a library.
type SourceControlRepository interface {
	// ResetToRemote discards local changes and moves the release branch to
	// the current state of its remote counterpart.
	ResetToRemote(ctx context.Context, library *entities.Library) error
}
