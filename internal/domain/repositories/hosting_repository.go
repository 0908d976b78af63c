package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// FileCommit is a single file to commit on a library's release branch.
type FileCommit struct {
	Path    string
	Content string
	Message string
}

// HostingRepository pushes changes to the code-hosting service.
type HostingRepository interface {
	// CommitFile commits the file on the library's branch. It returns false
	// without committing when the remote file already has the same content.
	CommitFile(ctx context.Context, library *entities.Library, commit FileCommit) (bool, error)
}
