//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// SpyHostingRepository records committed files.
type SpyHostingRepository struct {
	CommitErr error
	Unchanged bool
	Commits   []repositories.FileCommit
	Libraries []string
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (s *SpyHostingRepository) CommitFile(
	_ context.Context, library *entities.Library, commit repositories.FileCommit,
) (bool, error) {
	s.Libraries = append(s.Libraries, library.Name)
	s.Commits = append(s.Commits, commit)
	if s.CommitErr != nil {
		return false, s.CommitErr
	}
	return !s.Unchanged, nil
}
