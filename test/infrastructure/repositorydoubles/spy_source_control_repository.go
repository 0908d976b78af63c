//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// SpySourceControlRepository records reset libraries.
type SpySourceControlRepository struct {
	ResetErr error
	Reset    []string
}

var _ repositories.SourceControlRepository = (*SpySourceControlRepository)(nil)

func (s *SpySourceControlRepository) ResetToRemote(_ context.Context, library *entities.Library) error {
	s.Reset = append(s.Reset, library.Name)
	return s.ResetErr
}
