//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// StubCollaboratorsFactory returns fixed collaborators.
type StubCollaboratorsFactory struct {
	Collaborators *repositories.Collaborators
	BuildErr      error
	BuildCount    int
}

var _ repositories.CollaboratorsFactory = (*StubCollaboratorsFactory)(nil)

func (s *StubCollaboratorsFactory) Build(_ *entities.Settings) (*repositories.Collaborators, error) {
	s.BuildCount++
	if s.BuildErr != nil {
		return nil, s.BuildErr
	}
	return s.Collaborators, nil
}
