//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// StubArtifactRepository answers from a fixed set of published library names.
type StubArtifactRepository struct {
	PublishedNames map[string]bool
	ProbeErr       error
	Probed         []string
}

var _ repositories.ArtifactRepository = (*StubArtifactRepository)(nil)

func (s *StubArtifactRepository) IsPublished(
	_ context.Context, library *entities.Library, version entities.Version,
) (bool, error) {
	s.Probed = append(s.Probed, library.Name+"@"+version.String())
	if s.ProbeErr != nil {
		return false, s.ProbeErr
	}
	return s.PublishedNames[library.Name], nil
}
