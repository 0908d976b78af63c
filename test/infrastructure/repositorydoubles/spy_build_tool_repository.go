//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// SpyBuildToolRepository records builds and publications in call order.
type SpyBuildToolRepository struct {
	// --- BuildAndInstall ---
	BuildErrs map[string]error
	Built     []string

	// --- Publish ---
	PublishErr error
	Published  []string

	// Panic makes BuildAndInstall panic with this value when set.
	Panic any
}

var _ repositories.BuildToolRepository = (*SpyBuildToolRepository)(nil)

func (s *SpyBuildToolRepository) BuildAndInstall(_ context.Context, library *entities.Library) error {
	if s.Panic != nil {
		panic(s.Panic)
	}
	s.Built = append(s.Built, library.Name)
	if s.BuildErrs != nil {
		return s.BuildErrs[library.Name]
	}
	return nil
}

func (s *SpyBuildToolRepository) Publish(_ context.Context, library *entities.Library) error {
	s.Published = append(s.Published, library.Name)
	return s.PublishErr
}
