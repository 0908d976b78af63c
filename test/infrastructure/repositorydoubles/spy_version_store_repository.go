//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// SpyVersionStoreRepository keeps version files in memory, keyed by library name.
type SpyVersionStoreRepository struct {
	// --- Load ---
	Contents map[string]string
	LoadErr  error

	// --- Overwrite ---
	OverwriteErr error
	Overwritten  map[string]map[string]entities.Version
}

var _ repositories.VersionStoreRepository = (*SpyVersionStoreRepository)(nil)

// NewSpyVersionStoreRepository creates a spy serving the given file contents.
func NewSpyVersionStoreRepository(contents map[string]string) *SpyVersionStoreRepository {
	return &SpyVersionStoreRepository{
		Contents:    contents,
		Overwritten: make(map[string]map[string]entities.Version),
	}
}

func (s *SpyVersionStoreRepository) Load(
	_ context.Context, library *entities.Library,
) (*entities.VersionStore, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	content, ok := s.Contents[library.Name]
	if !ok {
		return nil, entities.ErrVersionStoreNotFound
	}
	return entities.ParseVersionStore(library.Name, content), nil
}

func (s *SpyVersionStoreRepository) Overwrite(
	ctx context.Context, library *entities.Library, targets map[string]entities.Version,
) (bool, error) {
	if s.OverwriteErr != nil {
		return false, s.OverwriteErr
	}
	store, err := s.Load(ctx, library)
	if err != nil {
		return false, err
	}
	rewritten, changed := store.Rewrite(targets)
	if !changed {
		return false, nil
	}
	s.Contents[library.Name] = rewritten.Content()
	s.Overwritten[library.Name] = targets
	return true, nil
}
