package repositories

import (
	domainRepos "github.com/rios0rios0/lockstep/internal/domain/repositories"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewCollaboratorsFactory); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CollaboratorsFactory) domainRepos.CollaboratorsFactory {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
