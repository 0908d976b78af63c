package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// Plan is the interface for the plan command.
type Plan interface {
	Execute(ctx context.Context, settings *entities.Settings) (*ReleasePlan, error)
}

// ReleasePlan is what a release would do, computed from local state only.
type ReleasePlan struct {
	Target  entities.Version
	Order   entities.Libraries
	Updates []entities.VersionUpdate
}

// PlanCommand computes the build order and version updates without side effects.
type PlanCommand struct {
	factory repositories.CollaboratorsFactory
}

// NewPlanCommand creates a new PlanCommand.
func NewPlanCommand(factory repositories.CollaboratorsFactory) *PlanCommand {
	return &PlanCommand{factory: factory}
}

// Execute reads every version store and derives the release plan.
func (it *PlanCommand) Execute(ctx context.Context, settings *entities.Settings) (*ReleasePlan, error) {
	libraries, err := entities.NewLibrariesFromSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid library configuration: %w", err)
	}

	order, err := entities.OrderLibraries(libraries)
	if err != nil {
		return nil, err
	}

	collaborators, err := it.factory.Build(settings)
	if err != nil {
		return nil, err
	}

	stores, err := loadStores(ctx, collaborators.VersionStores, libraries)
	if err != nil {
		return nil, err
	}
	target, err := entities.TargetVersion(stores)
	if err != nil {
		return nil, err
	}
	updates, err := entities.UpdatesNeeded(stores, target)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Planned %d updates towards %s", len(updates), target)
	return &ReleasePlan{Target: target, Order: order, Updates: updates}, nil
}
