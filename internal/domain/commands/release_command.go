package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// Release is the interface for the release command.
type Release interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReleaseOptions) error
}

// ReleaseOptions holds runtime options for a single release.
type ReleaseOptions struct {
	DryRun bool
}

// ReleaseCommand orchestrates a synchronized release of every configured
// library: reset -> synchronize versions -> verify build -> publish -> push.
type ReleaseCommand struct {
	factory repositories.CollaboratorsFactory
}

// NewReleaseCommand creates a new ReleaseCommand.
func NewReleaseCommand(factory repositories.CollaboratorsFactory) *ReleaseCommand {
	return &ReleaseCommand{factory: factory}
}

// NewReleasePipeline assembles the release operations in their canonical order.
func NewReleasePipeline(
	collaborators *repositories.Collaborators,
	settings *entities.Settings,
	dryRun bool,
) *entities.Pipeline {
	return entities.NewPipeline(
		NewResetOperation(collaborators.SourceControl, dryRun),
		NewSynchronizeVersionsOperation(collaborators.VersionStores, dryRun),
		NewVerifyBuildOperation(collaborators.BuildTool, dryRun),
		NewPublishOperation(collaborators.VersionStores, collaborators.Artifacts, collaborators.BuildTool, dryRun),
		NewPushOperation(collaborators.VersionStores, collaborators.Hosting, settings, dryRun),
	)
}

// Execute runs the release pipeline. A failed run returns the
// *entities.OperationError of the step that stopped it.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ReleaseOptions,
) error {
	if opts.DryRun {
		logger.Info("Running in dry-run mode, no changes will be made")
	}

	libraries, err := entities.NewLibrariesFromSettings(settings)
	if err != nil {
		return fmt.Errorf("invalid library configuration: %w", err)
	}

	collaborators, err := it.factory.Build(settings)
	if err != nil {
		return err
	}

	pipeline := NewReleasePipeline(collaborators, settings, opts.DryRun)
	logger.Infof("Releasing %d libraries: %v", len(libraries), libraries.Names())

	state := pipeline.Run(ctx, libraries)
	if state.Status == entities.PipelineFailed {
		return state.Failure
	}

	logger.Infof("Release finished for %v", state.Libraries.Names())
	return nil
}
