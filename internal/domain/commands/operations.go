package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

const (
	OperationReset       = "reset"
	OperationSynchronize = "synchronize-versions"
	OperationVerifyBuild = "verify-build"
	OperationPublish     = "publish"
	OperationPush        = "push"
)

func failure(operation, description string, cause error) *entities.OperationError {
	return &entities.OperationError{Operation: operation, Description: description, Cause: cause}
}

// loadStores reads the version store of every library, in set order.
func loadStores(
	ctx context.Context,
	repository repositories.VersionStoreRepository,
	libraries entities.Libraries,
) ([]*entities.VersionStore, error) {
	stores := make([]*entities.VersionStore, 0, len(libraries))
	for _, lib := range libraries {
		store, err := repository.Load(ctx, lib)
		if err != nil {
			return nil, fmt.Errorf("failed to load version store of %q: %w", lib.Name, err)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// ownVersion returns the version the library is released under.
func ownVersion(
	ctx context.Context,
	repository repositories.VersionStoreRepository,
	library *entities.Library,
) (entities.Version, error) {
	store, err := repository.Load(ctx, library)
	if err != nil {
		return entities.Version{}, err
	}
	version, err := store.OwnVersion()
	if err != nil {
		return entities.Version{}, fmt.Errorf("library %q: %w", library.Name, err)
	}
	return version, nil
}

// ResetOperation discards local state and moves every library to its remote head.
type ResetOperation struct {
	sourceControl repositories.SourceControlRepository
	dryRun        bool
}

// NewResetOperation creates the reset step.
func NewResetOperation(sourceControl repositories.SourceControlRepository, dryRun bool) *ResetOperation {
	return &ResetOperation{sourceControl: sourceControl, dryRun: dryRun}
}

func (it *ResetOperation) Name() string { return OperationReset }

func (it *ResetOperation) Execute(ctx context.Context, libraries entities.Libraries) (entities.Libraries, error) {
	for _, lib := range libraries {
		if it.dryRun {
			logger.Infof("[dry-run] Would reset %q to %s", lib.Name, lib.Branch())
			continue
		}
		if err := it.sourceControl.ResetToRemote(ctx, lib); err != nil {
			return nil, failure(OperationReset, fmt.Sprintf("failed to reset %q to its remote", lib.Name), err)
		}
	}
	return libraries, nil
}

// SynchronizeVersionsOperation raises every lagging version to the highest
// version found in the working set and writes the result back.
type SynchronizeVersionsOperation struct {
	versionStores repositories.VersionStoreRepository
	dryRun        bool
}

// NewSynchronizeVersionsOperation creates the synchronization step.
func NewSynchronizeVersionsOperation(
	versionStores repositories.VersionStoreRepository,
	dryRun bool,
) *SynchronizeVersionsOperation {
	return &SynchronizeVersionsOperation{versionStores: versionStores, dryRun: dryRun}
}

func (it *SynchronizeVersionsOperation) Name() string { return OperationSynchronize }

func (it *SynchronizeVersionsOperation) Execute(
	ctx context.Context,
	libraries entities.Libraries,
) (entities.Libraries, error) {
	stores, err := loadStores(ctx, it.versionStores, libraries)
	if err != nil {
		return nil, failure(OperationSynchronize, "failed to read version stores", err)
	}

	target, err := entities.TargetVersion(stores)
	if err != nil {
		return nil, failure(OperationSynchronize, "failed to compute the target version", err)
	}
	logger.Infof("Target version is %s", target)

	updates, err := entities.UpdatesNeeded(stores, target)
	if err != nil {
		return nil, failure(OperationSynchronize, "failed to compute version updates", err)
	}
	if len(updates) == 0 {
		logger.Info("All libraries are already synchronized")
		return libraries, nil
	}

	for _, update := range updates {
		lib := libraries.Find(update.Library)
		for _, name := range update.SortedTargetNames() {
			logger.Infof("[%s] %s -> %s", update.Library, name, update.Targets[name])
		}
		if it.dryRun {
			continue
		}

		written, writeErr := it.versionStores.Overwrite(ctx, lib, update.Targets)
		if writeErr != nil {
			return nil, failure(OperationSynchronize,
				fmt.Sprintf("failed to write version store of %q", update.Library), writeErr)
		}
		if !written {
			logger.Warnf("[%s] Version store changed on disk, nothing was rewritten", update.Library)
		}
	}

	return libraries, nil
}

// VerifyBuildOperation builds and installs every library in dependency order
// so each build resolves freshly installed dependencies.
type VerifyBuildOperation struct {
	buildTool repositories.BuildToolRepository
	dryRun    bool
}

// NewVerifyBuildOperation creates the build verification step.
func NewVerifyBuildOperation(buildTool repositories.BuildToolRepository, dryRun bool) *VerifyBuildOperation {
	return &VerifyBuildOperation{buildTool: buildTool, dryRun: dryRun}
}

func (it *VerifyBuildOperation) Name() string { return OperationVerifyBuild }

// Execute returns the working set in build order.
func (it *VerifyBuildOperation) Execute(
	ctx context.Context,
	libraries entities.Libraries,
) (entities.Libraries, error) {
	ordered, err := entities.OrderLibraries(libraries)
	if err != nil {
		return nil, failure(OperationVerifyBuild, "failed to order libraries", err)
	}

	for _, lib := range ordered {
		if it.dryRun {
			logger.Infof("[dry-run] Would build and install %q", lib.Name)
			continue
		}
		if buildErr := it.buildTool.BuildAndInstall(ctx, lib); buildErr != nil {
			return nil, failure(OperationVerifyBuild, fmt.Sprintf("build of %q failed", lib.Name), buildErr)
		}
	}
	return ordered, nil
}

// PublishOperation publishes the artifacts of every library not yet present
// in the artifact repository, in dependency order.
type PublishOperation struct {
	versionStores repositories.VersionStoreRepository
	artifacts     repositories.ArtifactRepository
	buildTool     repositories.BuildToolRepository
	dryRun        bool
}

// NewPublishOperation creates the publish step.
func NewPublishOperation(
	versionStores repositories.VersionStoreRepository,
	artifacts repositories.ArtifactRepository,
	buildTool repositories.BuildToolRepository,
	dryRun bool,
) *PublishOperation {
	return &PublishOperation{
		versionStores: versionStores,
		artifacts:     artifacts,
		buildTool:     buildTool,
		dryRun:        dryRun,
	}
}

func (it *PublishOperation) Name() string { return OperationPublish }

func (it *PublishOperation) Execute(ctx context.Context, libraries entities.Libraries) (entities.Libraries, error) {
	ordered, err := entities.OrderLibraries(libraries)
	if err != nil {
		return nil, failure(OperationPublish, "failed to order libraries", err)
	}

	for _, lib := range ordered {
		version, versionErr := ownVersion(ctx, it.versionStores, lib)
		if versionErr != nil {
			return nil, failure(OperationPublish, fmt.Sprintf("failed to read version of %q", lib.Name), versionErr)
		}

		published, probeErr := it.artifacts.IsPublished(ctx, lib, version)
		if probeErr != nil {
			return nil, failure(OperationPublish,
				fmt.Sprintf("failed to check whether %s %s is published", lib.Name, version), probeErr)
		}
		if published {
			logger.Infof("[%s] %s is already published, skipping", lib.Name, version)
			continue
		}

		if it.dryRun {
			logger.Infof("[dry-run] Would publish %s %s", lib.Name, version)
			continue
		}
		if publishErr := it.buildTool.Publish(ctx, lib); publishErr != nil {
			return nil, failure(OperationPublish,
				fmt.Sprintf("publishing %s %s failed", lib.Name, version), publishErr)
		}
		logger.Infof("[%s] Published %s", lib.Name, version)
	}
	return ordered, nil
}

// PushOperation commits the synchronized version file of every library to
// its remote repository.
type PushOperation struct {
	versionStores repositories.VersionStoreRepository
	hosting       repositories.HostingRepository
	settings      *entities.Settings
	dryRun        bool
}

// NewPushOperation creates the push step.
func NewPushOperation(
	versionStores repositories.VersionStoreRepository,
	hosting repositories.HostingRepository,
	settings *entities.Settings,
	dryRun bool,
) *PushOperation {
	return &PushOperation{
		versionStores: versionStores,
		hosting:       hosting,
		settings:      settings,
		dryRun:        dryRun,
	}
}

func (it *PushOperation) Name() string { return OperationPush }

func (it *PushOperation) Execute(ctx context.Context, libraries entities.Libraries) (entities.Libraries, error) {
	for _, lib := range libraries {
		store, err := it.versionStores.Load(ctx, lib)
		if err != nil {
			return nil, failure(OperationPush, fmt.Sprintf("failed to read version store of %q", lib.Name), err)
		}
		version, err := store.OwnVersion()
		if err != nil {
			return nil, failure(OperationPush, fmt.Sprintf("failed to read version of %q", lib.Name), err)
		}

		commit := repositories.FileCommit{
			Path:    filepath.ToSlash(lib.VersionFile),
			Content: store.Content(),
			Message: it.settings.FormatCommitMessage(version),
		}
		if it.dryRun {
			logger.Infof("[dry-run] Would push %s of %q with %q", commit.Path, lib.Name, commit.Message)
			continue
		}

		pushed, pushErr := it.hosting.CommitFile(ctx, lib, commit)
		if pushErr != nil {
			return nil, failure(OperationPush, fmt.Sprintf("failed to push %s of %q", commit.Path, lib.Name), pushErr)
		}
		if !pushed {
			logger.Infof("[%s] Remote already at %s", lib.Name, version)
		}
	}
	return libraries, nil
}
