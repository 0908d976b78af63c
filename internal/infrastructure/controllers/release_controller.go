package controllers

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/lockstep/internal/domain/commands"
	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// ReleaseController handles the "release" subcommand.
type ReleaseController struct {
	command commands.Release
}

// NewReleaseController creates a new ReleaseController.
func NewReleaseController(command commands.Release) *ReleaseController {
	return &ReleaseController{command: command}
}

// GetBind returns the Cobra command metadata for the release controller.
func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release",
		Short: "Release all configured libraries at one version",
		Long: `Release every configured library in lockstep.

Resets each working copy to its remote branch, raises every version
to the highest one found, verifies that all libraries build in
dependency order, publishes the artifacts and pushes the version
files. The run stops at the first failing step.`,
	}
}

// Execute runs a release. Failures are returned to the root command, which
// reports them once.
func (it *ReleaseController) Execute(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	err = it.command.Execute(commandContext(cmd), settings, commands.ReleaseOptions{DryRun: dryRun})
	if err == nil {
		logger.Info("Release succeeded")
		return nil
	}

	var opErr *entities.OperationError
	if errors.As(err, &opErr) {
		return fmt.Errorf("release failed at step %q: %w", opErr.Operation, err)
	}
	return fmt.Errorf("release failed: %w", err)
}
