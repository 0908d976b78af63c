package controllers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/lockstep/internal/domain/commands"
	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// PlanController handles the "plan" subcommand.
type PlanController struct {
	command commands.Plan
}

// NewPlanController creates a new PlanController.
func NewPlanController(command commands.Plan) *PlanController {
	return &PlanController{command: command}
}

// GetBind returns the Cobra command metadata for the plan controller.
func (it *PlanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "plan",
		Short: "Show the build order and version changes of a release",
		Long: `Read the local version files and print the target version,
the order libraries would be built in, and every version entry
a release would rewrite. Nothing is changed.`,
	}
}

// Execute prints the release plan to the command output.
func (it *PlanController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	plan, err := it.command.Execute(commandContext(cmd), settings)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Target version: %s\n", plan.Target)
	_, _ = fmt.Fprintf(out, "Build order: %s\n", strings.Join(plan.Order.Names(), " -> "))
	if len(plan.Updates) == 0 {
		_, _ = fmt.Fprintln(out, "All libraries are synchronized")
		return nil
	}
	for _, update := range plan.Updates {
		_, _ = fmt.Fprintf(out, "%s (%s):\n", update.Library, update.From)
		for _, name := range update.SortedTargetNames() {
			_, _ = fmt.Fprintf(out, "  %s -> %s\n", name, update.Targets[name])
		}
	}
	return nil
}
