package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra command metadata a controller is exposed under.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point backed by a domain command. A returned
// error makes the process exit with a failure status.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string) error
}
