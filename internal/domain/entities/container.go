package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Libraries and settings only exist once a config file was read, so nothing
// is registered here.
func RegisterProviders(_ *dig.Container) error {
	return nil
}
