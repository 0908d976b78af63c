package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge. It identifies the remote
// counterpart of a library on the hosting service.
type Repository = gitforgeEntities.Repository
