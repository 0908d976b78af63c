package repositories

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// TokenAuthority mints installation access tokens.
type TokenAuthority interface {
	// Mint selects the app installation and returns a new access token for it.
	Mint(ctx context.Context) (entities.Token, error)

	// Refresh returns a new token for the installation of previous. The
	// previous value is left untouched.
	Refresh(ctx context.Context, previous entities.Token) (entities.Token, error)
}
