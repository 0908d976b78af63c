package github

import (
	"context"
	"fmt"
	"time"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// expirySkew keeps a token from being presented in its last minute.
const expirySkew = time.Minute

// Session holds the installation token of a release run. It mints on first
// use and whenever the held token is about to expire.
type Session struct {
	authority repositories.TokenAuthority
	now       func() time.Time
	token     entities.Token
}

// NewSession creates an empty session.
func NewSession(authority repositories.TokenAuthority) *Session {
	return &Session{authority: authority, now: time.Now}
}

// WithClock replaces the time source. Used in tests.
func (it *Session) WithClock(now func() time.Time) *Session {
	it.now = now
	return it
}

// Token returns a token that is valid now.
func (it *Session) Token(ctx context.Context) (entities.Token, error) {
	if it.token.IsUsable(it.now(), expirySkew) {
		return it.token, nil
	}

	var (
		next entities.Token
		err  error
	)
	if it.token.IsZero() {
		next, err = it.authority.Mint(ctx)
	} else {
		next, err = it.authority.Refresh(ctx, it.token)
	}
	if err != nil {
		return entities.Token{}, fmt.Errorf("failed to obtain installation token: %w", err)
	}

	it.token = next
	return next, nil
}

// Replace stores a token returned by the request executor.
func (it *Session) Replace(token entities.Token) {
	it.token = token
}
