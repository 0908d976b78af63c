//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"time"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// StubTokenAuthority hands out numbered tokens: "token-1", "token-2", ...
type StubTokenAuthority struct {
	MintErr    error
	RefreshErr error
	Lifetime   time.Duration
	Now        func() time.Time

	MintCount    int
	RefreshCount int
	Refreshed    []entities.Token
}

var _ repositories.TokenAuthority = (*StubTokenAuthority)(nil)

func (s *StubTokenAuthority) Mint(_ context.Context) (entities.Token, error) {
	if s.MintErr != nil {
		return entities.Token{}, s.MintErr
	}
	s.MintCount++
	return s.next(), nil
}

func (s *StubTokenAuthority) Refresh(_ context.Context, previous entities.Token) (entities.Token, error) {
	s.Refreshed = append(s.Refreshed, previous)
	if s.RefreshErr != nil {
		return entities.Token{}, s.RefreshErr
	}
	s.RefreshCount++
	return s.next(), nil
}

func (s *StubTokenAuthority) next() entities.Token {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	lifetime := s.Lifetime
	if lifetime == 0 {
		lifetime = time.Hour
	}
	return entities.Token{
		Value:          fmt.Sprintf("token-%d", s.MintCount+s.RefreshCount),
		ExpiresAt:      now().Add(lifetime),
		InstallationID: 1,
	}
}
