//go:build unit

package github_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/lockstep/test/infrastructure/repositorydoubles"
)

func TestSession(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should mint on first use and reuse the token afterwards", func(t *testing.T) {
		t.Parallel()

		// given
		authority := &repositorydoubles.StubTokenAuthority{Now: func() time.Time { return start }}
		session := github.NewSession(authority).WithClock(func() time.Time { return start })

		// when
		first, err := session.Token(context.Background())
		require.NoError(t, err)
		second, err := session.Token(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, authority.MintCount)
		assert.Zero(t, authority.RefreshCount)
	})

	t.Run("should refresh a token about to expire", func(t *testing.T) {
		t.Parallel()

		// given
		now := start
		authority := &repositorydoubles.StubTokenAuthority{Now: func() time.Time { return now }}
		session := github.NewSession(authority).WithClock(func() time.Time { return now })
		first, err := session.Token(context.Background())
		require.NoError(t, err)

		// when
		now = first.ExpiresAt.Add(-30 * time.Second)
		second, err := session.Token(context.Background())

		// then
		require.NoError(t, err)
		assert.NotEqual(t, first.Value, second.Value)
		assert.Equal(t, 1, authority.RefreshCount)
		assert.Equal(t, []entities.Token{first}, authority.Refreshed)
	})

	t.Run("should keep a replaced token", func(t *testing.T) {
		t.Parallel()

		// given
		authority := &repositorydoubles.StubTokenAuthority{}
		session := github.NewSession(authority).WithClock(func() time.Time { return start })
		replacement := entities.Token{Value: "replaced", ExpiresAt: start.Add(time.Hour)}

		// when
		session.Replace(replacement)
		token, err := session.Token(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, replacement, token)
		assert.Zero(t, authority.MintCount)
	})

	t.Run("should fail when minting fails", func(t *testing.T) {
		t.Parallel()

		// given
		mintErr := errors.New("bad credentials")
		session := github.NewSession(&repositorydoubles.StubTokenAuthority{MintErr: mintErr})

		// when
		_, err := session.Token(context.Background())

		// then
		require.ErrorIs(t, err, mintErr)
	})
}
