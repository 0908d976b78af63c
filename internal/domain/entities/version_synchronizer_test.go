//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

func releaseStores() []*entities.VersionStore {
	return []*entities.VersionStore{
		entities.ParseVersionStore("base", `val base = "1.5.0"`),
		entities.ParseVersionStore("time", "val time = \"1.5.0\"\nval base = \"1.5.0\""),
		entities.ParseVersionStore("coreJava",
			"val coreJava = \"1.6.0\"\nval base = \"1.5.0\"\nval time = \"1.5.0\""),
	}
}

func TestTargetVersion(t *testing.T) {
	t.Parallel()

	t.Run("should pick the highest own version", func(t *testing.T) {
		t.Parallel()

		// given
		stores := releaseStores()

		// when
		target, err := entities.TargetVersion(stores)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.6.0", target.String())
	})

	t.Run("should ignore dependency declarations above every own version", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{
			entities.ParseVersionStore("base", "val base = \"1.0.0\"\nval kotlin = \"9.9.9\""),
		}

		// when
		target, err := entities.TargetVersion(stores)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", target.String())
	})

	t.Run("should fail when a library has no own version", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{entities.ParseVersionStore("base", `val time = "1.0.0"`)}

		// when
		_, err := entities.TargetVersion(stores)

		// then
		require.ErrorIs(t, err, entities.ErrMissingVersion)
	})

	t.Run("should fail for an empty set", func(t *testing.T) {
		t.Parallel()

		// given
		var stores []*entities.VersionStore

		// when
		_, err := entities.TargetVersion(stores)

		// then
		require.Error(t, err)
	})
}

func TestUpdatesNeeded(t *testing.T) {
	t.Parallel()

	t.Run("should raise every lagging own and dependency version to the target", func(t *testing.T) {
		t.Parallel()

		// given
		stores := releaseStores()
		target := entities.MustParseVersion("1.6.0")

		// when
		updates, err := entities.UpdatesNeeded(stores, target)

		// then
		require.NoError(t, err)
		require.Len(t, updates, 3)
		assert.Equal(t, "base", updates[0].Library)
		assert.Equal(t, []string{"base"}, updates[0].SortedTargetNames())
		assert.Equal(t, "time", updates[1].Library)
		assert.Equal(t, []string{"base", "time"}, updates[1].SortedTargetNames())
		assert.Equal(t, "coreJava", updates[2].Library)
		assert.Equal(t, []string{"base", "time"}, updates[2].SortedTargetNames())
		assert.Equal(t, "1.6.0", updates[2].From.String())
		for _, update := range updates {
			for _, version := range update.Targets {
				assert.Equal(t, target, version)
			}
		}
	})

	t.Run("should never include entries already at or above the target", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{
			entities.ParseVersionStore("time", "val time = \"1.0.0\"\nval base = \"2.0.0\""),
		}

		// when
		updates, err := entities.UpdatesNeeded(stores, entities.MustParseVersion("1.5.0"))

		// then
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, []string{"time"}, updates[0].SortedTargetNames())
	})

	t.Run("should return no update when everything is synchronized", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{
			entities.ParseVersionStore("time", "val time = \"1.6.0\"\nval base = \"1.6.0\""),
		}

		// when
		updates, err := entities.UpdatesNeeded(stores, entities.MustParseVersion("1.6.0"))

		// then
		require.NoError(t, err)
		assert.Empty(t, updates)
	})

	t.Run("should raise a lagging duplicate hidden behind a synchronized entry", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{
			entities.ParseVersionStore("base", `val base = "1.6.0"`),
			entities.ParseVersionStore("time", "val time = \"1.6.0\"\nval base = \"1.6.0\"\nval base = \"1.4.0\""),
		}
		target := entities.MustParseVersion("1.6.0")

		// when
		updates, err := entities.UpdatesNeeded(stores, target)
		require.NoError(t, err)
		require.Len(t, updates, 1)
		rewritten, changed := stores[1].Rewrite(updates[0].Targets)

		// then
		assert.Equal(t, "time", updates[0].Library)
		assert.Equal(t, map[string]entities.Version{"base": target}, updates[0].Targets)
		assert.True(t, changed)
		assert.Equal(t, "val time = \"1.6.0\"\nval base = \"1.6.0\"\nval base = \"1.6.0\"", rewritten.Content())
	})

	t.Run("should keep a duplicate entry above the target when raising its sibling", func(t *testing.T) {
		t.Parallel()

		// given
		stores := []*entities.VersionStore{
			entities.ParseVersionStore("base", `val base = "1.6.0"`),
			entities.ParseVersionStore("time", "val time = \"1.5.0\"\nval base = \"1.4.0\"\nval base = \"1.7.0\""),
		}
		target := entities.MustParseVersion("1.6.0")

		// when
		updates, err := entities.UpdatesNeeded(stores, target)
		require.NoError(t, err)
		require.Len(t, updates, 1)
		rewritten, _ := stores[1].Rewrite(updates[0].Targets)

		// then
		assert.Equal(t, "val time = \"1.6.0\"\nval base = \"1.6.0\"\nval base = \"1.7.0\"", rewritten.Content())
	})

	t.Run("should synchronize every store to the target when the updates are applied", func(t *testing.T) {
		t.Parallel()

		// given
		stores := releaseStores()
		target, err := entities.TargetVersion(stores)
		require.NoError(t, err)

		// when
		updates, err := entities.UpdatesNeeded(stores, target)
		require.NoError(t, err)
		synchronized := make([]*entities.VersionStore, 0, len(stores))
		for _, store := range stores {
			for _, update := range updates {
				if update.Library == store.Owner() {
					store, _ = store.Rewrite(update.Targets)
				}
			}
			synchronized = append(synchronized, store)
		}

		// then
		for _, store := range synchronized {
			own, ownErr := store.OwnVersion()
			require.NoError(t, ownErr)
			assert.Equal(t, "1.6.0", own.String())
			for name, version := range store.DeclaredDependencyVersions() {
				assert.Equal(t, "1.6.0", version.String(), "%s in %s", name, store.Owner())
			}
		}
		again, err := entities.UpdatesNeeded(synchronized, target)
		require.NoError(t, err)
		assert.Empty(t, again)
	})
}
