//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lockstep/internal/domain/commands"
	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/test/domain/entitybuilders"
	"github.com/rios0rios0/lockstep/test/infrastructure/repositorydoubles"
)

// releaseSet returns base <- time <- coreJava, listed dependents first.
func releaseSet() entities.Libraries {
	base := entitybuilders.NewLibraryBuilder().WithName("base").BuildLibrary()
	timeLib := entitybuilders.NewLibraryBuilder().WithName("time").WithDependencies(base).BuildLibrary()
	coreJava := entitybuilders.NewLibraryBuilder().WithName("coreJava").WithDependencies(base, timeLib).BuildLibrary()
	return entities.Libraries{coreJava, timeLib, base}
}

func releaseContents() map[string]string {
	return map[string]string{
		"base":     "val base = \"1.5.0\"\n",
		"time":     "val time = \"1.6.0\"\nval base = \"1.5.0\"\n",
		"coreJava": "val coreJava = \"1.5.0\"\nval base = \"1.5.0\"\nval time = \"1.5.0\"\n",
	}
}

func TestResetOperation(t *testing.T) {
	t.Parallel()

	t.Run("should reset every library", func(t *testing.T) {
		t.Parallel()

		// given
		sourceControl := &repositorydoubles.SpySourceControlRepository{}
		operation := commands.NewResetOperation(sourceControl, false)

		// when
		libraries, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"coreJava", "time", "base"}, sourceControl.Reset)
		assert.Len(t, libraries, 3)
	})

	t.Run("should describe the library that could not be reset", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("fetch failed")
		operation := commands.NewResetOperation(&repositorydoubles.SpySourceControlRepository{ResetErr: cause}, false)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		var opErr *entities.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Contains(t, opErr.Description, "coreJava")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should not touch working copies in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		sourceControl := &repositorydoubles.SpySourceControlRepository{}
		operation := commands.NewResetOperation(sourceControl, true)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Empty(t, sourceControl.Reset)
	})
}

func TestSynchronizeVersionsOperation(t *testing.T) {
	t.Parallel()

	t.Run("should bring every store to the highest version", func(t *testing.T) {
		t.Parallel()

		// given
		stores := repositorydoubles.NewSpyVersionStoreRepository(releaseContents())
		operation := commands.NewSynchronizeVersionsOperation(stores, false)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Equal(t, "val base = \"1.6.0\"\n", stores.Contents["base"])
		assert.Equal(t, "val time = \"1.6.0\"\nval base = \"1.6.0\"\n", stores.Contents["time"])
		assert.Equal(t,
			"val coreJava = \"1.6.0\"\nval base = \"1.6.0\"\nval time = \"1.6.0\"\n", stores.Contents["coreJava"])
	})

	t.Run("should write nothing when already synchronized", func(t *testing.T) {
		t.Parallel()

		// given
		stores := repositorydoubles.NewSpyVersionStoreRepository(map[string]string{
			"base": "val base = \"2.0.0\"\n",
			"time": "val time = \"2.0.0\"\nval base = \"2.0.0\"\n",
		})
		base := entities.NewLibrary("base")
		operation := commands.NewSynchronizeVersionsOperation(stores, false)

		// when
		_, err := operation.Execute(context.Background(), entities.Libraries{base, entities.NewLibrary("time", base)})

		// then
		require.NoError(t, err)
		assert.Empty(t, stores.Overwritten)
	})

	t.Run("should fail with missing version when a store lacks its own entry", func(t *testing.T) {
		t.Parallel()

		// given
		contents := releaseContents()
		contents["time"] = "val base = \"1.5.0\"\n"
		operation := commands.NewSynchronizeVersionsOperation(
			repositorydoubles.NewSpyVersionStoreRepository(contents), false,
		)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.ErrorIs(t, err, entities.ErrMissingVersion)
	})

	t.Run("should only report updates in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		stores := repositorydoubles.NewSpyVersionStoreRepository(releaseContents())
		operation := commands.NewSynchronizeVersionsOperation(stores, true)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Empty(t, stores.Overwritten)
		assert.Equal(t, releaseContents(), stores.Contents)
	})
}

func TestVerifyBuildOperation(t *testing.T) {
	t.Parallel()

	t.Run("should build in dependency order and return the ordered set", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{}
		operation := commands.NewVerifyBuildOperation(buildTool, false)

		// when
		libraries, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"base", "time", "coreJava"}, buildTool.Built)
		assert.Equal(t, []string{"base", "time", "coreJava"}, libraries.Names())
	})

	t.Run("should stop at the first failing build", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{
			BuildErrs: map[string]error{"time": errors.New("compilation failed")},
		}
		operation := commands.NewVerifyBuildOperation(buildTool, false)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		var opErr *entities.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, `build of "time" failed`, opErr.Description)
		assert.Equal(t, []string{"base", "time"}, buildTool.Built)
	})

	t.Run("should fail on a dependency cycle without building anything", func(t *testing.T) {
		t.Parallel()

		// given
		a := entities.NewLibrary("a")
		b := entities.NewLibrary("b", a)
		a.Dependencies = []*entities.Library{b}
		buildTool := &repositorydoubles.SpyBuildToolRepository{}
		operation := commands.NewVerifyBuildOperation(buildTool, false)

		// when
		_, err := operation.Execute(context.Background(), entities.Libraries{a, b})

		// then
		var cycleErr *entities.CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		assert.Empty(t, buildTool.Built)
	})
}

func TestPublishOperation(t *testing.T) {
	t.Parallel()

	synchronized := map[string]string{
		"base":     "val base = \"1.6.0\"\n",
		"time":     "val time = \"1.6.0\"\nval base = \"1.6.0\"\n",
		"coreJava": "val coreJava = \"1.6.0\"\nval base = \"1.6.0\"\nval time = \"1.6.0\"\n",
	}

	t.Run("should publish unpublished libraries in dependency order", func(t *testing.T) {
		t.Parallel()

		// given
		artifacts := &repositorydoubles.StubArtifactRepository{PublishedNames: map[string]bool{"base": true}}
		buildTool := &repositorydoubles.SpyBuildToolRepository{}
		operation := commands.NewPublishOperation(
			repositorydoubles.NewSpyVersionStoreRepository(synchronized), artifacts, buildTool, false,
		)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"base@1.6.0", "time@1.6.0", "coreJava@1.6.0"}, artifacts.Probed)
		assert.Equal(t, []string{"time", "coreJava"}, buildTool.Published)
	})

	t.Run("should fail when the repository cannot tell", func(t *testing.T) {
		t.Parallel()

		// given
		artifacts := &repositorydoubles.StubArtifactRepository{
			ProbeErr: &entities.RemoteFailureError{StatusCode: 503},
		}
		buildTool := &repositorydoubles.SpyBuildToolRepository{}
		operation := commands.NewPublishOperation(
			repositorydoubles.NewSpyVersionStoreRepository(synchronized), artifacts, buildTool, false,
		)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		var remoteErr *entities.RemoteFailureError
		require.ErrorAs(t, err, &remoteErr)
		assert.Empty(t, buildTool.Published)
	})

	t.Run("should fail when publishing fails", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{PublishErr: errors.New("401 from repository")}
		operation := commands.NewPublishOperation(
			repositorydoubles.NewSpyVersionStoreRepository(synchronized),
			&repositorydoubles.StubArtifactRepository{}, buildTool, false,
		)

		// when
		_, err := operation.Execute(context.Background(), releaseSet())

		// then
		var opErr *entities.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "publishing base 1.6.0 failed", opErr.Description)
		assert.Equal(t, []string{"base"}, buildTool.Published)
	})
}

func TestPushOperation(t *testing.T) {
	t.Parallel()

	t.Run("should commit each version file with the release message", func(t *testing.T) {
		t.Parallel()

		// given
		contents := map[string]string{
			"base": "val base = \"1.6.0\"\n",
			"time": "val time = \"1.6.0\"\nval base = \"1.6.0\"\n",
		}
		base := entitybuilders.NewLibraryBuilder().WithName("base").WithVersionFile("Versions.kt").BuildLibrary()
		timeLib := entitybuilders.NewLibraryBuilder().WithName("time").WithVersionFile("Versions.kt").BuildLibrary()
		hosting := &repositorydoubles.SpyHostingRepository{}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		operation := commands.NewPushOperation(
			repositorydoubles.NewSpyVersionStoreRepository(contents), hosting, settings, false,
		)

		// when
		_, err := operation.Execute(context.Background(), entities.Libraries{base, timeLib})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"base", "time"}, hosting.Libraries)
		require.Len(t, hosting.Commits, 2)
		assert.Equal(t, "Versions.kt", hosting.Commits[1].Path)
		assert.Equal(t, contents["time"], hosting.Commits[1].Content)
		assert.Equal(t, "chore(release): synchronize versions to 1.6.0", hosting.Commits[1].Message)
	})

	t.Run("should fail with the hosting error", func(t *testing.T) {
		t.Parallel()

		// given
		cause := &entities.AuthExhaustedError{Attempts: 3}
		operation := commands.NewPushOperation(
			repositorydoubles.NewSpyVersionStoreRepository(map[string]string{"base": "val base = \"1.6.0\"\n"}),
			&repositorydoubles.SpyHostingRepository{CommitErr: cause},
			entitybuilders.NewSettingsBuilder().BuildSettings(),
			false,
		)

		// when
		_, err := operation.Execute(context.Background(), entities.Libraries{entities.NewLibrary("base")})

		// then
		var exhausted *entities.AuthExhaustedError
		require.ErrorAs(t, err, &exhausted)
	})

	t.Run("should not push in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		hosting := &repositorydoubles.SpyHostingRepository{}
		operation := commands.NewPushOperation(
			repositorydoubles.NewSpyVersionStoreRepository(map[string]string{"base": "val base = \"1.6.0\"\n"}),
			hosting,
			entitybuilders.NewSettingsBuilder().BuildSettings(),
			true,
		)

		// when
		_, err := operation.Execute(context.Background(), entities.Libraries{entities.NewLibrary("base")})

		// then
		require.NoError(t, err)
		assert.Empty(t, hosting.Commits)
	})
}
