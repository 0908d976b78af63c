package gradle

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// BuildToolRepository implements repositories.BuildToolRepository by running
// the configured build command inside the library's working copy.
type BuildToolRepository struct {
	command     string
	installArgs []string
	publishArgs []string
}

var _ repositories.BuildToolRepository = (*BuildToolRepository)(nil)

// NewBuildToolRepository creates a build tool runner.
func NewBuildToolRepository(command string, installArgs, publishArgs []string) *BuildToolRepository {
	return &BuildToolRepository{
		command:     command,
		installArgs: installArgs,
		publishArgs: publishArgs,
	}
}

// NewBuildToolRepositoryFromSettings creates a build tool runner from the build section.
func NewBuildToolRepositoryFromSettings(settings *entities.Settings) *BuildToolRepository {
	return NewBuildToolRepository(settings.Build.Command, settings.Build.InstallArgs, settings.Build.PublishArgs)
}

// BuildAndInstall runs the install task, e.g. `./gradlew publishToMavenLocal`.
func (it *BuildToolRepository) BuildAndInstall(ctx context.Context, library *entities.Library) error {
	return it.run(ctx, library, it.installArgs)
}

// Publish runs the publish task, e.g. `./gradlew publish`.
func (it *BuildToolRepository) Publish(ctx context.Context, library *entities.Library) error {
	return it.run(ctx, library, it.publishArgs)
}

func (it *BuildToolRepository) run(ctx context.Context, library *entities.Library, args []string) error {
	commandLine := strings.TrimSpace(it.command + " " + strings.Join(args, " "))
	logger.Debugf("[%s] Running `%s` in %s", library.Name, commandLine, library.Path)

	cmd := exec.CommandContext(ctx, it.command, args...)
	cmd.Dir = library.Path

	output, err := cmd.CombinedOutput()
	outputStr := string(output)
	logger.Debugf("[%s] Build output:\n%s", library.Name, outputStr)

	if err != nil {
		return fmt.Errorf("`%s` failed for %q: %w\nOutput:\n%s", commandLine, library.Name, err, outputStr)
	}
	return nil
}
