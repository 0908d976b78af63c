package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

const defaultFileMode = 0o644

// FilesystemFactory opens the filesystem rooted at a library's working copy.
type FilesystemFactory func(root string) billy.Filesystem

// VersionStoreRepository implements repositories.VersionStoreRepository over
// a billy filesystem. Every Load reads the file again; nothing is cached.
type VersionStoreRepository struct {
	open FilesystemFactory
}

var _ repositories.VersionStoreRepository = (*VersionStoreRepository)(nil)

// NewVersionStoreRepository creates a repository reading from the OS filesystem.
func NewVersionStoreRepository() *VersionStoreRepository {
	return NewVersionStoreRepositoryWithFilesystem(func(root string) billy.Filesystem {
		return osfs.New(root)
	})
}

// NewVersionStoreRepositoryWithFilesystem creates a repository over custom filesystems.
func NewVersionStoreRepositoryWithFilesystem(open FilesystemFactory) *VersionStoreRepository {
	return &VersionStoreRepository{open: open}
}

// Load reads the library's version file.
func (it *VersionStoreRepository) Load(
	ctx context.Context,
	library *entities.Library,
) (*entities.VersionStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fs := it.open(library.Path)
	data, err := util.ReadFile(fs, library.VersionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(
				"%w: %s for library %q", entities.ErrVersionStoreNotFound,
				fs.Join(library.Path, library.VersionFile), library.Name,
			)
		}
		return nil, fmt.Errorf("failed to read version file of %q: %w", library.Name, err)
	}

	return entities.ParseVersionStore(library.Name, string(data)), nil
}

// Overwrite rewrites the targeted lines and writes the file back in place.
func (it *VersionStoreRepository) Overwrite(
	ctx context.Context,
	library *entities.Library,
	targets map[string]entities.Version,
) (bool, error) {
	store, err := it.Load(ctx, library)
	if err != nil {
		return false, err
	}

	rewritten, changed := store.Rewrite(targets)
	if !changed {
		logger.Debugf("[%s] No version entry below its target, leaving %s untouched", library.Name, library.VersionFile)
		return false, nil
	}

	fs := it.open(library.Path)
	mode := os.FileMode(defaultFileMode)
	if info, statErr := fs.Stat(library.VersionFile); statErr == nil {
		mode = info.Mode().Perm()
	}

	if writeErr := util.WriteFile(fs, library.VersionFile, []byte(rewritten.Content()), mode); writeErr != nil {
		return false, fmt.Errorf("failed to write version file of %q: %w", library.Name, writeErr)
	}
	return true, nil
}
