package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

const (
	remoteName    = "origin"
	tokenUsername = "x-access-token"
)

// CredentialSource hands out an access token usable for HTTPS remotes.
type CredentialSource interface {
	Token(ctx context.Context) (entities.Token, error)
}

// SourceControlRepository implements repositories.SourceControlRepository
// with go-git on the library's local working copy.
type SourceControlRepository struct {
	credentials CredentialSource
}

var _ repositories.SourceControlRepository = (*SourceControlRepository)(nil)

// NewSourceControlRepository creates a repository authenticating HTTPS
// fetches with tokens from credentials. A nil source fetches anonymously.
func NewSourceControlRepository(credentials CredentialSource) *SourceControlRepository {
	return &SourceControlRepository{credentials: credentials}
}

// ResetToRemote fetches origin, points the release branch at the remote head,
// checks it out and hard-resets the working tree.
func (it *SourceControlRepository) ResetToRemote(ctx context.Context, library *entities.Library) error {
	repo, err := git.PlainOpen(library.Path)
	if err != nil {
		return fmt.Errorf("failed to open working copy of %q at %s: %w", library.Name, library.Path, err)
	}

	auth, err := it.authFor(ctx, repo)
	if err != nil {
		return err
	}

	logger.Debugf("[%s] Fetching %s", library.Name, remoteName)
	fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		Auth:       auth,
		Force:      true,
	})
	if fetchErr != nil && !errors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s for %q: %w", remoteName, library.Name, fetchErr)
	}

	branch := library.Branch()
	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return fmt.Errorf("remote branch %s/%s of %q not found: %w", remoteName, branch, library.Name, err)
	}

	localRef := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), remoteRef.Hash())
	if setErr := repo.Storer.SetReference(localRef); setErr != nil {
		return fmt.Errorf("failed to move branch %s of %q: %w", branch, library.Name, setErr)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree of %q: %w", library.Name, err)
	}

	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{
		Branch: localRef.Name(),
		Force:  true,
	}); checkoutErr != nil {
		return fmt.Errorf("failed to checkout %s of %q: %w", branch, library.Name, checkoutErr)
	}

	if resetErr := worktree.Reset(&git.ResetOptions{
		Commit: remoteRef.Hash(),
		Mode:   git.HardReset,
	}); resetErr != nil {
		return fmt.Errorf("failed to reset %q to %s: %w", library.Name, remoteRef.Hash(), resetErr)
	}

	logger.Infof("[%s] Reset to %s/%s at %s", library.Name, remoteName, branch, remoteRef.Hash().String()[:7])
	return nil
}

// authFor returns token credentials for HTTPS remotes and nil otherwise.
func (it *SourceControlRepository) authFor(ctx context.Context, repo *git.Repository) (transport.AuthMethod, error) {
	if it.credentials == nil {
		return nil, nil //nolint:nilnil // anonymous fetch
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return nil, fmt.Errorf("remote %q not configured: %w", remoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 || !strings.HasPrefix(urls[0], "https://") {
		return nil, nil //nolint:nilnil // ssh and local remotes use their own credentials
	}

	token, err := it.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain fetch credentials: %w", err)
	}
	return &githttp.BasicAuth{Username: tokenUsername, Password: token.Value}, nil
}
