package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// HostingRepository implements repositories.HostingRepository through the
// GitHub contents API. Every call goes through the RequestExecutor.
type HostingRepository struct {
	session    *Session
	executor   *RequestExecutor
	policy     entities.RetryPolicy
	httpClient *http.Client
	baseURL    *url.URL
}

var _ repositories.HostingRepository = (*HostingRepository)(nil)

// NewHostingRepository creates a hosting repository.
func NewHostingRepository(
	httpClient *http.Client,
	apiURL string,
	session *Session,
	executor *RequestExecutor,
	policy entities.RetryPolicy,
) (*HostingRepository, error) {
	baseURL, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}

	return &HostingRepository{
		session:    session,
		executor:   executor,
		policy:     policy,
		httpClient: httpClient,
		baseURL:    baseURL,
	}, nil
}

// NewHostingRepositoryFromSettings creates a hosting repository sharing the
// session's authority for refreshes.
func NewHostingRepositoryFromSettings(
	settings *entities.Settings,
	session *Session,
	authority repositories.TokenAuthority,
) (*HostingRepository, error) {
	policy, err := entities.NewRetryPolicy(settings.GitHub.Retries)
	if err != nil {
		return nil, err
	}
	return NewHostingRepository(nil, settings.GitHub.APIURL, session, NewRequestExecutor(authority), policy)
}

// CommitFile creates or updates the file on the library's branch.
func (it *HostingRepository) CommitFile(
	ctx context.Context,
	library *entities.Library,
	commit repositories.FileCommit,
) (bool, error) {
	owner := library.Repository.Organization
	name := library.Repository.Name
	branch := library.Branch()

	current, err := it.fetchFile(ctx, owner, name, branch, commit.Path)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return false, err
	}

	var sha *string
	if current != nil {
		content, decodeErr := current.GetContent()
		if decodeErr != nil {
			return false, fmt.Errorf("failed to decode remote %s of %q: %w", commit.Path, library.Name, decodeErr)
		}
		if content == commit.Content {
			logger.Infof("[%s] Remote %s already up to date on %s", library.Name, commit.Path, branch)
			return false, nil
		}
		sha = current.SHA
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(commit.Message),
		Content: []byte(commit.Content),
		SHA:     sha,
		Branch:  gh.String(branch),
	}

	var result *gh.RepositoryContentResponse
	err = it.execute(ctx, func(ctx context.Context, client *gh.Client) (*gh.Response, error) {
		var (
			resp    *gh.Response
			callErr error
		)
		if sha == nil {
			result, resp, callErr = client.Repositories.CreateFile(ctx, owner, name, commit.Path, opts)
		} else {
			result, resp, callErr = client.Repositories.UpdateFile(ctx, owner, name, commit.Path, opts)
		}
		return resp, callErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to commit %s to %s/%s@%s: %w", commit.Path, owner, name, branch, err)
	}

	logger.Infof("[%s] Committed %s to %s/%s@%s (%s)", library.Name, commit.Path, owner, name, branch, result.Commit.GetSHA())
	return true, nil
}

// fetchFile returns the remote file, or a wrapped entities.ErrNotFound.
func (it *HostingRepository) fetchFile(
	ctx context.Context,
	owner, name, branch, path string,
) (*gh.RepositoryContent, error) {
	var file *gh.RepositoryContent
	err := it.execute(ctx, func(ctx context.Context, client *gh.Client) (*gh.Response, error) {
		content, _, resp, callErr := client.Repositories.GetContents(
			ctx, owner, name, path,
			&gh.RepositoryContentGetOptions{Ref: branch},
		)
		file = content
		return resp, callErr
	})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("path %q is a directory, not a file", path)
	}
	return file, nil
}

// execute runs call with the session token and stores the token the
// executor ended up with.
func (it *HostingRepository) execute(
	ctx context.Context,
	call func(ctx context.Context, client *gh.Client) (*gh.Response, error),
) error {
	token, err := it.session.Token(ctx)
	if err != nil {
		return err
	}

	_, last, err := it.executor.Execute(ctx, token, it.policy,
		func(ctx context.Context, token entities.Token) (*http.Response, error) {
			resp, callErr := call(ctx, newAPIClient(it.httpClient, it.baseURL, token.Value))
			return httpResponse(resp), callErr
		},
	)
	it.session.Replace(last)
	return err
}
