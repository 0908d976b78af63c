package github

import (
	"context"
	"fmt"
	"io"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// Request performs one API call presenting token.
type Request func(ctx context.Context, token entities.Token) (*http.Response, error)

// RequestExecutor runs API requests and answers authentication rejections by
// refreshing the token. Only 401 consumes the retry budget; every other
// unsuccessful answer is returned at once.
type RequestExecutor struct {
	authority repositories.TokenAuthority
}

// NewRequestExecutor creates an executor refreshing tokens through authority.
func NewRequestExecutor(authority repositories.TokenAuthority) *RequestExecutor {
	return &RequestExecutor{authority: authority}
}

// Execute runs request until it succeeds, fails for a reason other than a
// stale credential, or the policy budget is spent. It returns the token that
// was last presented so the caller can replace its own copy.
//
// Errors: entities.ErrNotFound (wrapped) on 404, *entities.AuthExhaustedError
// when 401 persists, *entities.RemoteFailureError on any other status.
func (it *RequestExecutor) Execute(
	ctx context.Context,
	token entities.Token,
	policy entities.RetryPolicy,
	request Request,
) (*http.Response, entities.Token, error) {
	remaining := policy.Attempts
	for {
		resp, err := request(ctx, token)
		if resp == nil {
			if err == nil {
				err = errNoResponse
			}
			return nil, token, err
		}

		if policy.IsSuccess(resp.StatusCode) {
			return resp, token, err
		}

		switch entities.ClassifyStatus(resp.StatusCode) {
		case entities.StatusAuthStale:
			if remaining <= 0 {
				return resp, token, &entities.AuthExhaustedError{Attempts: policy.Attempts}
			}
			remaining--
			discard(resp)

			logger.Warnf(
				"Authentication rejected for %s, refreshing token (%d retries left)",
				requestTarget(resp), remaining,
			)
			refreshed, refreshErr := it.authority.Refresh(ctx, token)
			if refreshErr != nil {
				return resp, token, fmt.Errorf("failed to refresh token: %w", refreshErr)
			}
			token = refreshed

		case entities.StatusNotFound:
			return resp, token, fmt.Errorf("%w: %s", entities.ErrNotFound, describe(resp, err))

		default:
			return resp, token, &entities.RemoteFailureError{StatusCode: resp.StatusCode, Err: err}
		}
	}
}

// discard drains and closes the body of a response that is not handed back,
// so the connection can be reused.
func discard(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func requestTarget(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return "request"
	}
	return resp.Request.Method + " " + resp.Request.URL.Path
}

func describe(resp *http.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	return requestTarget(resp)
}
