package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

const perPage = 100

// newAPIClient returns a go-github client presenting token as a bearer
// credential against baseURL.
func newAPIClient(httpClient *http.Client, baseURL *url.URL, token string) *gh.Client {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	endpoint := *baseURL
	client.BaseURL = &endpoint
	return client
}

// parseBaseURL validates an API root URL, which must end with a slash.
func parseBaseURL(raw string) (*url.URL, error) {
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", raw)
	}
	if endpoint.Path == "" || endpoint.Path[len(endpoint.Path)-1] != '/' {
		endpoint.Path += "/"
	}
	return endpoint, nil
}

func httpResponse(resp *gh.Response) *http.Response {
	if resp == nil {
		return nil
	}
	return resp.Response
}

// remoteError classifies an error returned by a direct go-github call.
func remoteError(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp == nil || resp.Response == nil {
		return err
	}
	switch entities.ClassifyStatus(resp.StatusCode) {
	case entities.StatusNotFound:
		return fmt.Errorf("%w: %w", entities.ErrNotFound, err)
	case entities.StatusSuccess:
		return err
	default:
		return &entities.RemoteFailureError{StatusCode: resp.StatusCode, Err: err}
	}
}

var errNoResponse = errors.New("no response received")
