package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

const (
	// AssertionLifetime is the validity of the app identity assertion. GitHub
	// caps it at ten minutes, well below the one hour of installation tokens.
	AssertionLifetime = 9 * time.Minute
	// assertionBackdate absorbs clock drift between us and the API.
	assertionBackdate = 60 * time.Second
)

// TokenAuthority implements repositories.TokenAuthority for a GitHub App.
type TokenAuthority struct {
	appID        int64
	key          *rsa.PrivateKey
	baseURL      *url.URL
	httpClient   *http.Client
	installation string
	now          func() time.Time
}

var _ repositories.TokenAuthority = (*TokenAuthority)(nil)

// NewTokenAuthority creates an authority for the app identified by appID,
// signing assertions with the PEM encoded RSA key. installation selects the
// installation by account login; it may be empty when the app has exactly
// one installation.
func NewTokenAuthority(
	httpClient *http.Client,
	apiURL string,
	appID int64,
	privateKeyPEM []byte,
	installation string,
) (*TokenAuthority, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub App private key: %w", err)
	}
	baseURL, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}

	return &TokenAuthority{
		appID:        appID,
		key:          key,
		baseURL:      baseURL,
		httpClient:   httpClient,
		installation: installation,
		now:          time.Now,
	}, nil
}

// NewTokenAuthorityFromSettings creates an authority from the github section.
func NewTokenAuthorityFromSettings(settings *entities.Settings) (*TokenAuthority, error) {
	return NewTokenAuthority(
		nil,
		settings.GitHub.APIURL,
		settings.GitHub.AppID,
		[]byte(settings.GitHub.PrivateKey),
		settings.GitHub.Installation,
	)
}

// WithClock replaces the time source. Used in tests.
func (it *TokenAuthority) WithClock(now func() time.Time) *TokenAuthority {
	it.now = now
	return it
}

// Assertion returns a signed, time-boxed JWT identifying the app.
func (it *TokenAuthority) Assertion() (string, error) {
	now := it.now()
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(it.appID, 10),
		IssuedAt:  jwt.NewNumericDate(now.Add(-assertionBackdate)),
		ExpiresAt: jwt.NewNumericDate(now.Add(AssertionLifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(it.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign app assertion: %w", err)
	}
	return signed, nil
}

// Mint selects the installation and exchanges a fresh assertion for an
// installation access token.
func (it *TokenAuthority) Mint(ctx context.Context) (entities.Token, error) {
	client, err := it.appClient()
	if err != nil {
		return entities.Token{}, err
	}

	installationID, err := it.selectInstallation(ctx, client)
	if err != nil {
		return entities.Token{}, err
	}
	return it.exchange(ctx, client, installationID)
}

// Refresh mints a new token for the installation of previous.
func (it *TokenAuthority) Refresh(ctx context.Context, previous entities.Token) (entities.Token, error) {
	if previous.InstallationID == 0 {
		return it.Mint(ctx)
	}

	client, err := it.appClient()
	if err != nil {
		return entities.Token{}, err
	}
	return it.exchange(ctx, client, previous.InstallationID)
}

func (it *TokenAuthority) appClient() (*gh.Client, error) {
	assertion, err := it.Assertion()
	if err != nil {
		return nil, err
	}
	return newAPIClient(it.httpClient, it.baseURL, assertion), nil
}

// selectInstallation lists the app installations and picks exactly one.
func (it *TokenAuthority) selectInstallation(ctx context.Context, client *gh.Client) (int64, error) {
	var candidates []*gh.Installation
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("failed to list app installations: %w", remoteError(resp, err))
		}

		for _, installation := range installations {
			if it.installation != "" &&
				!strings.EqualFold(installation.GetAccount().GetLogin(), it.installation) {
				continue
			}
			candidates = append(candidates, installation)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	switch len(candidates) {
	case 0:
		if it.installation != "" {
			return 0, fmt.Errorf("no installation of app %d for account %q", it.appID, it.installation)
		}
		return 0, fmt.Errorf("app %d has no installation", it.appID)
	case 1:
		return candidates[0].GetID(), nil
	default:
		return 0, fmt.Errorf(
			"app %d has %d installations; set github.installation to choose one",
			it.appID, len(candidates),
		)
	}
}

func (it *TokenAuthority) exchange(
	ctx context.Context,
	client *gh.Client,
	installationID int64,
) (entities.Token, error) {
	issued, resp, err := client.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return entities.Token{}, fmt.Errorf(
			"failed to create access token for installation %d: %w", installationID, remoteError(resp, err),
		)
	}

	token := entities.Token{
		Value:          issued.GetToken(),
		ExpiresAt:      issued.GetExpiresAt().Time,
		InstallationID: installationID,
	}
	logger.Debugf("Minted token for installation %d, expires at %s", installationID, token.ExpiresAt.Format(time.RFC3339))
	return token, nil
}
