package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
	"github.com/rios0rios0/lockstep/internal/domain/repositories"
)

// ArtifactRepository implements repositories.ArtifactRepository against a
// Maven-layout repository.
type ArtifactRepository struct {
	http    *http.Client
	baseURL string
	group   string
}

var _ repositories.ArtifactRepository = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a probe for artifacts of group under baseURL.
func NewArtifactRepository(httpClient *http.Client, baseURL, group string) *ArtifactRepository {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}
	return &ArtifactRepository{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		group:   group,
	}
}

// NewArtifactRepositoryFromSettings creates a probe from the artifacts section.
func NewArtifactRepositoryFromSettings(settings *entities.Settings) *ArtifactRepository {
	return NewArtifactRepository(nil, settings.Artifacts.RepositoryURL, settings.Artifacts.Group)
}

// ArtifactURL returns the POM location of library at version,
// e.g. https://repo/maven2/com/example/base/1.5.0/base-1.5.0.pom.
func (it *ArtifactRepository) ArtifactURL(library *entities.Library, version entities.Version) string {
	return fmt.Sprintf(
		"%s/%s/%s/%s/%s-%s.pom",
		it.baseURL,
		strings.ReplaceAll(it.group, ".", "/"),
		library.Artifact,
		version,
		library.Artifact,
		version,
	)
}

// IsPublished probes the artifact URL.
func (it *ArtifactRepository) IsPublished(
	ctx context.Context,
	library *entities.Library,
	version entities.Version,
) (bool, error) {
	url := it.ArtifactURL(library, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := it.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debugf("[%s] Probe %s answered %d", library.Name, url, resp.StatusCode)

	switch entities.ClassifyStatus(resp.StatusCode) {
	case entities.StatusSuccess:
		return true, nil
	case entities.StatusNotFound:
		return false, nil
	default:
		return false, &entities.RemoteFailureError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("cannot tell whether %s is published", url),
		}
	}
}
