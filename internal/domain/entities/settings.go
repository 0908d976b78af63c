package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultBranch        = "main"
	branchPrefix         = "refs/heads/"
	defaultAPIURL        = "https://api.github.com/"
	defaultBuildCommand  = "./gradlew"
	defaultInstallTask   = "publishToMavenLocal"
	defaultPublishTask   = "publish"
	defaultCommitMessage = "chore(release): synchronize versions to %s"
)

// Settings is the top-level configuration for lockstep.
type Settings struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Build     BuildConfig     `yaml:"build"`
	Libraries []LibraryConfig `yaml:"libraries"`
	// CommitMessage is a format string receiving the target version.
	CommitMessage string `yaml:"commit_message"`
}

// GitHubConfig describes the GitHub App used to push release changes.
type GitHubConfig struct {
	APIURL       string `yaml:"api_url"`
	AppID        int64  `yaml:"app_id"`
	PrivateKey   string `yaml:"private_key"`  // Inline PEM, ${ENV_VAR}, or file path
	Installation string `yaml:"installation"` // Account login, required when the app has several installations
	Retries      int    `yaml:"retries"`
}

// ArtifactsConfig points at the Maven-layout repository artifacts are published to.
type ArtifactsConfig struct {
	RepositoryURL string `yaml:"repository_url"`
	Group         string `yaml:"group"`
}

// BuildConfig describes how the external build tool is invoked.
type BuildConfig struct {
	Command     string   `yaml:"command"`
	InstallArgs []string `yaml:"install_args"`
	PublishArgs []string `yaml:"publish_args"`
}

// LibraryConfig describes one library of the release set.
type LibraryConfig struct {
	Name         string   `yaml:"name"`
	Path         string   `yaml:"path"`
	VersionFile  string   `yaml:"version_file"`
	Owner        string   `yaml:"owner"`
	Repository   string   `yaml:"repository"`
	Branch       string   `yaml:"branch"`
	Artifact     string   `yaml:"artifact"`
	Dependencies []string `yaml:"dependencies"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving secret file paths and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.PrivateKey = ResolveSecret(settings.GitHub.PrivateKey)

	// library paths are relative to the config file
	baseDir := filepath.Dir(path)
	for i := range settings.Libraries {
		lib := &settings.Libraries[i]
		if lib.Path != "" && !filepath.IsAbs(lib.Path) {
			lib.Path = filepath.Join(baseDir, lib.Path)
		}
	}

	settings.applyDefaults()

	if validateErr := ValidateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.GitHub.APIURL == "" {
		s.GitHub.APIURL = defaultAPIURL
	}
	if !strings.HasSuffix(s.GitHub.APIURL, "/") {
		s.GitHub.APIURL += "/"
	}
	if s.GitHub.Retries == 0 {
		s.GitHub.Retries = DefaultRetryAttempts
	}
	if s.Build.Command == "" {
		s.Build.Command = defaultBuildCommand
	}
	if len(s.Build.InstallArgs) == 0 {
		s.Build.InstallArgs = []string{defaultInstallTask}
	}
	if len(s.Build.PublishArgs) == 0 {
		s.Build.PublishArgs = []string{defaultPublishTask}
	}
	if s.CommitMessage == "" {
		s.CommitMessage = defaultCommitMessage
	}
	for i := range s.Libraries {
		if s.Libraries[i].Branch == "" {
			s.Libraries[i].Branch = defaultBranch
		}
		if s.Libraries[i].Repository == "" {
			s.Libraries[i].Repository = s.Libraries[i].Name
		}
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".lockstep.yaml",
		".lockstep.yml",
		"lockstep.yaml",
		"lockstep.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func ResolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// PEM blocks are never paths
	if strings.Contains(resolved, "\n") {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ValidateSettings checks for required configuration values.
func ValidateSettings(settings *Settings) error {
	if settings.GitHub.AppID <= 0 {
		return errors.New("github.app_id is required")
	}
	if settings.GitHub.PrivateKey == "" {
		return errors.New("github.private_key is required (set inline, via ${ENV_VAR}, or as file path)")
	}
	if settings.GitHub.Retries < 0 {
		return errors.New("github.retries must be positive")
	}
	if settings.Artifacts.RepositoryURL == "" {
		return errors.New("artifacts.repository_url is required")
	}
	if settings.Artifacts.Group == "" {
		return errors.New("artifacts.group is required")
	}
	if len(settings.Libraries) == 0 {
		return errors.New("at least one library must be configured")
	}

	for i, lib := range settings.Libraries {
		if lib.Name == "" {
			return fmt.Errorf("libraries[%d].name is required", i)
		}
		if lib.Path == "" {
			return fmt.Errorf("libraries[%d].path is required", i)
		}
		if lib.VersionFile == "" {
			return fmt.Errorf("libraries[%d].version_file is required", i)
		}
		if lib.Owner == "" {
			return fmt.Errorf("libraries[%d].owner is required", i)
		}
	}

	return nil
}

// FormatCommitMessage renders the release commit message for target.
func (s *Settings) FormatCommitMessage(target Version) string {
	message := s.CommitMessage
	if message == "" {
		message = defaultCommitMessage
	}
	if !strings.Contains(message, "%s") {
		return message
	}
	return fmt.Sprintf(message, target)
}

func trimBranchPrefix(ref string) string {
	return strings.TrimPrefix(ref, branchPrefix)
}
