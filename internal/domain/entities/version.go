package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a string is not a plain "major.minor.patch" triple.
var ErrInvalidVersion = errors.New("invalid version")

// versionPattern accepts exactly three dot-separated decimal components.
// Pre-release and build suffixes are rejected rather than truncated.
var versionPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// Version is a release version without pre-release or build metadata.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a "major.minor.patch" string.
func ParseVersion(raw string) (Version, error) {
	match := versionPattern.FindStringSubmatch(raw)
	if match == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	parts := [3]int{}
	for i := range parts {
		value, err := strconv.Atoi(match[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, raw, err)
		}
		parts[i] = value
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
// Intended for literals in tests and defaults.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 following the lexicographic order of
// (major, minor, patch).
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.String(), "v"+other.String())
}

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// MaxVersion returns the greatest of the given versions. The second result
// is false when versions is empty.
func MaxVersion(versions ...Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}

	highest := versions[0]
	for _, v := range versions[1:] {
		if highest.Less(v) {
			highest = v
		}
	}
	return highest, true
}
