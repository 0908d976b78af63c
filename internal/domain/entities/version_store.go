package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// assignmentPattern recognizes `val <name> = "<version>"`, optionally with
// `const`, surrounding whitespace and a trailing line comment. Submatches:
// 1 prefix up to the name, 2 name, 3 text up to the opening quote,
// 4 version literal, 5 closing quote and the rest of the line.
var assignmentPattern = regexp.MustCompile(
	`^(\s*(?:const\s+)?val\s+)([A-Za-z_][A-Za-z0-9_]*)(\s*=\s*")([^"]*)("\s*(?://.*)?)$`,
)

const lineSeparator = "\n"

type versionEntry struct {
	line    int
	name    string
	version Version
}

// VersionStore is an immutable snapshot of a library's version file.
// Lines that do not match the assignment grammar are kept verbatim.
type VersionStore struct {
	owner   string
	lines   []string
	entries []versionEntry
}

// ParseVersionStore builds a snapshot of content for the library named owner.
func ParseVersionStore(owner, content string) *VersionStore {
	lines := strings.Split(content, lineSeparator)
	entries := make([]versionEntry, 0, len(lines))
	for i, line := range lines {
		name, version, ok := parseAssignment(line)
		if !ok {
			continue
		}
		entries = append(entries, versionEntry{line: i, name: name, version: version})
	}
	return &VersionStore{owner: owner, lines: lines, entries: entries}
}

// FormatAssignment serializes a single version assignment line.
func FormatAssignment(name string, version Version) string {
	return fmt.Sprintf(`val %s = "%s"`, name, version)
}

// parseAssignment returns the name and version of a recognized line. Lines
// with malformed versions such as "1.0" or "1.0.0-rc" are not recognized.
func parseAssignment(line string) (string, Version, bool) {
	match := assignmentPattern.FindStringSubmatch(line)
	if match == nil {
		return "", Version{}, false
	}
	version, err := ParseVersion(match[4])
	if err != nil {
		return "", Version{}, false
	}
	return match[2], version, true
}

// Owner returns the name of the library this store belongs to.
func (s *VersionStore) Owner() string { return s.owner }

// VersionOf returns the version assigned to name by the first matching line.
func (s *VersionStore) VersionOf(name string) (Version, bool) {
	for _, entry := range s.entries {
		if entry.name == name {
			return entry.version, true
		}
	}
	return Version{}, false
}

// OwnVersion returns the owner's version or ErrMissingVersion.
func (s *VersionStore) OwnVersion() (Version, error) {
	version, ok := s.VersionOf(s.owner)
	if !ok {
		return Version{}, fmt.Errorf("%w: no entry for %q", ErrMissingVersion, s.owner)
	}
	return version, nil
}

// DeclaredDependencyVersions returns every parsed entry except the owner's.
func (s *VersionStore) DeclaredDependencyVersions() map[string]Version {
	versions := make(map[string]Version, len(s.entries))
	for _, entry := range s.entries {
		if entry.name == s.owner {
			continue
		}
		if _, seen := versions[entry.name]; seen {
			continue
		}
		versions[entry.name] = entry.version
	}
	return versions
}

// LaggingNames reports every name with at least one entry below target,
// duplicates included.
func (s *VersionStore) LaggingNames(target Version) map[string]bool {
	lagging := make(map[string]bool)
	for _, entry := range s.entries {
		if entry.version.Less(target) {
			lagging[entry.name] = true
		}
	}
	return lagging
}

// Rewrite returns a new snapshot where every recognized line whose name is a
// key of targets and whose version is below the target carries the target
// version. Lines at or above their target are left untouched, so a rewrite
// never lowers a version. Only the version literal changes; all other bytes
// are preserved. The second result is false when no line changed, in which
// case the receiver is returned unchanged.
func (s *VersionStore) Rewrite(targets map[string]Version) (*VersionStore, bool) {
	if len(targets) == 0 {
		return s, false
	}

	lines := make([]string, len(s.lines))
	copy(lines, s.lines)
	entries := make([]versionEntry, len(s.entries))
	copy(entries, s.entries)

	matched := false
	for i, entry := range entries {
		target, ok := targets[entry.name]
		if !ok || !entry.version.Less(target) {
			continue
		}
		matched = true
		lines[entry.line] = replaceVersionLiteral(lines[entry.line], target)
		entries[i].version = target
	}

	if !matched {
		return s, false
	}
	return &VersionStore{owner: s.owner, lines: lines, entries: entries}, true
}

// Content serializes the snapshot back to text.
func (s *VersionStore) Content() string {
	return strings.Join(s.lines, lineSeparator)
}

func replaceVersionLiteral(line string, version Version) string {
	loc := assignmentPattern.FindStringSubmatchIndex(line)
	// group 4 spans the version literal
	start, end := loc[8], loc[9]
	return line[:start] + version.String() + line[end:]
}
