package entities

import (
	"errors"
	"fmt"
	"sort"
)

// VersionUpdate is the replacement map for one library's version store.
type VersionUpdate struct {
	Library string
	From    Version
	Targets map[string]Version
}

// SortedTargetNames returns the names in Targets in lexical order.
func (u VersionUpdate) SortedTargetNames() []string {
	names := make([]string, 0, len(u.Targets))
	for name := range u.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TargetVersion returns the highest own version among the given stores.
func TargetVersion(stores []*VersionStore) (Version, error) {
	if len(stores) == 0 {
		return Version{}, errors.New("cannot compute a target version without libraries")
	}

	versions := make([]Version, 0, len(stores))
	for _, store := range stores {
		own, err := store.OwnVersion()
		if err != nil {
			return Version{}, fmt.Errorf("library %q: %w", store.Owner(), err)
		}
		versions = append(versions, own)
	}

	target, _ := MaxVersion(versions...)
	return target, nil
}

// UpdatesNeeded returns, in store order, one update per library whose own
// version or any declared version is below target. Every entry is checked,
// so a lagging duplicate assignment is not hidden by an earlier one. Each
// update maps every lagging name to target; names whose entries are all at or
// above target are never included.
func UpdatesNeeded(stores []*VersionStore, target Version) ([]VersionUpdate, error) {
	updates := make([]VersionUpdate, 0, len(stores))
	for _, store := range stores {
		own, err := store.OwnVersion()
		if err != nil {
			return nil, fmt.Errorf("library %q: %w", store.Owner(), err)
		}

		lagging := store.LaggingNames(target)
		if len(lagging) == 0 {
			continue
		}
		targets := make(map[string]Version, len(lagging))
		for name := range lagging {
			targets[name] = target
		}

		updates = append(updates, VersionUpdate{
			Library: store.Owner(),
			From:    own,
			Targets: targets,
		})
	}
	return updates, nil
}
