package entities

import "sort"

// OrderLibraries returns libraries, together with every dependency reachable
// from them, in an order where each library comes strictly after all of its
// transitive dependencies. Libraries without a mutual dependency keep the
// order in which they were discovered.
//
// A *CyclicDependencyError is returned when no library of the remaining set
// can ever become eligible.
func OrderLibraries(libraries Libraries) (Libraries, error) {
	closure := dependencyClosure(libraries)

	pending := make(map[string]int, len(closure))
	dependents := make(map[string][]*Library, len(closure))
	for _, lib := range closure {
		seen := make(map[string]bool, len(lib.Dependencies))
		for _, dep := range lib.Dependencies {
			if seen[dep.Name] {
				continue
			}
			seen[dep.Name] = true
			pending[lib.Name]++
			dependents[dep.Name] = append(dependents[dep.Name], lib)
		}
	}

	queue := make([]*Library, 0, len(closure))
	for _, lib := range closure {
		if pending[lib.Name] == 0 {
			queue = append(queue, lib)
		}
	}

	ordered := make(Libraries, 0, len(closure))
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		ordered = append(ordered, next)

		for _, dependent := range dependents[next.Name] {
			pending[dependent.Name]--
			if pending[dependent.Name] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(ordered) < len(closure) {
		stuck := make([]string, 0, len(closure)-len(ordered))
		for _, lib := range closure {
			if pending[lib.Name] > 0 {
				stuck = append(stuck, lib.Name)
			}
		}
		sort.Strings(stuck)
		return nil, &CyclicDependencyError{Libraries: stuck}
	}

	return ordered, nil
}

// dependencyClosure expands libraries with every reachable dependency,
// deduplicated by name, breadth first.
func dependencyClosure(libraries Libraries) Libraries {
	closure := make(Libraries, 0, len(libraries))
	seen := make(map[string]bool, len(libraries))

	queue := make([]*Library, 0, len(libraries))
	queue = append(queue, libraries...)
	for len(queue) > 0 {
		lib := queue[0]
		queue = queue[1:]
		if seen[lib.Name] {
			continue
		}
		seen[lib.Name] = true
		closure = append(closure, lib)
		queue = append(queue, lib.Dependencies...)
	}
	return closure
}
