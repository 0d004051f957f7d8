package catalog

import (
	"sort"
	"strings"
)

// Ingredients returns the distinct ingredient names referenced anywhere in
// the catalog, trimmed and lexicographically sorted. De-duplication is
// case-insensitive with first-seen casing kept; the source data mixes
// casings for the same ingredient and only one spelling should surface in
// filter suggestions.
//
// The catalog is immutable, so the result is computed once and memoized.
func (s *Store) Ingredients() []string {
	s.once.Do(func() {
		seen := make(map[string]string)
		for _, c := range s.cocktails {
			for _, ing := range c.Ingredients {
				name := strings.TrimSpace(ing.Name)
				if name == "" {
					continue
				}
				key := strings.ToLower(name)
				if _, ok := seen[key]; !ok {
					seen[key] = name
				}
			}
		}

		names := make([]string, 0, len(seen))
		for _, name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		s.ingredients = names
	})
	return s.ingredients
}
