package catalog

import "strings"

// FilterType identifies what a filter constrains.
type FilterType string

const (
	FilterCategory   FilterType = "category"
	FilterAlcoholic  FilterType = "alcoholic"
	FilterIngredient FilterType = "ingredient"
)

// PageSize is the fixed number of cocktails per result page.
const PageSize = 12

// Filter is a single (type, value) constraint on the catalog.
type Filter struct {
	Type  FilterType `json:"type"`
	Value string     `json:"value"`
}

// FilterSet holds the active filters with the selection semantics of the
// search UI: category and alcoholic are singletons (setting a new value
// replaces the old one), ingredient filters accumulate as a set and are
// ANDed together.
type FilterSet struct {
	filters []Filter
}

// Add activates a filter. For category and alcoholic types any previously
// active filter of the same type is replaced; duplicate ingredient filters
// are ignored.
func (fs *FilterSet) Add(t FilterType, value string) {
	if t == FilterCategory || t == FilterAlcoholic {
		kept := fs.filters[:0]
		for _, f := range fs.filters {
			if f.Type != t {
				kept = append(kept, f)
			}
		}
		fs.filters = append(kept, Filter{Type: t, Value: value})
		return
	}

	for _, f := range fs.filters {
		if f.Type == t && f.Value == value {
			return
		}
	}
	fs.filters = append(fs.filters, Filter{Type: t, Value: value})
}

// Remove deactivates filters. With a value it removes that exact filter;
// with an empty value it removes every filter of the given type.
func (fs *FilterSet) Remove(t FilterType, value string) {
	kept := fs.filters[:0]
	for _, f := range fs.filters {
		if f.Type == t && (value == "" || f.Value == value) {
			continue
		}
		kept = append(kept, f)
	}
	fs.filters = kept
}

// Clear deactivates all filters.
func (fs *FilterSet) Clear() {
	fs.filters = nil
}

// Active returns the currently active filters.
func (fs *FilterSet) Active() []Filter {
	return fs.filters
}

// Apply narrows the catalog to the cocktails satisfying every active filter
// and, if search is non-blank, whose name contains it case-insensitively.
// With no filters and no search text it returns the full catalog in source
// order. The result order always follows catalog order; nothing is sorted.
func (s *Store) Apply(filters []Filter, search string) []Cocktail {
	results := s.cocktails

	if q := strings.TrimSpace(search); q != "" {
		q = strings.ToLower(q)
		matched := make([]Cocktail, 0, len(results))
		for _, c := range results {
			if strings.Contains(strings.ToLower(c.Name), q) {
				matched = append(matched, c)
			}
		}
		results = matched
	}

	for _, f := range filters {
		matched := make([]Cocktail, 0, len(results))
		for _, c := range results {
			if matchesFilter(c, f) {
				matched = append(matched, c)
			}
		}
		results = matched
	}

	return results
}

func matchesFilter(c Cocktail, f Filter) bool {
	switch f.Type {
	case FilterCategory:
		// Exact match against the dataset's canonical casing.
		return c.Category == f.Value
	case FilterAlcoholic:
		return c.Alcoholic == f.Value
	case FilterIngredient:
		want := strings.ToLower(f.Value)
		if c.IngredientsList != "" && strings.Contains(strings.ToLower(c.IngredientsList), want) {
			return true
		}
		for _, ing := range c.Ingredients {
			if strings.ToLower(ing.Name) == want {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Page returns the 1-indexed page of results at the fixed page size. Pages
// past the end yield an empty slice; clamping to the valid range is the
// caller's concern.
func Page(results []Cocktail, page int) []Cocktail {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(results) {
		return nil
	}
	end := start + PageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// TotalPages returns the number of pages the results span.
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}
