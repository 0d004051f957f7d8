package catalog

import "strings"

// StockItem is one named thing a user records as available in a bar.
// Only the "ingredient" and "drink" categories count toward a recipe; food
// never satisfies a requirement.
type StockItem struct {
	Name     string
	Category string
}

// Stock item categories.
const (
	ItemIngredient = "ingredient"
	ItemFood       = "food"
	ItemDrink      = "drink"
)

// FindAvailable returns the cocktails whose every required ingredient is
// present in the given inventory, compared case-insensitively. Matching is
// all-or-nothing: there is no partial-match scoring. A cocktail with no
// ingredients at all always matches. Results keep catalog order.
func (s *Store) FindAvailable(inventory []StockItem) []Cocktail {
	have := make(map[string]struct{}, len(inventory))
	for _, item := range inventory {
		if item.Category != ItemIngredient && item.Category != ItemDrink {
			continue
		}
		have[strings.ToLower(item.Name)] = struct{}{}
	}

	var matches []Cocktail
	for _, c := range s.cocktails {
		satisfied := true
		for _, ing := range c.Ingredients {
			if _, ok := have[strings.ToLower(ing.Name)]; !ok {
				satisfied = false
				break
			}
		}
		if satisfied {
			matches = append(matches, c)
		}
	}
	return matches
}
