package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Alcoholic classification values as they appear in the source dataset.
const (
	Alcoholic       = "Alcoholic"
	NonAlcoholic    = "Non alcoholic"
	OptionalAlcohol = "Optional alcohol"
)

// maxSlots is the number of ingredient slots carried by the source dataset.
const maxSlots = 15

// Ingredient is one (name, measure) pair of a cocktail recipe.
// MeasureML carries the metric rendering used for pt/es locales when the
// dataset has been normalized; it is empty otherwise.
type Ingredient struct {
	Name      string `json:"name"`
	Measure   string `json:"measure,omitempty"`
	MeasureML string `json:"measureML,omitempty"`
}

// Cocktail is an immutable catalog entry. Ingredients holds only the
// non-empty slots of the source record, in slot order.
type Cocktail struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Alcoholic    string       `json:"alcoholic"`
	Glass        string       `json:"glass"`
	Instructions string       `json:"instructions"`
	Thumb        string       `json:"thumb,omitempty"`
	Tags         string       `json:"tags,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`

	// IngredientsList is the pre-flattened ingredient string some records
	// carry after enrichment. The filter engine falls back to it for
	// substring matching.
	IngredientsList string `json:"ingredientsList,omitempty"`

	// Enrichment fields, keyed by locale ("en", "pt", "es"). Populated by
	// the offline enrichment batch; empty maps on a fresh dataset.
	History map[string]string `json:"history,omitempty"`
	FunFact map[string]string `json:"funFact,omitempty"`
}

// Store is the read-once, in-memory cocktail catalog. It is immutable after
// Load and therefore safe for concurrent readers.
type Store struct {
	cocktails   []Cocktail
	once        sync.Once
	ingredients []string // distinct ingredient names, sorted; built lazily by Ingredients
}

// rawCocktail mirrors the source dataset's flat record with numbered
// ingredient/measure fields. The numbered convention is a serialization
// artifact and is folded into the ordered Ingredients list at load time.
type rawCocktail struct {
	IDDrink         string            `json:"idDrink"`
	StrDrink        string            `json:"strDrink"`
	StrCategory     string            `json:"strCategory"`
	StrAlcoholic    string            `json:"strAlcoholic"`
	StrGlass        string            `json:"strGlass"`
	StrInstructions string            `json:"strInstructions"`
	StrDrinkThumb   string            `json:"strDrinkThumb"`
	StrTags         string            `json:"strTags"`
	IngredientsList string            `json:"ingredientsList"`
	HistoryEN       string            `json:"strHistoryEN"`
	HistoryPT       string            `json:"strHistoryPT"`
	HistoryES       string            `json:"strHistoryES"`
	FunFactEN       string            `json:"strFunFactEN"`
	FunFactPT       string            `json:"strFunFactPT"`
	FunFactES       string            `json:"strFunFactES"`
	Extra           map[string]string `json:"-"`
}

// UnmarshalJSON decodes a raw record, keeping the numbered slot fields in
// Extra so they can be folded without declaring forty-five struct fields.
func (r *rawCocktail) UnmarshalJSON(data []byte) error {
	type alias rawCocktail
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	a.Extra = make(map[string]string)
	for k, v := range fields {
		if !strings.HasPrefix(k, "strIngredient") && !strings.HasPrefix(k, "strMeasure") {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue // null slot
		}
		a.Extra[k] = s
	}

	*r = rawCocktail(a)
	return nil
}

// cocktail folds the numbered slot fields into the ordered ingredient list,
// dropping absent and blank slots.
func (r *rawCocktail) cocktail() Cocktail {
	c := Cocktail{
		ID:              r.IDDrink,
		Name:            r.StrDrink,
		Category:        r.StrCategory,
		Alcoholic:       r.StrAlcoholic,
		Glass:           r.StrGlass,
		Instructions:    r.StrInstructions,
		Thumb:           r.StrDrinkThumb,
		Tags:            r.StrTags,
		IngredientsList: r.IngredientsList,
	}

	for i := 1; i <= maxSlots; i++ {
		name := strings.TrimSpace(r.Extra[fmt.Sprintf("strIngredient%d", i)])
		if name == "" {
			continue
		}
		c.Ingredients = append(c.Ingredients, Ingredient{
			Name:      name,
			Measure:   strings.TrimSpace(r.Extra[fmt.Sprintf("strMeasure%d", i)]),
			MeasureML: strings.TrimSpace(r.Extra[fmt.Sprintf("strMeasureML%d", i)]),
		})
	}

	c.History = localized(r.HistoryEN, r.HistoryPT, r.HistoryES)
	c.FunFact = localized(r.FunFactEN, r.FunFactPT, r.FunFactES)
	return c
}

func localized(en, pt, es string) map[string]string {
	if en == "" && pt == "" && es == "" {
		return nil
	}
	m := make(map[string]string, 3)
	if en != "" {
		m["en"] = en
	}
	if pt != "" {
		m["pt"] = pt
	}
	if es != "" {
		m["es"] = es
	}
	return m
}

// Load reads a catalog document from r. The document must be a JSON array of
// cocktail records in the source dataset's flat format.
func Load(r io.Reader) (*Store, error) {
	var raw []rawCocktail
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	cocktails := make([]Cocktail, 0, len(raw))
	for i := range raw {
		cocktails = append(cocktails, raw[i].cocktail())
	}

	return &Store{cocktails: cocktails}, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// New builds a store from already-decoded cocktails. Intended for tests and
// for callers that assemble records programmatically.
func New(cocktails []Cocktail) *Store {
	return &Store{cocktails: cocktails}
}

// All returns the full catalog in source order. The returned slice is shared;
// callers must not modify it.
func (s *Store) All() []Cocktail {
	return s.cocktails
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	return len(s.cocktails)
}

// ByID returns the cocktail with the given drink identifier, or nil.
func (s *Store) ByID(id string) *Cocktail {
	for i := range s.cocktails {
		if s.cocktails[i].ID == id {
			return &s.cocktails[i]
		}
	}
	return nil
}
