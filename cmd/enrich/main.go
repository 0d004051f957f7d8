// Command enrich batch-populates the catalog's history and fun-fact fields
// through the recommendation model. It rewrites the catalog JSON in place,
// skips already-enriched records so interrupted runs can resume, and paces
// calls to stay inside model rate limits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"drinkingman/internal/suggest"
)

var (
	catalogPath = flag.String("catalog", "data/cocktails.json", "Path to the catalog JSON document")
	limit       = flag.Int("limit", 0, "Maximum records to enrich this run (0 = all)")
	pause       = flag.Duration("pause", 2*time.Second, "Pause between model calls")
)

// Locale suffixes of the enrichment fields written back to the dataset.
var locales = map[string]string{
	"en": "EN",
	"pt": "PT",
	"es": "ES",
}

func main() {
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	provider, err := suggest.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize model provider: %v", err)
	}
	svc := suggest.NewService(provider, 0)

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	// Decode into raw maps so fields this tool does not know about survive
	// the round trip.
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	enriched := 0
	for i, rec := range records {
		if *limit > 0 && enriched >= *limit {
			break
		}
		name, _ := rec["strDrink"].(string)
		if name == "" || isEnriched(rec) {
			continue
		}

		log.Printf("[%d/%d] Enriching %q", i+1, len(records), name)
		if err := enrichRecord(ctx, svc, rec, name); err != nil {
			log.Printf("Skipping %q: %v", name, err)
			continue
		}
		enriched++
		time.Sleep(*pause)
	}

	if enriched == 0 {
		log.Println("Nothing to enrich")
		return
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}
	if err := os.WriteFile(*catalogPath, out, 0o644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}
	log.Printf("Enriched %d records", enriched)
}

// isEnriched reports whether a record already carries every locale's
// history field.
func isEnriched(rec map[string]any) bool {
	for _, suffix := range locales {
		s, _ := rec["strHistory"+suffix].(string)
		if s == "" {
			return false
		}
	}
	return true
}

func enrichRecord(ctx context.Context, svc *suggest.Service, rec map[string]any, name string) error {
	ingredients := slotIngredients(rec)

	for locale, suffix := range locales {
		if s, _ := rec["strHistory"+suffix].(string); s != "" {
			continue
		}

		details, err := svc.Enrich(ctx, name, ingredients, locale)
		if err != nil {
			return fmt.Errorf("enriching for %s: %w", locale, err)
		}

		rec["strHistory"+suffix] = details.History
		rec["strFunFact"+suffix] = details.FunFact
		if locale != "en" && details.Description != "" {
			rec["description"+suffix] = details.Description
		}
	}

	// Maintain the flattened list used by the ingredient filter.
	if s, _ := rec["ingredientsList"].(string); s == "" && len(ingredients) > 0 {
		rec["ingredientsList"] = strings.Join(ingredients, ", ")
	}
	return nil
}

// slotIngredients collects the record's non-empty numbered ingredient slots.
func slotIngredients(rec map[string]any) []string {
	var out []string
	for i := 1; i <= 15; i++ {
		s, _ := rec[fmt.Sprintf("strIngredient%d", i)].(string)
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
