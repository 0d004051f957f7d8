package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Parse failures. Both mean "assistant unavailable" to callers: the user may
// retry the request, nothing crashes.
var (
	// ErrNoJSON means the model output contained no JSON-like span at all.
	ErrNoJSON = errors.New("no JSON object found in model output")
	// ErrBadJSON means a JSON-like span was found but did not parse, even
	// after cleanup of the recognized malformations.
	ErrBadJSON = errors.New("model output is not valid JSON")
)

// Recommendation is the fixed-shape suggestion the model is asked to return.
type Recommendation struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	WhyItFits    string   `json:"whyItFits"`
	History      string   `json:"history,omitempty"`
	FunFact      string   `json:"funFact,omitempty"`
	VisualMatch  string   `json:"visualMatch,omitempty"`
}

// MoreInfo is the extended-detail payload for an already known cocktail.
type MoreInfo struct {
	History       string   `json:"history"`
	FunFact       string   `json:"funFact"`
	FoodPairings  []string `json:"foodPairings"`
	ServingTips   string   `json:"servingTips"`
	SimilarDrinks []string `json:"similarDrinks"`
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// extractJSON pulls the JSON object out of arbitrary model output. It
// tolerates exactly two malformations seen in the wild: markdown code-fence
// wrapping and leading/trailing prose around the object. Anything without a
// brace-delimited span fails with ErrNoJSON.
func extractJSON(text string) (string, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// parseTolerant unmarshals a JSON span into v, retrying once after removing
// trailing commas before closing braces/brackets. No further repair is
// attempted; anything else fails with ErrBadJSON.
func parseTolerant(span string, v any) error {
	if err := json.Unmarshal([]byte(span), v); err == nil {
		return nil
	}

	cleaned := trailingComma.ReplaceAllString(span, "$1")
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return nil
}

// ParseRecommendation turns raw model output into a Recommendation. On any
// failure it returns one of the typed parse errors; it never panics.
func ParseRecommendation(text string) (*Recommendation, error) {
	span, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var rec Recommendation
	if err := parseTolerant(span, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ParseMoreInfo turns raw model output into a MoreInfo payload with the same
// tolerance as ParseRecommendation.
func ParseMoreInfo(text string) (*MoreInfo, error) {
	span, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var info MoreInfo
	if err := parseTolerant(span, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
