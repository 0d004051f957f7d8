// Package suggest builds cocktail recommendation prompts for a generative
// model and defensively parses its answers.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMissingField is returned when a required preference field is empty.
// Validation happens before any model call; no partial submissions.
var ErrMissingField = errors.New("missing required preference field")

// DefaultTimeout bounds a single model call. The form is interactive; a
// hanging call must resolve into a retriable error instead of spinning the
// loading indicator forever.
const DefaultTimeout = 45 * time.Second

// Service answers recommendation requests through a Provider.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// NewService creates a recommendation service. A non-positive timeout falls
// back to DefaultTimeout.
func NewService(provider Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{provider: provider, timeout: timeout}
}

// Validate checks that the required preference fields are present.
func (p Preferences) Validate() error {
	switch {
	case p.BaseSpirit == "":
		return fmt.Errorf("%w: baseSpirit", ErrMissingField)
	case p.Occasion == "":
		return fmt.Errorf("%w: occasion", ErrMissingField)
	case p.Mood == "":
		return fmt.Errorf("%w: mood", ErrMissingField)
	}
	return nil
}

// Ask requests a recommendation for the given preferences. Unavailable
// ingredients are excluded from suggestions, desired ones requested for
// inclusion. Model and parse failures come back as recoverable errors.
func (s *Service) Ask(ctx context.Context, prefs Preferences, locale string, unavailable, desired []string) (*Recommendation, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := BuildPrompt(prefs, locale, unavailable, desired)
	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("asking model: %w", err)
	}

	return ParseRecommendation(text)
}

// AskStreaming behaves like Ask but forwards raw model output chunks to
// onChunk as they arrive, then returns the parsed recommendation.
func (s *Service) AskStreaming(ctx context.Context, prefs Preferences, locale string, unavailable, desired []string, onChunk func(string) error) (*Recommendation, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := BuildPrompt(prefs, locale, unavailable, desired)
	text, err := s.provider.StreamComplete(ctx, prompt, onChunk)
	if err != nil {
		return nil, fmt.Errorf("asking model: %w", err)
	}

	return ParseRecommendation(text)
}

// Enrich requests the signature creative fields (description, history, fun
// fact, why-it-fits) for a cocktail the catalog already knows.
func (s *Service) Enrich(ctx context.Context, name string, ingredients []string, locale string) (*Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Complete(ctx, BuildEnrichPrompt(name, ingredients, locale))
	if err != nil {
		return nil, fmt.Errorf("asking model: %w", err)
	}
	return ParseRecommendation(text)
}

// MoreInfo requests extended detail (pairings, serving tips, similar drinks)
// for a known cocktail.
func (s *Service) MoreInfo(ctx context.Context, name string, ingredients []string, locale string) (*MoreInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Complete(ctx, BuildMoreInfoPrompt(name, ingredients, locale))
	if err != nil {
		return nil, fmt.Errorf("asking model: %w", err)
	}
	return ParseMoreInfo(text)
}

// IsParseFailure reports whether err is one of the tolerant parser's typed
// failures, as opposed to a transport or validation error.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrNoJSON) || errors.Is(err, ErrBadJSON)
}
