package suggest

import (
	"fmt"
	"strings"
)

// Preferences carries the structured drink preferences submitted by the
// recommendation form.
type Preferences struct {
	BaseSpirit    string   `json:"baseSpirit"`
	Occasion      string   `json:"occasion"`
	Mood          string   `json:"mood"`
	FlavorProfile []string `json:"flavorProfile"`
}

// Sliders holds the three 0-100 flavor axes from the form. 50 is the neutral
// midpoint of each axis.
type Sliders struct {
	SweetBitter     int `json:"sweetBitter"`
	SmoothStrong    int `json:"smoothStrong"`
	RefreshingHeavy int `json:"refreshingHeavy"`
}

// Descriptors maps the analog slider positions to the descriptor strings the
// model is prompted with. Each axis emits exactly one descriptor set: the
// extreme bands (<30, >70) add a secondary descriptor on some axes, the
// 45-55 band yields the axis's balanced descriptor.
func (s Sliders) Descriptors() []string {
	var flavors []string

	switch {
	case s.SweetBitter < 30:
		flavors = append(flavors, "Very Sweet")
	case s.SweetBitter < 45:
		flavors = append(flavors, "Sweet")
	case s.SweetBitter > 70:
		flavors = append(flavors, "Very Bitter")
	case s.SweetBitter > 55:
		flavors = append(flavors, "Bitter")
	default:
		flavors = append(flavors, "Balanced Sweet/Bitter")
	}

	switch {
	case s.SmoothStrong < 30:
		flavors = append(flavors, "Very Smooth", "Easy to Drink")
	case s.SmoothStrong < 45:
		flavors = append(flavors, "Smooth")
	case s.SmoothStrong > 70:
		flavors = append(flavors, "Very Strong", "High Alcohol")
	case s.SmoothStrong > 55:
		flavors = append(flavors, "Strong")
	default:
		flavors = append(flavors, "Standard Strength")
	}

	switch {
	case s.RefreshingHeavy < 30:
		flavors = append(flavors, "Very Refreshing", "Light Body")
	case s.RefreshingHeavy < 45:
		flavors = append(flavors, "Refreshing")
	case s.RefreshingHeavy > 70:
		flavors = append(flavors, "Heavy Body", "Complex", "Creamy/Thick")
	case s.RefreshingHeavy > 55:
		flavors = append(flavors, "Full Body")
	default:
		flavors = append(flavors, "Medium Body")
	}

	return flavors
}

// languageFor resolves a locale code to the language name used in prompts.
// Unknown locales fall back to English.
func languageFor(locale string) string {
	switch locale {
	case "pt":
		return "Portuguese (Brazil)"
	case "es":
		return "Spanish"
	default:
		return "English"
	}
}

// metricLocale reports whether the target language mandates metric units in
// ingredient lists.
func metricLocale(locale string) bool {
	return locale == "pt" || locale == "es"
}

// BuildPrompt composes the recommendation instruction for the model:
// persona framing, the user's preferences, an exclusion clause for
// out-of-stock ingredients, an inclusion request for desired ones, and the
// fixed JSON shape the response must take.
func BuildPrompt(prefs Preferences, locale string, unavailable, desired []string) string {
	language := languageFor(locale)

	var b strings.Builder

	b.WriteString(`Act as "DrinkingMan", a sophisticated, witty, and knowledgeable cocktail expert.` + "\n")
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Base Spirit: %s\n", prefs.BaseSpirit)
	fmt.Fprintf(&b, "- Flavors: %s\n", strings.Join(prefs.FlavorProfile, ", "))
	fmt.Fprintf(&b, "- Occasion: %s\n", prefs.Occasion)
	fmt.Fprintf(&b, "- Mood: %s\n", prefs.Mood)
	fmt.Fprintf(&b, "- Language: %s\n\n", language)

	if len(unavailable) > 0 {
		fmt.Fprintf(&b, "IMPORTANT: You represent a specific BAR. The following ingredients are OUT OF STOCK: %s. "+
			"Do NOT suggest a drink that requires these ingredients. If a requested drink typically needs them, "+
			"suggest a creative substitution or a different drink entirely.\n\n", strings.Join(unavailable, ", "))
	}
	if len(desired) > 0 {
		fmt.Fprintf(&b, "The user SPECIFICALLY wants these ingredients to be included in the cocktail: %s. "+
			"Try to incorporate them.\n\n", strings.Join(desired, ", "))
	}

	b.WriteString("Create a unique cocktail recipe based on these preferences.\n")
	b.WriteString("Return ONLY a JSON object with this structure:\n")
	b.WriteString(`{
  "name": "Cocktail Name (Do NOT use markdown, just the name string)",
  "description": "A sophisticated description of the drink, using the persona of DrinkingMan.",
  "ingredients": ["2 oz Spirit", "1 oz Mixer"],
  "instructions": "Step-by-step mixing instructions.",
  "whyItFits": "Why this drink matches the user's mood and occasion.",
  "history": "A fictional or real historical anecdote about the drink or its ingredients.",
  "funFact": "An interesting fact related to the drink.",
  "visualMatch": "A short search term to find a visual match for this drink (e.g. 'Blue Lagoon cocktail')"
}` + "\n\n")

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- Write the \"description\", \"whyItFits\", \"history\", \"funFact\", and \"instructions\" content strictly in %s.\n", language)
	if metricLocale(locale) {
		b.WriteString("- ALL measurements in \"ingredients\" MUST be in MILLILITERS (ml). Do not use oz.\n")
		b.WriteString("- The \"name\" of the drink can be translated if appropriate, but do NOT add markdown like *bold*.\n")
	}
	fmt.Fprintf(&b, "- The \"ingredients\" list must be in %s.\n", language)
	fmt.Fprintf(&b, "- The \"instructions\" must be in %s.\n\n", language)
	b.WriteString("Do not include markdown formatting code blocks. Just raw JSON.\n")

	return b.String()
}

// BuildEnrichPrompt asks for the signature creative fields of an already
// known cocktail. Ingredients, instructions and visualMatch stay empty since
// the catalog already carries them.
func BuildEnrichPrompt(name string, ingredients []string, locale string) string {
	language := languageFor(locale)

	var b strings.Builder
	b.WriteString("You are DrinkingMan, the sophisticated robot butler mixologist.\n\n")
	fmt.Fprintf(&b, "I need you to provide your signature entertaining details for the cocktail: %q (Ingredients: %s).\n\n",
		name, strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Respond strictly in %s.\n\n", language)
	b.WriteString("Respond in JSON format with the following structure (keys must stay in English, values in the target language):\n")
	fmt.Fprintf(&b, `{
  "name": %q,
  "description": "A sensory, inviting description of the taste and experience.",
  "ingredients": [],
  "instructions": "",
  "whyItFits": "Explain why this drink is a classic or a great choice in general.",
  "funFact": "An interesting historical fact or trivia about this specific cocktail.",
  "history": "The origin story of this cocktail.",
  "visualMatch": ""
}`+"\n\n", name)
	b.WriteString("Note: Leave ingredients, instructions, and visualMatch as empty/default strings since we already have them. ")
	b.WriteString("Focus on the creative fields: description, whyItFits, funFact, history.\n\n")
	b.WriteString("Do not include markdown formatting. Just raw JSON.\n")
	return b.String()
}

// BuildMoreInfoPrompt asks for extended detail on a known cocktail: history,
// trivia, food pairings, serving tips and similar drinks.
func BuildMoreInfoPrompt(name string, ingredients []string, locale string) string {
	language := languageFor(locale)

	var b strings.Builder
	b.WriteString("You are DrinkingMan, a sophisticated cocktail expert.\n\n")
	fmt.Fprintf(&b, "I need detailed, extra information for the cocktail %q (Ingredients: %s).\n\n",
		name, strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Respond strictly in %s.\n\n", language)
	b.WriteString(`Return ONLY a JSON object with this structure:
{
  "history": "A detailed and engaging history of the drink (approx 3-4 sentences).",
  "funFact": "A surprising trivia fact different from the usual ones.",
  "foodPairings": ["Dish 1", "Dish 2", "Dish 3"],
  "servingTips": "Expert advice on how to serve or garnish it perfectly.",
  "similarDrinks": ["Drink 1", "Drink 2", "Drink 3"]
}` + "\n\n")
	b.WriteString("Do NOT use markdown. Just raw JSON.\n")
	return b.String()
}
