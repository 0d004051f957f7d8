package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecommendationCleanJSON(t *testing.T) {
	rec, err := ParseRecommendation(`{
		"name": "Amber Hour",
		"description": "A slow-burning classic.",
		"ingredients": ["50 ml Bourbon", "10 ml Honey syrup"],
		"instructions": "Stir over ice.",
		"whyItFits": "Matches a contemplative mood."
	}`)
	require.NoError(t, err)
	assert.Equal(t, "Amber Hour", rec.Name)
	assert.Len(t, rec.Ingredients, 2)
}

func TestParseRecommendationFencedWithTrailingComma(t *testing.T) {
	raw := "```json\n{\"name\":\"Test\",\"description\":\"d\",\"ingredients\":[\"1 oz Gin\",],\"instructions\":\"i\",\"whyItFits\":\"w\",}\n```"

	rec, err := ParseRecommendation(raw)
	require.NoError(t, err)
	assert.Equal(t, "Test", rec.Name)
	assert.Equal(t, []string{"1 oz Gin"}, rec.Ingredients)
}

func TestParseRecommendationSurroundingProse(t *testing.T) {
	raw := "Certainly! Here is your drink:\n{\"name\":\"Wrapped\",\"description\":\"\",\"ingredients\":[],\"instructions\":\"\",\"whyItFits\":\"\"}\nEnjoy responsibly."

	rec, err := ParseRecommendation(raw)
	require.NoError(t, err)
	assert.Equal(t, "Wrapped", rec.Name)
}

func TestParseRecommendationNoJSON(t *testing.T) {
	rec, err := ParseRecommendation("I am sorry, I cannot mix drinks today.")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestParseRecommendationUnrepairableJSON(t *testing.T) {
	// Unquoted keys are not one of the recognized malformations.
	rec, err := ParseRecommendation("{name: Margarita}")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrBadJSON)
}

func TestParseRecommendationEmptyInput(t *testing.T) {
	_, err := ParseRecommendation("")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestParseMoreInfo(t *testing.T) {
	info, err := ParseMoreInfo("```json\n" + `{
		"history": "Born in Havana.",
		"funFact": "Named after a beach.",
		"foodPairings": ["Ceviche", "Tostones"],
		"servingTips": "Serve very cold.",
		"similarDrinks": ["Mojito", "Caipirinha"],
	}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Born in Havana.", info.History)
	assert.Len(t, info.FoodPairings, 2)
	assert.Len(t, info.SimilarDrinks, 2)
}

func TestIsParseFailure(t *testing.T) {
	_, errNo := ParseRecommendation("prose only")
	_, errBad := ParseRecommendation("{name: broken}")

	assert.True(t, IsParseFailure(errNo))
	assert.True(t, IsParseFailure(errBad))
	assert.False(t, IsParseFailure(ErrMissingField))
	assert.False(t, IsParseFailure(nil))
}
