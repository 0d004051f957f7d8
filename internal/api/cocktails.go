package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"drinkingman/internal/catalog"
	"drinkingman/internal/models"
	"drinkingman/internal/suggest"
)

// ListCocktails handles GET /api/cocktails. Filters arrive as query
// parameters: search, category, alcoholic and any number of ingredient
// values. Results are paginated at the fixed page size with the page number
// clamped into range.
func (s *Server) ListCocktails(c *gin.Context) {
	var filters []catalog.Filter
	if v := c.Query("category"); v != "" {
		filters = append(filters, catalog.Filter{Type: catalog.FilterCategory, Value: v})
	}
	if v := c.Query("alcoholic"); v != "" {
		filters = append(filters, catalog.Filter{Type: catalog.FilterAlcoholic, Value: v})
	}
	for _, v := range c.QueryArray("ingredient") {
		if v != "" {
			filters = append(filters, catalog.Filter{Type: catalog.FilterIngredient, Value: v})
		}
	}

	results := s.Catalog.Apply(filters, c.Query("search"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	totalPages := catalog.TotalPages(len(results))
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	c.JSON(http.StatusOK, gin.H{
		"cocktails":  catalog.Page(results, page),
		"total":      len(results),
		"page":       page,
		"totalPages": totalPages,
		"pageSize":   catalog.PageSize,
	})
}

// GetCocktail handles GET /api/cocktails/:id.
func (s *Server) GetCocktail(c *gin.Context) {
	cocktail := s.Catalog.ByID(c.Param("id"))
	if cocktail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cocktail not found"})
		return
	}
	c.JSON(http.StatusOK, cocktail)
}

// CocktailMoreInfo handles GET /api/cocktails/:id/more?locale=. It asks the
// model for extended detail on a known cocktail: history, trivia, pairings,
// serving tips, similar drinks.
func (s *Server) CocktailMoreInfo(c *gin.Context) {
	if s.Suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not configured"})
		return
	}

	cocktail := s.Catalog.ByID(c.Param("id"))
	if cocktail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cocktail not found"})
		return
	}

	locale := c.DefaultQuery("locale", "en")
	ingredients := make([]string, 0, len(cocktail.Ingredients))
	for _, ing := range cocktail.Ingredients {
		ingredients = append(ingredients, ing.Name)
	}

	start := time.Now()
	info, err := s.Suggester.MoreInfo(c.Request.Context(), cocktail.Name, ingredients, locale)
	if err != nil {
		if suggest.IsParseFailure(err) && s.Metrics != nil {
			s.Metrics.ObserveParseFailure()
		}
		s.observeSuggestion(start, "error")
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable", "retry": true})
		return
	}

	s.observeSuggestion(start, "ok")
	c.JSON(http.StatusOK, info)
}

// ListIngredients handles GET /api/ingredients, returning the known
// ingredients ordered by name. The database is the source of truth once
// seeded; the catalog extractor is the fallback for an empty table.
func (s *Server) ListIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := s.DB.Order("name asc").Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(ingredients) == 0 {
		for _, name := range s.Catalog.Ingredients() {
			ingredients = append(ingredients, models.Ingredient{Name: name, Type: models.CategoryIngredient})
		}
	}

	c.JSON(http.StatusOK, ingredients)
}
