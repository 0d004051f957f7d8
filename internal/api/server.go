// Package api exposes the cocktail catalog, bar inventories and the
// recommendation service over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"drinkingman/internal/auth"
	"drinkingman/internal/catalog"
	"drinkingman/internal/monitoring"
	"drinkingman/internal/suggest"
)

// Server represents the main API handler for the service.
type Server struct {
	Router    *gin.Engine
	Catalog   *catalog.Store
	DB        *gorm.DB
	Suggester *suggest.Service
	Metrics   *monitoring.Metrics
	JWTSecret string
}

// NewServer creates a new API server instance. Suggester may be nil when no
// model key is configured; the suggestion endpoints then answer 503.
func NewServer(store *catalog.Store, db *gorm.DB, suggester *suggest.Service, metrics *monitoring.Metrics, jwtSecret string) *Server {
	router := gin.Default()

	s := &Server{
		Router:    router,
		Catalog:   store,
		DB:        db,
		Suggester: suggester,
		Metrics:   metrics,
		JWTSecret: jwtSecret,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	if s.Metrics != nil {
		s.Router.Use(s.observeRequests())
	}

	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cocktails": s.Catalog.Len()})
	})

	api := s.Router.Group("/api")
	{
		// Authentication
		api.POST("/auth/register", s.Register)
		api.POST("/auth/login", s.Login)

		// Catalog
		api.GET("/cocktails", s.ListCocktails)
		api.GET("/cocktails/:id", s.GetCocktail)
		api.GET("/cocktails/:id/more", s.CocktailMoreInfo)
		api.GET("/ingredients", s.ListIngredients)

		// Recommendation
		api.POST("/suggest", s.Suggest)

		// Bars (authenticated)
		bars := api.Group("/bars", s.requireAuth())
		{
			bars.GET("", s.ListBars)
			bars.POST("", s.CreateBar)
			bars.GET("/:id", s.GetBar)
			bars.DELETE("/:id", s.DeleteBar)
			bars.POST("/:id/inventory", s.AddInventoryItem)
			bars.DELETE("/:id/inventory", s.RemoveInventoryItem)
			bars.POST("/:id/share", s.ShareBar)
			bars.DELETE("/:id/share", s.UnshareBar)
			bars.GET("/:id/matches", s.BarMatches)
		}

		// Content
		api.GET("/articles", s.ListArticles)
		api.POST("/articles", s.requireAuth(), s.CreateArticle)
		api.DELETE("/articles/:id", s.requireAuth(), s.DeleteArticle)
		api.GET("/readings", s.ListReadings)
		api.POST("/readings", s.requireAuth(), s.CreateReading)
		api.DELETE("/readings/:id", s.requireAuth(), s.DeleteReading)
	}

	// Streaming recommendation
	s.Router.GET("/ws/suggest", s.SuggestWS)
}

// observeRequests counts served requests per route and status.
func (s *Server) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.Metrics.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
	}
}

const claimsKey = "authClaims"

// bearerClaims validates the request's bearer token, if any, and returns its
// claims. Nil means no usable token.
func (s *Server) bearerClaims(c *gin.Context) *auth.Claims {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil
	}
	claims, err := auth.ValidateToken(s.JWTSecret, header[len(prefix):])
	if err != nil {
		return nil
	}
	return claims
}

// requireAuth validates the bearer token and stores its claims on the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := s.bearerClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// currentUser returns the authenticated user's claims, or nil.
func currentUser(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// observeSuggestion records one model call for the metrics collector.
func (s *Server) observeSuggestion(start time.Time, outcome string) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.ObserveSuggestion(time.Since(start), outcome)
}
