package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drinkingman/internal/models"
)

// Thin persistence pass-throughs for the blog and reading list. The admin
// UI on top of these lives elsewhere.

// ListArticles handles GET /api/articles, newest first. Unauthenticated
// callers only see published articles; a valid bearer token also reveals
// drafts.
func (s *Server) ListArticles(c *gin.Context) {
	q := s.DB.Order("created_at desc")
	if s.bearerClaims(c) == nil {
		q = q.Where("published = ?", true)
	}

	var articles []models.Article
	if err := q.Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

type articleRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// CreateArticle handles POST /api/articles.
func (s *Server) CreateArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and slug required"})
		return
	}

	article := models.Article{
		ID:        models.NewID(),
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Image:     req.Image,
		Author:    req.Author,
		Published: req.Published,
	}
	if err := s.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, article)
}

// DeleteArticle handles DELETE /api/articles/:id.
func (s *Server) DeleteArticle(c *gin.Context) {
	res := s.DB.Where("id = ?", c.Param("id")).Delete(&models.Article{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListReadings handles GET /api/readings, newest first.
func (s *Server) ListReadings(c *gin.Context) {
	var readings []models.Reading
	if err := s.DB.Order("created_at desc").Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, readings)
}

type readingRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
	Link   string `json:"link"`
	Image  string `json:"image"`
	Review string `json:"review"`
}

// CreateReading handles POST /api/readings.
func (s *Server) CreateReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	reading := models.Reading{
		ID:     models.NewID(),
		Title:  req.Title,
		Author: req.Author,
		Link:   req.Link,
		Image:  req.Image,
		Review: req.Review,
	}
	if err := s.DB.Create(&reading).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// DeleteReading handles DELETE /api/readings/:id.
func (s *Server) DeleteReading(c *gin.Context) {
	res := s.DB.Where("id = ?", c.Param("id")).Delete(&models.Reading{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "reading not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
