package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"drinkingman/internal/catalog"
	"drinkingman/internal/models"
)

// loadBar fetches a bar with its inventory and viewers, enforcing that the
// authenticated user can see it. Writes the error response itself and
// returns nil on failure.
func (s *Server) loadBar(c *gin.Context) *models.Bar {
	claims := currentUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil
	}

	var bar models.Bar
	err := s.DB.Preload("Inventory").Preload("SharedWith").
		Where("id = ?", c.Param("id")).First(&bar).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bar not found"})
		return nil
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil
	}

	if !bar.VisibleTo(claims.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "bar not shared with you"})
		return nil
	}
	return &bar
}

// ListBars handles GET /api/bars: bars the user created plus bars shared
// with them.
func (s *Server) ListBars(c *gin.Context) {
	claims := currentUser(c)

	var created []models.Bar
	if err := s.DB.Preload("Inventory").Preload("SharedWith").
		Where("creator_id = ?", claims.UserID).Find(&created).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var shared []models.Bar
	err := s.DB.Preload("Inventory").Preload("SharedWith").
		Joins("JOIN bar_shared_users ON bar_shared_users.bar_id = bars.id").
		Where("bar_shared_users.user_id = ?", claims.UserID).Find(&shared).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, append(created, shared...))
}

type createBarRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBar handles POST /api/bars.
func (s *Server) CreateBar(c *gin.Context) {
	claims := currentUser(c)

	var req createBarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bar name required"})
		return
	}

	bar := models.Bar{
		ID:        models.NewID(),
		Name:      req.Name,
		CreatorID: claims.UserID,
	}
	if err := s.DB.Create(&bar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, bar)
}

// GetBar handles GET /api/bars/:id.
func (s *Server) GetBar(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}
	c.JSON(http.StatusOK, bar)
}

// DeleteBar handles DELETE /api/bars/:id. Only the creator may delete.
func (s *Server) DeleteBar(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}
	if bar.CreatorID != currentUser(c).UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can delete a bar"})
		return
	}

	tx := s.DB.Begin()
	if err := tx.Where("bar_id = ?", bar.ID).Delete(&models.InventoryItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if err := tx.Model(bar).Association("SharedWith").Clear().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if err := tx.Delete(bar).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type addItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// AddInventoryItem handles POST /api/bars/:id/inventory. If the item name
// matches a known catalog ingredient the item is linked to it.
func (s *Server) AddInventoryItem(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name required"})
		return
	}

	category := req.Category
	switch category {
	case models.CategoryIngredient, models.CategoryFood, models.CategoryDrink:
	case "":
		category = models.CategoryIngredient
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be ingredient, food or drink"})
		return
	}

	item := models.InventoryItem{
		ID:       models.NewID(),
		BarID:    bar.ID,
		Name:     strings.TrimSpace(req.Name),
		Category: category,
	}

	// Link to a known ingredient when the name matches one.
	var known models.Ingredient
	if err := s.DB.Where("name = ?", item.Name).First(&known).Error; err == nil {
		item.IngredientID = &known.ID
	}

	if err := s.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveInventoryItem handles DELETE /api/bars/:id/inventory?itemId=.
func (s *Server) RemoveInventoryItem(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}

	itemID := c.Query("itemId")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId required"})
		return
	}

	res := s.DB.Where("id = ? AND bar_id = ?", itemID, bar.ID).Delete(&models.InventoryItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type shareRequest struct {
	Username string `json:"username" binding:"required"`
}

// ShareBar handles POST /api/bars/:id/share, adding a viewer by username.
func (s *Server) ShareBar(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	var user models.User
	err := s.DB.Where("username = ?", req.Username).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if err := s.DB.Model(bar).Association("SharedWith").Append(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, bar)
}

// UnshareBar handles DELETE /api/bars/:id/share?userId=.
func (s *Server) UnshareBar(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	if err := s.DB.Model(bar).Association("SharedWith").Delete(&models.User{ID: userID}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BarMatches handles GET /api/bars/:id/matches: the catalog cocktails fully
// mixable from the bar's inventory.
func (s *Server) BarMatches(c *gin.Context) {
	bar := s.loadBar(c)
	if bar == nil {
		return
	}

	stock := make([]catalog.StockItem, 0, len(bar.Inventory))
	for _, item := range bar.Inventory {
		stock = append(stock, catalog.StockItem{Name: item.Name, Category: item.Category})
	}

	matches := s.Catalog.FindAvailable(stock)
	if s.Metrics != nil {
		s.Metrics.ObserveMatch()
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": len(matches)})
}
