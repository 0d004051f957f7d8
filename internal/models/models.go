package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns or views bars. Passwords are stored only as
// bcrypt hashes.
type User struct {
	ID           string    `gorm:"primary_key" json:"id"`
	Username     string    `gorm:"unique_index;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}

// Bar is a named inventory container with one creator and zero or more
// additional viewers.
type Bar struct {
	ID         string          `gorm:"primary_key" json:"id"`
	Name       string          `gorm:"not null" json:"name"`
	CreatorID  string          `gorm:"index;not null" json:"creatorId"`
	Inventory  []InventoryItem `gorm:"foreignkey:BarID" json:"inventory"`
	SharedWith []User          `gorm:"many2many:bar_shared_users" json:"sharedWith"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"-"`
}

// TableName sets the table name for Bar
func (Bar) TableName() string {
	return "bars"
}

// VisibleTo reports whether the user created the bar or has it shared with
// them.
func (b *Bar) VisibleTo(userID string) bool {
	if b.CreatorID == userID {
		return true
	}
	for _, u := range b.SharedWith {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// Inventory item categories. Food never satisfies a recipe requirement.
const (
	CategoryIngredient = "ingredient"
	CategoryFood       = "food"
	CategoryDrink      = "drink"
)

// InventoryItem is one named thing recorded as available in a bar. Name is
// free text; IngredientID links it to a known catalog ingredient when the
// name matches one.
type InventoryItem struct {
	ID           string    `gorm:"primary_key" json:"id"`
	BarID        string    `gorm:"index;not null" json:"barId"`
	Name         string    `gorm:"not null" json:"name"`
	Category     string    `gorm:"not null;default:'ingredient'" json:"category"`
	IngredientID *uint     `json:"ingredientId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName sets the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Ingredient is a known ingredient name, seeded from the catalog and used
// for filter suggestions and inventory autocompletion.
type Ingredient struct {
	ID   uint   `gorm:"primary_key" json:"id"`
	Name string `gorm:"unique_index;not null" json:"name"`
	Type string `json:"type"`
}

// TableName sets the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// Article is a blog entry.
type Article struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"unique_index;not null" json:"slug"`
	Content   string    `gorm:"type:text" json:"content"`
	Image     string    `json:"image,omitempty"`
	Author    string    `json:"author"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Article
func (Article) TableName() string {
	return "articles"
}

// Reading is a reading-list entry.
type Reading struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `json:"author,omitempty"`
	Link      string    `json:"link,omitempty"`
	Image     string    `json:"image,omitempty"`
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName sets the table name for Reading
func (Reading) TableName() string {
	return "readings"
}

// NewID returns a fresh identifier for a record.
func NewID() string {
	return uuid.NewString()
}
