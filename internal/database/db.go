package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"drinkingman/internal/models"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema.
func InitDB(dbPath string) error {
	var err error
	DB, err = gorm.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	return Migrate(DB)
}

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Bar{},
		&models.InventoryItem{},
		&models.Ingredient{},
		&models.Article{},
		&models.Reading{},
	).Error
}

// SeedIngredients inserts the given ingredient names if the ingredients
// table is empty. Idempotent: a seeded database is left untouched.
func SeedIngredients(db *gorm.DB, names []string) error {
	var count int
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting ingredients: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx := db.Begin()
	for _, name := range names {
		if err := tx.Create(&models.Ingredient{Name: name, Type: models.CategoryIngredient}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("seeding ingredient %q: %w", name, err)
		}
	}
	return tx.Commit().Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
