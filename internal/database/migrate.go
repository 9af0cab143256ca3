package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/shree6791/gramvana/internal/models"
)

// Migrate brings the schema up to date. On postgres the pgvector extension
// is required for the recipes.embedding column.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return err
		}
	}

	log.Printf("Running schema migration")
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.Allergen{},
		&models.Recipe{},
		&models.SavedRecipe{},
		&models.MealPlanEntry{},
	)
}
