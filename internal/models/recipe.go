package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// MealType identifies the slot a recipe is intended for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// Valid reports whether the meal type is one of the four known slots.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealSnack, MealDinner:
		return true
	}
	return false
}

// MealSlots lists the four slots in display order.
var MealSlots = []MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a generated recipe. The JSON field names follow the shape the
// deployed client already persists under recipesData, so they stay camelCase.
// A recipe is immutable once created; Protein always equals the target the
// caller requested when one was supplied.
type Recipe struct {
	ID            string           `gorm:"primaryKey;size:64" json:"id"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Image         string           `gorm:"size:512" json:"image"`
	PrepTime      int              `json:"prepTime"`
	Protein       int              `json:"protein"`
	Calories      int              `json:"calories"`
	Carbs         int              `json:"carbs"`
	Fat           int              `json:"fat"`
	Tags          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	DietaryLabels JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietaryLabels"`
	KeyBenefits   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"keyBenefits"`
	Ingredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	MealType      MealType         `gorm:"size:20" json:"mealType"`
	Embedding     pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	CreatedAt     time.Time        `json:"-"`
	UpdatedAt     time.Time        `json:"-"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// SavedRecipe is a user's bookmark of a generated recipe.
type SavedRecipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"size:36;not null;index:idx_saved_user_recipe,unique" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;index:idx_saved_user_recipe,unique" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
