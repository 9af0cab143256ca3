package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile holds the preferences the onboarding survey collects. Created
// empty at sign-up, populated by onboarding, mutated by profile edits;
// sign-out never deletes it. Dirty marks a profile whose last remote sync
// failed and whose local state is ahead of the stored row.
type UserProfile struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	HealthGoal         string         `gorm:"size:50" json:"health_goal"`
	BodyWeight         int            `json:"body_weight"`
	EnableMealPlanning bool           `gorm:"default:true" json:"enable_meal_planning"`
	Dirty              bool           `gorm:"default:false" json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

type DietaryPreference struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PreferenceType string    `gorm:"size:50;not null" json:"preference_type"`
	CustomName     string    `gorm:"size:50" json:"custom_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DietaryPreference) TableName() string {
	return "dietary_preferences"
}

type Allergen struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName string    `gorm:"size:50;not null" json:"allergen_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Allergen) TableName() string {
	return "allergens"
}
