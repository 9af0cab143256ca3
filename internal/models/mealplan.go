package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlanEntry is one day of planned meals for a user, keyed by ISO date
// (YYYY-MM-DD). Slots reference generated recipes by id; a slot may be empty
// if its generation has not run yet. Stale is set when the user's body weight
// changes after the plan was built, since the protein split is then outdated.
type MealPlanEntry struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_plan_user_date,unique" json:"user_id"`
	Date        string         `gorm:"size:10;not null;index:idx_plan_user_date,unique" json:"date"`
	BreakfastID string         `gorm:"size:64" json:"breakfast_id"`
	LunchID     string         `gorm:"size:64" json:"lunch_id"`
	SnackID     string         `gorm:"size:64" json:"snack_id"`
	DinnerID    string         `gorm:"size:64" json:"dinner_id"`
	DailyTarget int            `json:"daily_target"`
	Stale       bool           `gorm:"default:false" json:"stale"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}
