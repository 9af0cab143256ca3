// Package nutrition computes daily protein targets and their split across
// meal slots. Everything here is a pure function of its inputs.
package nutrition

import (
	"errors"
	"math"

	"github.com/shree6791/gramvana/internal/models"
)

// ErrInvalidTarget is returned when an attainment percentage is requested
// against a non-positive daily target.
var ErrInvalidTarget = errors.New("nutrition: daily protein target must be positive")

// Per-slot shares of the daily protein target. They deliberately sum to 0.95:
// the remaining 5% is headroom, not an accounting error.
const (
	BreakfastShare = 0.25
	LunchShare     = 0.30
	SnackShare     = 0.10
	DinnerShare    = 0.30
)

// MealTargets holds the per-slot protein sub-targets in grams.
type MealTargets struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Snack     int `json:"snack"`
	Dinner    int `json:"dinner"`
}

// For returns the sub-target for the given slot.
func (t MealTargets) For(slot models.MealType) int {
	switch slot {
	case models.MealBreakfast:
		return t.Breakfast
	case models.MealLunch:
		return t.Lunch
	case models.MealSnack:
		return t.Snack
	case models.MealDinner:
		return t.Dinner
	}
	return 0
}

// Total returns the sum of the rounded sub-targets. Because each slot rounds
// independently it may differ from round(0.95 * daily) by a gram or two.
func (t MealTargets) Total() int {
	return t.Breakfast + t.Lunch + t.Snack + t.Dinner
}

// DailyTarget derives the daily protein target from body weight: 1g per
// pound. It is recomputed on every read, never stored.
func DailyTarget(bodyWeightLbs int) int {
	return bodyWeightLbs
}

// Allocate splits a daily protein target into per-meal sub-targets, each
// rounded to the nearest gram independently.
func Allocate(dailyTarget int) MealTargets {
	return MealTargets{
		Breakfast: roundShare(dailyTarget, BreakfastShare),
		Lunch:     roundShare(dailyTarget, LunchShare),
		Snack:     roundShare(dailyTarget, SnackShare),
		Dinner:    roundShare(dailyTarget, DinnerShare),
	}
}

// Attainment reports consumed protein as a percentage of the daily target,
// rounded to the nearest whole percent.
func Attainment(consumed, dailyTarget int) (int, error) {
	if dailyTarget <= 0 {
		return 0, ErrInvalidTarget
	}
	return int(math.Round(100 * float64(consumed) / float64(dailyTarget))), nil
}

func roundShare(target int, share float64) int {
	return int(math.Round(float64(target) * share))
}
