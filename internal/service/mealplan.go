package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/nutrition"
	"github.com/shree6791/gramvana/internal/types"
)

// ErrInvalidDate is returned for meal-plan dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("meal plan date must be YYYY-MM-DD")

// MealPlan is one day of planned meals plus the protein math behind it.
type MealPlan struct {
	Date        string                `json:"date"`
	Breakfast   *models.Recipe        `json:"breakfast"`
	Lunch       *models.Recipe        `json:"lunch"`
	Snack       *models.Recipe        `json:"snack"`
	Dinner      *models.Recipe        `json:"dinner"`
	Targets     nutrition.MealTargets `json:"targets"`
	DailyTarget int                   `json:"daily_target"`
	Stale       bool                  `json:"stale"`
}

// Slot returns the recipe planned for the given slot.
func (p *MealPlan) Slot(slot models.MealType) *models.Recipe {
	switch slot {
	case models.MealBreakfast:
		return p.Breakfast
	case models.MealLunch:
		return p.Lunch
	case models.MealSnack:
		return p.Snack
	case models.MealDinner:
		return p.Dinner
	}
	return nil
}

// ConsumedProtein sums the protein of the filled slots.
func (p *MealPlan) ConsumedProtein() int {
	var total int
	for _, slot := range models.MealSlots {
		if r := p.Slot(slot); r != nil {
			total += r.Protein
		}
	}
	return total
}

// MealPlanService builds and persists per-day meal plans. Plans live in the
// Redis session store under the client's legacy mealPlan key and as
// relational rows for history; a body-weight change marks stored plans
// stale rather than deleting them.
type MealPlanService struct {
	db    *gorm.DB
	gen   *Generator
	store *SessionStore
}

// NewMealPlanService creates a new MealPlanService instance.
func NewMealPlanService(db *gorm.DB, gen *Generator, store *SessionStore) *MealPlanService {
	return &MealPlanService{db: db, gen: gen, store: store}
}

// Build generates a full plan for the date: the allocator splits the daily
// target across the four slots, and the four generation calls fan out
// concurrently. Slots share no state, so the plan is assembled by slot name
// regardless of completion order.
func (s *MealPlanService) Build(ctx context.Context, userID uuid.UUID, profile types.ProfileContext, date string) (*MealPlan, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	daily := nutrition.DailyTarget(profile.BodyWeight)
	targets := nutrition.Allocate(daily)

	recipes := make([]*models.Recipe, len(models.MealSlots))
	grp, gctx := errgroup.WithContext(ctx)
	for i, slot := range models.MealSlots {
		i, slot := i, slot
		grp.Go(func() error {
			recipe, err := s.gen.Generate(gctx, profile.Request(slot, targets.For(slot)))
			if err != nil {
				return fmt.Errorf("generating %s: %w", slot, err)
			}
			recipes[i] = recipe
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	plan := &MealPlan{
		Date:        date,
		Breakfast:   recipes[0],
		Lunch:       recipes[1],
		Snack:       recipes[2],
		Dinner:      recipes[3],
		Targets:     targets,
		DailyTarget: daily,
	}

	if err := s.persist(ctx, userID, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Get retrieves the stored plan for a date, or nil when none exists.
func (s *MealPlanService) Get(ctx context.Context, userID uuid.UUID, date string) (*MealPlan, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var plan MealPlan
	found, err := s.store.GetMealPlan(ctx, userID.String(), date, &plan)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var entry models.MealPlanEntry
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error; err == nil {
		plan.Stale = entry.Stale
	}
	return &plan, nil
}

// Summary reports the plan's total protein and its attainment percentage
// against the daily target.
func (s *MealPlanService) Summary(plan *MealPlan) (consumed, percent int, err error) {
	consumed = plan.ConsumedProtein()
	percent, err = nutrition.Attainment(consumed, plan.DailyTarget)
	return consumed, percent, err
}

// MarkStale flags every stored plan for the user as needing regeneration.
// Called when body weight changes, since the per-slot splits are then
// outdated. Plans are kept, not deleted.
func (s *MealPlanService) MarkStale(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.MealPlanEntry{}).
		Where("user_id = ?", userID).
		Update("stale", true).Error
}

func (s *MealPlanService) persist(ctx context.Context, userID uuid.UUID, plan *MealPlan) error {
	if err := s.store.PutMealPlan(ctx, userID.String(), plan.Date, plan); err != nil {
		return err
	}
	for _, slot := range models.MealSlots {
		if r := plan.Slot(slot); r != nil {
			if err := s.store.PutRecipe(ctx, userID.String(), r); err != nil {
				return err
			}
		}
	}

	entry := models.MealPlanEntry{
		UserID:      userID,
		Date:        plan.Date,
		BreakfastID: plan.Breakfast.ID,
		LunchID:     plan.Lunch.ID,
		SnackID:     plan.Snack.ID,
		DinnerID:    plan.Dinner.ID,
		DailyTarget: plan.DailyTarget,
		Stale:       false,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			UpdateAll: true,
		}).
		Create(&entry).Error
}
