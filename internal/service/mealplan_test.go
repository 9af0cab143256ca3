package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/nutrition"
	"github.com/shree6791/gramvana/internal/types"
)

func TestMealPlanSlots(t *testing.T) {
	plan := &MealPlan{
		Date:        "2026-08-30",
		Breakfast:   &models.Recipe{ID: "b", Protein: 40},
		Lunch:       &models.Recipe{ID: "l", Protein: 48},
		Snack:       &models.Recipe{ID: "s", Protein: 16},
		Dinner:      &models.Recipe{ID: "d", Protein: 48},
		DailyTarget: 160,
	}

	t.Run("slot lookup by meal type", func(t *testing.T) {
		assert.Equal(t, "b", plan.Slot(models.MealBreakfast).ID)
		assert.Equal(t, "l", plan.Slot(models.MealLunch).ID)
		assert.Equal(t, "s", plan.Slot(models.MealSnack).ID)
		assert.Equal(t, "d", plan.Slot(models.MealDinner).ID)
		assert.Nil(t, plan.Slot(models.MealType("brunch")))
	})

	t.Run("consumed protein sums filled slots", func(t *testing.T) {
		assert.Equal(t, 152, plan.ConsumedProtein())

		partial := &MealPlan{Breakfast: &models.Recipe{Protein: 40}}
		assert.Equal(t, 40, partial.ConsumedProtein())
	})

	t.Run("summary reports attainment against the daily target", func(t *testing.T) {
		svc := NewMealPlanService(nil, nil, nil)
		consumed, percent, err := svc.Summary(plan)
		require.NoError(t, err)
		assert.Equal(t, 152, consumed)
		assert.Equal(t, 95, percent)
	})
}

func TestMealPlanDateValidation(t *testing.T) {
	svc := NewMealPlanService(nil, nil, nil)
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"", "30-08-2026", "2026/08/30", "not-a-date"} {
		_, err := svc.Get(ctx, userID, date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestMealPlanTargetsMatchAllocator(t *testing.T) {
	targets := nutrition.Allocate(nutrition.DailyTarget(160))
	assert.Equal(t, 40, targets.For(models.MealBreakfast))
	assert.Equal(t, 48, targets.For(models.MealLunch))
	assert.Equal(t, 16, targets.For(models.MealSnack))
	assert.Equal(t, 48, targets.For(models.MealDinner))
}

func TestMealPlanBuild(t *testing.T) {
	ctx := context.Background()
	profile := types.ProfileContext{BodyWeight: 160, EnableMealPlanning: true}

	t.Run("fills every slot with its allocator target", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewMealPlanService(newTestDB(t), newFallbackGenerator(false), store)
		userID := uuid.New()

		plan, err := svc.Build(ctx, userID, profile, "2026-08-30")
		require.NoError(t, err)

		assert.Equal(t, 160, plan.DailyTarget)
		want := map[models.MealType]int{
			models.MealBreakfast: 40,
			models.MealLunch:     48,
			models.MealSnack:     16,
			models.MealDinner:    48,
		}
		for slot, protein := range want {
			r := plan.Slot(slot)
			require.NotNil(t, r, "slot %s", slot)
			assert.Equal(t, slot, r.MealType)
			assert.Equal(t, protein, r.Protein, "slot %s", slot)
		}
		assert.Equal(t, 152, plan.ConsumedProtein())
	})

	t.Run("persists the plan under the date key and as a row", func(t *testing.T) {
		db := newTestDB(t)
		store := newTestStore(t)
		svc := NewMealPlanService(db, newFallbackGenerator(false), store)
		userID := uuid.New()

		built, err := svc.Build(ctx, userID, profile, "2026-08-30")
		require.NoError(t, err)

		var stored MealPlan
		found, err := store.GetMealPlan(ctx, userID.String(), "2026-08-30", &stored)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, built.Breakfast.ID, stored.Breakfast.ID)

		var entry models.MealPlanEntry
		require.NoError(t, db.Where("user_id = ? AND date = ?", userID, "2026-08-30").First(&entry).Error)
		assert.Equal(t, built.Dinner.ID, entry.DinnerID)
		assert.Equal(t, 160, entry.DailyTarget)
		assert.False(t, entry.Stale)
	})

	t.Run("rebuilding replaces the stored plan", func(t *testing.T) {
		db := newTestDB(t)
		store := newTestStore(t)
		svc := NewMealPlanService(db, newFallbackGenerator(false), store)
		userID := uuid.New()

		_, err := svc.Build(ctx, userID, profile, "2026-08-30")
		require.NoError(t, err)
		second, err := svc.Build(ctx, userID, profile, "2026-08-30")
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.MealPlanEntry{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(1), count, "upsert keeps one row per user and date")

		got, err := svc.Get(ctx, userID, "2026-08-30")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.Breakfast.ID, got.Breakfast.ID)
	})

	t.Run("get reflects staleness from the row", func(t *testing.T) {
		db := newTestDB(t)
		store := newTestStore(t)
		svc := NewMealPlanService(db, newFallbackGenerator(false), store)
		userID := uuid.New()

		_, err := svc.Build(ctx, userID, profile, "2026-08-30")
		require.NoError(t, err)
		require.NoError(t, svc.MarkStale(ctx, userID))

		got, err := svc.Get(ctx, userID, "2026-08-30")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Stale)
	})

	t.Run("get returns nil for an unplanned date", func(t *testing.T) {
		svc := NewMealPlanService(newTestDB(t), newFallbackGenerator(false), newTestStore(t))
		got, err := svc.Get(ctx, uuid.New(), "2026-08-30")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMarkStale(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealPlanService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()

	entries := []models.MealPlanEntry{
		{UserID: userID, Date: "2026-08-29", DailyTarget: 160},
		{UserID: userID, Date: "2026-08-30", DailyTarget: 160},
		{UserID: other, Date: "2026-08-30", DailyTarget: 180},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	require.NoError(t, svc.MarkStale(ctx, userID))

	var stale []models.MealPlanEntry
	require.NoError(t, db.Where("user_id = ? AND stale = ?", userID, true).Find(&stale).Error)
	assert.Len(t, stale, 2)

	var untouched models.MealPlanEntry
	require.NoError(t, db.Where("user_id = ?", other).First(&untouched).Error)
	assert.False(t, untouched.Stale, "other users' plans stay fresh")
}
