package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shree6791/gramvana/internal/models"
)

func TestAllocate(t *testing.T) {
	t.Run("160lb body weight splits cleanly", func(t *testing.T) {
		targets := Allocate(DailyTarget(160))

		assert.Equal(t, 40, targets.Breakfast)
		assert.Equal(t, 48, targets.Lunch)
		assert.Equal(t, 16, targets.Snack)
		assert.Equal(t, 48, targets.Dinner)
		assert.Equal(t, 152, targets.Total())
	})

	t.Run("rounded total stays within 2g of the 0.95 share", func(t *testing.T) {
		for daily := 50; daily <= 400; daily++ {
			targets := Allocate(daily)
			want := 0.95 * float64(daily)
			got := float64(targets.Total())
			assert.LessOrEqualf(t, math.Abs(got-want), 2.0,
				"daily=%d: rounded total %v too far from %v", daily, got, want)
		}
	})

	t.Run("pre-rounding shares sum to exactly 0.95", func(t *testing.T) {
		sum := BreakfastShare + LunchShare + SnackShare + DinnerShare
		assert.InDelta(t, 0.95, sum, 1e-12)
	})

	t.Run("For maps slots to their sub-targets", func(t *testing.T) {
		targets := Allocate(160)
		assert.Equal(t, targets.Breakfast, targets.For(models.MealBreakfast))
		assert.Equal(t, targets.Lunch, targets.For(models.MealLunch))
		assert.Equal(t, targets.Snack, targets.For(models.MealSnack))
		assert.Equal(t, targets.Dinner, targets.For(models.MealDinner))
		assert.Equal(t, 0, targets.For(models.MealType("brunch")))
	})
}

func TestAttainment(t *testing.T) {
	t.Run("rounds to nearest percent", func(t *testing.T) {
		pct, err := Attainment(152, 160)
		require.NoError(t, err)
		assert.Equal(t, 95, pct)

		pct, err = Attainment(1, 3)
		require.NoError(t, err)
		assert.Equal(t, 33, pct)
	})

	t.Run("can exceed 100", func(t *testing.T) {
		pct, err := Attainment(180, 160)
		require.NoError(t, err)
		assert.Equal(t, 113, pct)
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		_, err := Attainment(50, 0)
		assert.ErrorIs(t, err, ErrInvalidTarget)

		_, err = Attainment(50, -10)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestDailyTarget(t *testing.T) {
	// 1g of protein per pound of body weight.
	assert.Equal(t, 160, DailyTarget(160))
	assert.Equal(t, 50, DailyTarget(50))
}
