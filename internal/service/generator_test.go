package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

func newFallbackGenerator(requireBackend bool) *Generator {
	return NewGenerator(newTestLLM("", ""), NewRecipeCache(DefaultCacheSize), requireBackend)
}

func TestResolveProteinTarget(t *testing.T) {
	assert.Equal(t, 30, ResolveProteinTarget(types.RecipeRequest{ProteinTarget: 30, BodyWeight: 160}))
	assert.Equal(t, 40, ResolveProteinTarget(types.RecipeRequest{BodyWeight: 160}))
	assert.Equal(t, 38, ResolveProteinTarget(types.RecipeRequest{BodyWeight: 150}))
	assert.Equal(t, 0, ResolveProteinTarget(types.RecipeRequest{}))
}

func TestGenerateFallback(t *testing.T) {
	t.Run("matches requested meal type", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		for i := 0; i < 20; i++ {
			recipe, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealSnack})
			require.NoError(t, err)
			assert.Equal(t, models.MealSnack, recipe.MealType)
		}
	})

	t.Run("applies the resolved protein target", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{
			MealType:      models.MealSnack,
			ProteinTarget: 16,
		})
		require.NoError(t, err)
		assert.Equal(t, 16, recipe.Protein)
	})

	t.Run("defaults to 15g when nothing resolves a target", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		for i := 0; i < 10; i++ {
			recipe, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealSnack})
			require.NoError(t, err)
			assert.Equal(t, fallbackDefaultProtein, recipe.Protein)
		}
	})

	t.Run("body weight still beats the default", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{
			MealType:   models.MealBreakfast,
			BodyWeight: 160,
		})
		require.NoError(t, err)
		assert.Equal(t, 40, recipe.Protein)
	})

	t.Run("caller mutations never reach the canned table", func(t *testing.T) {
		recipe := pickFallback(models.MealBreakfast)
		require.NotEmpty(t, recipe.Ingredients)
		original := recipe.Ingredients[0]

		recipe.Ingredients[0] = "mutated"
		recipe.Tags = append(recipe.Tags, "mutated")

		again := pickFallback(models.MealBreakfast)
		assert.Equal(t, original, again.Ingredients[0])
		assert.NotContains(t, []string(again.Tags), "mutated")
	})

	t.Run("assigns a generated id and caches the result", func(t *testing.T) {
		cache := NewRecipeCache(DefaultCacheSize)
		gen := NewGenerator(newTestLLM("", ""), cache, false)

		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealLunch})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(recipe.ID, "gen-"), "id %q", recipe.ID)

		cached, ok := cache.Get(recipe.ID)
		require.True(t, ok)
		assert.Equal(t, recipe.Title, cached.Title)
	})

	t.Run("never comes up empty for unknown meal types", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealType("brunch")})
		require.NoError(t, err)
		assert.NotEmpty(t, recipe.Title)
		assert.NotEmpty(t, recipe.Ingredients)
	})

	t.Run("requireBackend surfaces the missing key", func(t *testing.T) {
		gen := newFallbackGenerator(true)
		_, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealDinner})
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})

	t.Run("respects a cancelled context", func(t *testing.T) {
		gen := newFallbackGenerator(false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := gen.Generate(ctx, types.RecipeRequest{MealType: models.MealLunch})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerateFromBackend(t *testing.T) {
	recipeJSON := `{"id":"r-1","title":"Chickpea Curry","prepTime":20.4,"protein":18,"calories":410,"carbs":52,"fat":11,"tags":["curry"],"ingredients":["chickpeas"],"instructions":["simmer"],"mealType":"dinner"}`

	t.Run("parses and finalizes the backend reply", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, recipeJSON)
		}))
		defer ts.Close()

		gen := NewGenerator(newTestLLM("test-key", ts.URL), NewRecipeCache(DefaultCacheSize), true)
		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{
			MealType:      models.MealDinner,
			ProteinTarget: 48,
		})
		require.NoError(t, err)

		assert.Equal(t, "r-1", recipe.ID)
		assert.Equal(t, "Chickpea Curry", recipe.Title)
		assert.Equal(t, 20, recipe.PrepTime)
		assert.Equal(t, 48, recipe.Protein, "resolved target overrides the backend estimate")
		assert.Equal(t, models.MealDinner, recipe.MealType)
	})

	t.Run("falls back silently on garbage output", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[{"message":{"content":"sorry, I cannot do that"}}]}`)
		}))
		defer ts.Close()

		gen := NewGenerator(newTestLLM("test-key", ts.URL), NewRecipeCache(DefaultCacheSize), false)
		recipe, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealBreakfast})
		require.NoError(t, err)
		assert.Equal(t, models.MealBreakfast, recipe.MealType)
	})

	t.Run("requireBackend surfaces garbage output", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[{"message":{"content":"not json"}}]}`)
		}))
		defer ts.Close()

		gen := NewGenerator(newTestLLM("test-key", ts.URL), NewRecipeCache(DefaultCacheSize), true)
		_, err := gen.Generate(context.Background(), types.RecipeRequest{MealType: models.MealBreakfast})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestParseGeneratedRecipe(t *testing.T) {
	t.Run("accepts a fenced object", func(t *testing.T) {
		raw := "```json\n{\"title\":\"Dal\",\"ingredients\":[\"lentils\"],\"instructions\":[\"boil\"]}\n```"
		recipe, err := parseGeneratedRecipe(raw)
		require.NoError(t, err)
		assert.Equal(t, "Dal", recipe.Title)
	})

	t.Run("takes the first element of an array reply", func(t *testing.T) {
		raw := `[{"title":"First","ingredients":["a"],"instructions":["b"]},{"title":"Second","ingredients":["c"],"instructions":["d"]}]`
		recipe, err := parseGeneratedRecipe(raw)
		require.NoError(t, err)
		assert.Equal(t, "First", recipe.Title)
	})

	t.Run("rejects replies missing required fields", func(t *testing.T) {
		_, err := parseGeneratedRecipe(`{"title":"No Steps","ingredients":["a"]}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)

		_, err = parseGeneratedRecipe(`{"ingredients":["a"],"instructions":["b"]}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("rounds fractional macros and clamps negatives", func(t *testing.T) {
		raw := `{"title":"Dal","prepTime":12.6,"protein":-3,"calories":399.5,"ingredients":["lentils"],"instructions":["boil"]}`
		recipe, err := parseGeneratedRecipe(raw)
		require.NoError(t, err)
		assert.Equal(t, 13, recipe.PrepTime)
		assert.Equal(t, 0, recipe.Protein)
		assert.Equal(t, 400, recipe.Calories)
	})

	t.Run("ignores invalid meal types", func(t *testing.T) {
		raw := `{"title":"Dal","ingredients":["lentils"],"instructions":["boil"],"mealType":"supper"}`
		recipe, err := parseGeneratedRecipe(raw)
		require.NoError(t, err)
		assert.Equal(t, models.MealType(""), recipe.MealType)
	})
}
