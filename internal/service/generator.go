package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

// Generator produces exactly one recipe per request. Backend failures of any
// kind degrade silently to the local fallback table unless requireBackend is
// set, in which case they surface to the caller.
type Generator struct {
	llm            *LLMService
	cache          *RecipeCache
	requireBackend bool
}

// NewGenerator creates a new Generator instance.
func NewGenerator(llm *LLMService, cache *RecipeCache, requireBackend bool) *Generator {
	return &Generator{
		llm:            llm,
		cache:          cache,
		requireBackend: requireBackend,
	}
}

// BackendLive reports whether generation calls will hit the real backend.
func (g *Generator) BackendLive() bool {
	return g.llm.Available()
}

// ResolveProteinTarget returns the effective protein target for a request:
// the explicit target when present, else a quarter of body weight, else zero
// meaning the backend picks.
func ResolveProteinTarget(req types.RecipeRequest) int {
	if req.ProteinTarget > 0 {
		return req.ProteinTarget
	}
	if req.BodyWeight > 0 {
		return int(math.Round(0.25 * float64(req.BodyWeight)))
	}
	return 0
}

// Generate produces one recipe matching the request. It never fails for "no
// match": the fallback table guarantees a result. The only error paths are a
// backend failure with requireBackend set, or a cancelled context.
func (g *Generator) Generate(ctx context.Context, req types.RecipeRequest) (*models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := ResolveProteinTarget(req)

	if g.llm.Available() {
		recipe, err := g.generateFromBackend(ctx, req, target)
		if err == nil {
			return recipe, nil
		}
		if g.requireBackend {
			return nil, err
		}
		log.Printf("[generator] backend generation failed, using fallback: %v", err)
	} else if g.requireBackend {
		return nil, fmt.Errorf("%w: no API key configured", ErrBackendUnavailable)
	}

	// The table stores zero protein; without a resolved target the canned
	// recipe would keep it, so the original app's 15g default applies.
	if target == 0 {
		target = fallbackDefaultProtein
	}
	recipe := pickFallback(req.MealType)
	g.finalize(&recipe, target)
	return &recipe, nil
}

func (g *Generator) generateFromBackend(ctx context.Context, req types.RecipeRequest, target int) (*models.Recipe, error) {
	raw, err := g.llm.Complete(ctx, BuildPrompt(req))
	if err != nil {
		return nil, err
	}

	recipe, err := parseGeneratedRecipe(raw)
	if err != nil {
		return nil, err
	}

	g.finalize(recipe, target)
	return recipe, nil
}

// finalize applies the post-processing every generated recipe gets: a unique
// id when the backend supplied none, the protein invariant, an embedding for
// later search, and insertion into the cache.
func (g *Generator) finalize(recipe *models.Recipe, target int) {
	if recipe.ID == "" {
		recipe.ID = newRecipeID()
	}
	if target > 0 {
		recipe.Protein = target
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title)
	g.cache.Put(*recipe)
}

// newRecipeID builds a client-generated id unique without a coordinating
// server: gen-<timestamp>-<random>.
func newRecipeID() string {
	return fmt.Sprintf("gen-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// generatedRecipe mirrors the JSON shape the prompt asks for. Numeric fields
// are float64 because models emit both integers and decimals.
type generatedRecipe struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Image         string   `json:"image"`
	PrepTime      float64  `json:"prepTime"`
	Protein       float64  `json:"protein"`
	Calories      float64  `json:"calories"`
	Carbs         float64  `json:"carbs"`
	Fat           float64  `json:"fat"`
	Tags          []string `json:"tags"`
	KeyBenefits   []string `json:"keyBenefits"`
	Ingredients   []string `json:"ingredients"`
	Instructions  []string `json:"instructions"`
	MealType      string   `json:"mealType"`
	DietaryLabels []string `json:"dietaryLabels"`
}

// parseGeneratedRecipe decodes the backend's reply. The reply may be a JSON
// object or an array of objects (first element wins), optionally wrapped in
// code fences.
func parseGeneratedRecipe(raw string) (*models.Recipe, error) {
	content := stripCodeFences(raw)

	var gen generatedRecipe
	if err := json.Unmarshal([]byte(content), &gen); err != nil {
		var arr []generatedRecipe
		if arrErr := json.Unmarshal([]byte(content), &arr); arrErr != nil || len(arr) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		gen = arr[0]
	}

	if gen.Title == "" || len(gen.Ingredients) == 0 || len(gen.Instructions) == 0 {
		return nil, fmt.Errorf("%w: missing title, ingredients or instructions", ErrMalformedResponse)
	}

	recipe := &models.Recipe{
		ID:            gen.ID,
		Title:         gen.Title,
		Image:         gen.Image,
		PrepTime:      roundNonNegative(gen.PrepTime),
		Protein:       roundNonNegative(gen.Protein),
		Calories:      roundNonNegative(gen.Calories),
		Carbs:         roundNonNegative(gen.Carbs),
		Fat:           roundNonNegative(gen.Fat),
		Tags:          models.JSONBStringArray(gen.Tags),
		KeyBenefits:   models.JSONBStringArray(gen.KeyBenefits),
		Ingredients:   models.JSONBStringArray(gen.Ingredients),
		Instructions:  models.JSONBStringArray(gen.Instructions),
		DietaryLabels: models.JSONBStringArray(gen.DietaryLabels),
	}
	if mt := models.MealType(gen.MealType); mt.Valid() {
		recipe.MealType = mt
	}
	return recipe, nil
}

func roundNonNegative(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}
