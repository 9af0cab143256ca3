package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shree6791/gramvana/internal/models"
)

// Legacy key names the deployed client persists under; the Redis session
// store mirrors them per user so the client's persistence format keeps
// working.
const (
	keyRecipesData  = "recipesData"
	keyMealPlan     = "mealPlan"
	keySavedRecipes = "savedRecipes"
)

// SessionStore keeps per-user session state in Redis: generated recipes by
// id, meal plans by date, and bookmarked recipe ids. Sign-out clears all
// three; nothing else ever expires them.
type SessionStore struct {
	redis *redis.Client
}

// NewSessionStore creates a new SessionStore instance.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{redis: client}
}

func sessionKey(userID, name string) string {
	return fmt.Sprintf("session:%s:%s", userID, name)
}

// PutRecipe stores a generated recipe under the user's recipesData hash.
func (s *SessionStore) PutRecipe(ctx context.Context, userID string, recipe *models.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := s.redis.HSet(ctx, sessionKey(userID, keyRecipesData), recipe.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store recipe: %w", err)
	}
	return nil
}

// GetRecipe looks up a recipe by id in the user's recipesData hash.
func (s *SessionStore) GetRecipe(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	data, err := s.redis.HGet(ctx, sessionKey(userID, keyRecipesData), recipeID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &recipe, nil
}

// PutMealPlan stores one day's plan under the user's mealPlan hash, keyed by
// ISO date.
func (s *SessionStore) PutMealPlan(ctx context.Context, userID, date string, plan any) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	if err := s.redis.HSet(ctx, sessionKey(userID, keyMealPlan), date, data).Err(); err != nil {
		return fmt.Errorf("failed to store meal plan: %w", err)
	}
	return nil
}

// GetMealPlan retrieves one day's plan into dst; found reports whether the
// date had an entry.
func (s *SessionStore) GetMealPlan(ctx context.Context, userID, date string, dst any) (bool, error) {
	data, err := s.redis.HGet(ctx, sessionKey(userID, keyMealPlan), date).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get meal plan: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal meal plan: %w", err)
	}
	return true, nil
}

// SaveRecipeID bookmarks a recipe id for the user.
func (s *SessionStore) SaveRecipeID(ctx context.Context, userID, recipeID string) error {
	return s.redis.SAdd(ctx, sessionKey(userID, keySavedRecipes), recipeID).Err()
}

// UnsaveRecipeID removes a bookmark.
func (s *SessionStore) UnsaveRecipeID(ctx context.Context, userID, recipeID string) error {
	return s.redis.SRem(ctx, sessionKey(userID, keySavedRecipes), recipeID).Err()
}

// SavedRecipeIDs lists the user's bookmarked recipe ids.
func (s *SessionStore) SavedRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.redis.SMembers(ctx, sessionKey(userID, keySavedRecipes)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return ids, nil
}

// Clear purges all session state for the user. Called on sign-out; server
// state (profile, persisted recipes) is untouched.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	return s.redis.Del(ctx,
		sessionKey(userID, keyRecipesData),
		sessionKey(userID, keyMealPlan),
		sessionKey(userID, keySavedRecipes),
	).Err()
}
