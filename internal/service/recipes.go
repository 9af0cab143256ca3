package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shree6791/gramvana/internal/models"
)

// ErrRecipeNotFound is returned when no layer can resolve a recipe id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService resolves recipes by id across the storage layers and owns
// the user's persisted bookmarks. Lookup order is cache, then the user's
// Redis session, then the database; whichever layer hits backfills the
// cache so the next detail-view navigation is free.
type RecipeService struct {
	db    *gorm.DB
	cache *RecipeCache
	store *SessionStore
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, cache *RecipeCache, store *SessionStore) *RecipeService {
	return &RecipeService{db: db, cache: cache, store: store}
}

// Get resolves a recipe id without issuing a generation call.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	if recipe, ok := s.cache.Get(recipeID); ok {
		return &recipe, nil
	}

	if recipe, err := s.store.GetRecipe(ctx, userID, recipeID); err == nil && recipe != nil {
		s.cache.Put(*recipe)
		return recipe, nil
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	s.cache.Put(recipe)
	return &recipe, nil
}

// Persist writes a generated recipe to the database so it survives the
// session. Upserts by id; generated recipes are immutable so a conflict
// only refreshes the same content.
func (s *RecipeService) Persist(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(recipe).Error
}

// Save bookmarks a recipe for the user, persisting the recipe itself first
// so the bookmark always resolves.
func (s *RecipeService) Save(ctx context.Context, userID string, recipe *models.Recipe) error {
	if err := s.Persist(ctx, recipe); err != nil {
		return err
	}
	bookmark := models.SavedRecipe{UserID: userID, RecipeID: recipe.ID}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&bookmark).Error; err != nil {
		return err
	}
	return s.store.SaveRecipeID(ctx, userID, recipe.ID)
}

// Unsave removes a bookmark. The recipe row stays; other bookmarks may
// reference it.
func (s *RecipeService) Unsave(ctx context.Context, userID, recipeID string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{}).Error; err != nil {
		return err
	}
	return s.store.UnsaveRecipeID(ctx, userID, recipeID)
}

// ListSaved returns the user's bookmarked recipes, newest bookmark first.
func (s *RecipeService) ListSaved(ctx context.Context, userID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchPersisted searches recipes that were written to the database. On
// postgres it combines keyword matching with embedding-distance ordering;
// elsewhere it falls back to plain keyword matching.
func (s *RecipeService) SearchPersisted(ctx context.Context, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe

	dbQuery := s.db.WithContext(ctx)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.
				Where("LOWER(title) LIKE ? OR LOWER(tags::text) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like, like).
				Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
				})
		} else {
			dbQuery = dbQuery.
				Where("LOWER(title) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(ingredients) LIKE ?", like, like, like)
		}
	}

	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
