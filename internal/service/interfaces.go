package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetContext(ctx context.Context, userID uuid.UUID) (types.ProfileContext, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (types.ProfileContext, bool, error)
}

// IRecipeService defines the interface for recipe lookup and bookmarks
type IRecipeService interface {
	Get(ctx context.Context, userID, recipeID string) (*models.Recipe, error)
	Persist(ctx context.Context, recipe *models.Recipe) error
	Save(ctx context.Context, userID string, recipe *models.Recipe) error
	Unsave(ctx context.Context, userID, recipeID string) error
	ListSaved(ctx context.Context, userID string) ([]models.Recipe, error)
	SearchPersisted(ctx context.Context, query string) ([]models.Recipe, error)
}

var (
	_ IProfileService = (*ProfileService)(nil)
	_ IRecipeService  = (*RecipeService)(nil)
)
