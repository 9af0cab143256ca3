package api

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shree6791/gramvana/config"
	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/service"
	"github.com/shree6791/gramvana/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects the auth middleware's context keys without a real token.
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Next()
	}
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// offlineGenerator builds a generator with no API key: every call resolves
// from the local fallback table, so tests never touch the network.
func offlineGenerator() *service.Generator {
	llm := service.NewLLMService(&config.Config{})
	return service.NewGenerator(llm, service.NewRecipeCache(service.DefaultCacheSize), false)
}

type stubProfileService struct {
	ctx        types.ProfileContext
	ctxErr     error
	updated    types.ProfileContext
	synced     bool
	updateErr  error
	lastUpdate *types.UpdateProfileRequest
}

func (s *stubProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return &models.UserProfile{UserID: userID, BodyWeight: s.ctx.BodyWeight}, s.ctxErr
}

func (s *stubProfileService) GetContext(ctx context.Context, userID uuid.UUID) (types.ProfileContext, error) {
	return s.ctx, s.ctxErr
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (types.ProfileContext, bool, error) {
	s.lastUpdate = req
	return s.updated, s.synced, s.updateErr
}

type stubRecipeService struct {
	recipes map[string]*models.Recipe
	saved   []models.Recipe
	saveErr error
}

func (s *stubRecipeService) Get(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	if r, ok := s.recipes[recipeID]; ok {
		return r, nil
	}
	return nil, service.ErrRecipeNotFound
}

func (s *stubRecipeService) Persist(ctx context.Context, recipe *models.Recipe) error {
	return nil
}

func (s *stubRecipeService) Save(ctx context.Context, userID string, recipe *models.Recipe) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, *recipe)
	return nil
}

func (s *stubRecipeService) Unsave(ctx context.Context, userID, recipeID string) error {
	out := s.saved[:0]
	for _, r := range s.saved {
		if r.ID != recipeID {
			out = append(out, r)
		}
	}
	s.saved = out
	return nil
}

func (s *stubRecipeService) ListSaved(ctx context.Context, userID string) ([]models.Recipe, error) {
	return s.saved, nil
}

func (s *stubRecipeService) SearchPersisted(ctx context.Context, query string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range s.recipes {
		out = append(out, *r)
	}
	return out, nil
}

var (
	_ service.IProfileService = (*stubProfileService)(nil)
	_ service.IRecipeService  = (*stubRecipeService)(nil)
)
