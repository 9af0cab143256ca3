package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shree6791/gramvana/internal/service"
)

// DefaultFeedCount is how many candidate recipes a feed build requests.
const DefaultFeedCount = 3

// RecipeHandler serves the home feed and recipe detail/bookmark routes.
type RecipeHandler struct {
	sessions *service.SessionManager
	recipes  service.IRecipeService
	profiles service.IProfileService
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(sessions *service.SessionManager, recipes service.IRecipeService, profiles service.IProfileService) *RecipeHandler {
	return &RecipeHandler{sessions: sessions, recipes: recipes, profiles: profiles}
}

// BuildFeed handles POST /recipes/feed: (re)generates the user's candidate
// list. On failure the previous feed is retained server-side; the error
// response tells the client to overlay an indicator rather than blank out.
func (h *RecipeHandler) BuildFeed(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count := DefaultFeedCount
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 10"})
			return
		}
		count = n
	}

	profile, err := h.profiles.GetContext(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	session := h.sessions.Session(id.String())
	feed, err := session.BuildFeed(c.Request.Context(), profile, count)
	if err != nil {
		state, _ := session.State()
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "failed to generate recipes",
			"state":   state,
			"recipes": session.Feed(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": feed, "state": service.FeedReady})
}

// GetFeed handles GET /recipes/feed: the current feed narrowed by the active
// filter and query. Never triggers generation.
func (h *RecipeHandler) GetFeed(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session := h.sessions.Session(id.String())
	state, lastErr := session.State()
	resp := gin.H{
		"recipes": session.View(),
		"state":   state,
		"filter":  session.ActiveFilter(),
	}
	if lastErr != nil {
		resp["error"] = lastErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleFilter handles POST /recipes/feed/filter. Filters are mutually
// exclusive; re-selecting the active one clears it. An empty result is a
// legitimate state, not an error; the client offers a reset affordance.
func (h *RecipeHandler) ToggleFilter(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Filter string `json:"filter" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, ok := service.ParseFilter(req.Filter)
	if !ok || kind == service.FilterNone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter"})
		return
	}

	session := h.sessions.Session(id.String())
	view := session.ApplyFilter(kind)
	c.JSON(http.StatusOK, gin.H{"recipes": view, "filter": session.ActiveFilter()})
}

// SearchFeed handles GET /recipes/feed/search?q=. Case-insensitive substring
// match over the already-fetched feed; a blank query restores the full feed.
func (h *RecipeHandler) SearchFeed(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session := h.sessions.Session(id.String())
	view := session.SetQuery(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"recipes": view})
}

// GetRecipe handles GET /recipes/:id: resolves a detail-view navigation from
// cache, session store or database without a second generation call.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id.String(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// SaveRecipe handles POST /recipes/:id/save.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id.String(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipes.Save(c.Request.Context(), id.String(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// UnsaveRecipe handles DELETE /recipes/:id/save.
func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.recipes.Unsave(c.Request.Context(), id.String(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove bookmark"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListSaved handles GET /recipes/saved.
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipes, err := h.recipes.ListSaved(c.Request.Context(), id.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// ListRecipes handles GET /recipes?q=: keyword (and, on postgres,
// embedding-ranked) search over recipes persisted to the database.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.SearchPersisted(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
