package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shree6791/gramvana/internal/nutrition"
	"github.com/shree6791/gramvana/internal/service"
	"github.com/shree6791/gramvana/internal/types"
)

// ProfileHandler serves the preferences survey data.
type ProfileHandler struct {
	profiles service.IProfileService
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile. The daily protein target is derived on
// every read, never stored.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pc, err := h.profiles.GetContext(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	resp := gin.H{"profile": pc}
	if pc.BodyWeight > 0 {
		resp["daily_protein_target"] = nutrition.DailyTarget(pc.BodyWeight)
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles PUT /profile. Validation failures are user-visible;
// a failed remote sync is not — the response then carries synced=false and
// the local state stays authoritative.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pc, synced, err := h.profiles.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBodyWeight) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": pc, "synced": synced})
}
