package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shree6791/gramvana/internal/service"
)

// MealPlanHandler serves the per-day meal plan routes.
type MealPlanHandler struct {
	plans    *service.MealPlanService
	profiles service.IProfileService
}

// NewMealPlanHandler creates a new MealPlanHandler instance.
func NewMealPlanHandler(plans *service.MealPlanService, profiles service.IProfileService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, profiles: profiles}
}

// GetPlan handles GET /mealplan/:date. A stored plan is returned as-is,
// stale flag included; when none exists one is built on demand, provided the
// user has meal planning enabled.
func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date := c.Param("date")

	plan, err := h.plans.Get(c.Request.Context(), id, date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal plan"})
		return
	}
	if plan != nil {
		c.JSON(http.StatusOK, gin.H{"plan": plan})
		return
	}

	h.buildAndRespond(c, date)
}

// RegeneratePlan handles POST /mealplan/:date: rebuilds the plan even when a
// stored one exists, replacing it.
func (h *MealPlanHandler) RegeneratePlan(c *gin.Context) {
	h.buildAndRespond(c, c.Param("date"))
}

// GetSummary handles GET /mealplan/:date/summary.
func (h *MealPlanHandler) GetSummary(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), id, c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal plan"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no meal plan for date"})
		return
	}

	consumed, percent, err := h.plans.Summary(plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":         plan.Date,
		"consumed":     consumed,
		"daily_target": plan.DailyTarget,
		"percent":      percent,
		"stale":        plan.Stale,
	})
}

func (h *MealPlanHandler) buildAndRespond(c *gin.Context, date string) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.GetContext(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if !profile.EnableMealPlanning {
		c.JSON(http.StatusForbidden, gin.H{"error": "meal planning is disabled for this profile"})
		return
	}
	if profile.BodyWeight <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body weight required for meal planning"})
		return
	}

	plan, err := h.plans.Build(c.Request.Context(), id, profile, date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to build meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
