package types

import "github.com/shree6791/gramvana/internal/models"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for profile edits. Nil
// pointer fields are left untouched.
type UpdateProfileRequest struct {
	DietaryPreferences []string `json:"dietary_preferences"`
	HealthGoal         *string  `json:"health_goal"`
	Allergies          []string `json:"allergies"`
	EnableMealPlanning *bool    `json:"enable_meal_planning"`
	BodyWeight         *int     `json:"body_weight"`
}

// ProfileContext is the generation-relevant slice of a user's profile. It is
// assembled once per request and passed explicitly to the allocator, the
// generator and the session; nothing reads profile state ambiently.
type ProfileContext struct {
	DietaryPreferences []string `json:"dietary_preferences"`
	HealthGoal         string   `json:"health_goal"`
	Allergies          []string `json:"allergies"`
	BodyWeight         int      `json:"body_weight"`
	EnableMealPlanning bool     `json:"enable_meal_planning"`
}

// RecipeRequest is the input contract of the recipe generator.
type RecipeRequest struct {
	DietaryPreferences []string        `json:"dietary_preferences"`
	HealthGoal         string          `json:"health_goal"`
	Allergies          []string        `json:"allergies"`
	MealType           models.MealType `json:"meal_type,omitempty"`
	ProteinTarget      int             `json:"protein_target,omitempty"`
	BodyWeight         int             `json:"body_weight,omitempty"`
}

// Request builds a generator request from the profile for the given slot. A
// zero proteinTarget leaves the target to be derived from body weight.
func (p ProfileContext) Request(mealType models.MealType, proteinTarget int) RecipeRequest {
	return RecipeRequest{
		DietaryPreferences: p.DietaryPreferences,
		HealthGoal:         p.HealthGoal,
		Allergies:          p.Allergies,
		MealType:           mealType,
		ProteinTarget:      proteinTarget,
		BodyWeight:         p.BodyWeight,
	}
}
