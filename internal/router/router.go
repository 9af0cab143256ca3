package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shree6791/gramvana/internal/api"
	"github.com/shree6791/gramvana/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	recipeHandler *api.RecipeHandler,
	mealPlanHandler *api.MealPlanHandler,
	validator middleware.TokenValidator,
	generationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Profile routes
		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Recipe routes
		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.GET("/feed", recipeHandler.GetFeed)
			recipes.POST("/feed", generationLimiter.Middleware(), recipeHandler.BuildFeed)
			recipes.POST("/feed/filter", recipeHandler.ToggleFilter)
			recipes.GET("/feed/search", recipeHandler.SearchFeed)
			recipes.GET("/saved", recipeHandler.ListSaved)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.POST("/:id/save", recipeHandler.SaveRecipe)
			recipes.DELETE("/:id/save", recipeHandler.UnsaveRecipe)
		}

		// Meal plan routes
		plans := protected.Group("/mealplan")
		{
			plans.GET("/:date", mealPlanHandler.GetPlan)
			plans.POST("/:date", generationLimiter.Middleware(), mealPlanHandler.RegeneratePlan)
			plans.GET("/:date/summary", mealPlanHandler.GetSummary)
		}
	}

	return router
}
