package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/shree6791/gramvana/config"
	"github.com/shree6791/gramvana/internal/api"
	"github.com/shree6791/gramvana/internal/database"
	"github.com/shree6791/gramvana/internal/middleware"
	"github.com/shree6791/gramvana/internal/router"
	"github.com/shree6791/gramvana/internal/server"
	"github.com/shree6791/gramvana/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize services
	store := service.NewSessionStore(redisClient)
	cache := service.NewRecipeCache(service.DefaultCacheSize)
	llm := service.NewLLMService(cfg)
	gen := service.NewGenerator(llm, cache, cfg.RequireBackend)
	sessions := service.NewSessionManager(gen, cfg.GenerationDelay)
	auth := service.NewAuthService(db, cfg.JWTSecret, store, sessions)
	profiles := service.NewProfileService(db)
	recipes := service.NewRecipeService(db, cache, store)
	plans := service.NewMealPlanService(db, gen, store)

	// A body-weight change invalidates the per-slot protein splits of any
	// stored plan for that user.
	profiles.OnWeightChange(func(ctx context.Context, userID uuid.UUID) {
		if err := plans.MarkStale(ctx, userID); err != nil {
			log.Printf("Failed to mark meal plans stale for %s: %v", userID, err)
		}
	})

	// Initialize handlers and routes
	engine := router.SetupRouter(
		api.NewAuthHandler(auth),
		api.NewProfileHandler(profiles),
		api.NewRecipeHandler(sessions, recipes, profiles),
		api.NewMealPlanHandler(plans, profiles),
		auth,
		middleware.NewGenerationRateLimiter(redisClient),
	)

	srv := server.NewServer(engine)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
