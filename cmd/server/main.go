package main

import (
	"log"
	"net/http"
	"time"

	"github.com/builddost/builddost-api/internal/config"
	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/database"
	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/handlers"
	"github.com/builddost/builddost-api/internal/middleware"
	"github.com/builddost/builddost-api/internal/repository"
	"github.com/builddost/builddost-api/internal/seed"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	store := openStore(cfg)

	// Initialize Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	sessionStore := newSessionStore(cfg)
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	generator := generation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, generation.Config{
		Model:      cfg.OpenAIModel,
		Timeout:    cfg.GenerationTimeout,
		MaxRetries: cfg.GenerationMaxRetries,
	})

	// Initialize services
	userService := services.NewUserService(store.Users)
	projectService := services.NewProjectService(store.Projects, store.Users, generator)
	templateService := services.NewTemplateService(store.Templates)
	componentService := services.NewComponentService(store.Components, generator)
	generationService := services.NewGenerationService(generator)
	exportService := services.NewExportService(store.Templates, store.Projects, export.NewStubGitHubExporter(""))

	demoUser, err := seed.DemoUser(userService)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if cfg.SeedTemplates {
		if _, err := seed.Templates(templateService); err != nil {
			log.Fatalf("Failed to seed templates: %v", err)
		}
	}

	limiter := middleware.NewRateLimiter(cfg.GenerationRateLimit, cfg.GenerationBurst)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(userService),
		User:      handlers.NewUserHandler(userService),
		Project:   handlers.NewProjectHandler(projectService, exportService, demoUser.ID),
		Template:  handlers.NewTemplateHandler(templateService, exportService),
		Component: handlers.NewComponentHandler(componentService),
		AI:        handlers.NewAIHandler(componentService, generationService),
	}, limiter.Middleware())

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore returns the configured repositories, connecting and migrating
// the database when one is used.
func openStore(cfg *config.Config) *repository.Store {
	if cfg.StorageDriver == "memory" {
		log.Println("Using in-memory storage; data is lost on restart")
		return repository.NewMemoryStore()
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return repository.NewGormStore(database.GetDB())
}

func newSessionStore(cfg *config.Config) sessions.Store {
	if cfg.SessionStore != "redis" {
		return cookie.NewStore([]byte(cfg.SessionSecret))
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	return store
}
