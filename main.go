package main

import (
	"context"
	"log"

	"github.com/eventhub/backend/internal/client"
	"github.com/eventhub/backend/internal/config"
	"github.com/eventhub/backend/internal/db"
	"github.com/eventhub/backend/internal/handler"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	googleService := service.NewGoogleService(store, authService, cfg.Google)
	eventService := service.NewEventService(store)
	calendarService := service.NewCalendarService(
		store,
		service.NewOAuthRefresher(googleService.OAuthConfig()),
		client.NewCalendarClient(),
	)

	authHandler := handler.NewAuthHandler(authService, googleService, cfg.Frontend.BaseURL)
	eventHandler := handler.NewEventHandler(eventService, calendarService)
	dashboardHandler := handler.NewDashboardHandler(eventService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware())

	router.GET("/health", handler.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	api := router.Group("/api")
	{
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.GET("/categories", eventHandler.ListCategories)

		authed := api.Group("", handler.AuthMiddleware(authService))
		{
			authed.POST("/events/signup", eventHandler.SignUp)
			authed.POST("/events/:id/add-to-google-calendar", eventHandler.AddToGoogleCalendar)
		}

		dashboard := api.Group("/dashboard", handler.AuthMiddleware(authService), handler.StaffOnly())
		{
			dashboard.POST("/events", dashboardHandler.CreateEvent)
			dashboard.GET("/events", dashboardHandler.ListEvents)
			dashboard.GET("/events/:id", dashboardHandler.GetEvent)
			dashboard.PUT("/events/:id", dashboardHandler.UpdateEvent)
			dashboard.DELETE("/events/:id", dashboardHandler.DeleteEvent)
		}
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
