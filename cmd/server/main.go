package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"assistant-service/internal/ai"
	"assistant-service/internal/app"
	"assistant-service/internal/assistant"
	"assistant-service/internal/calendar"
	"assistant-service/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET required")
	}

	logger := app.InitLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	generator, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("failed to create text generator: %v", err)
	}

	provider := calendar.NewGoogleProvider(cfg.ProviderTimeout())

	appInstance := &app.App{
		DB:         pool,
		Config:     cfg,
		Log:        logger,
		Provider:   provider,
		Classifier: assistant.NewClassifier(generator, logger),
		Assistant:  assistant.New(provider, generator, loc, logger),
		Location:   loc,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(app.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// OAuth routes (must be before auth middleware)
	router.GET("/auth/google", appInstance.GoogleAuthHandler)
	router.GET("/auth/google/callback", appInstance.GoogleOAuth2CallbackHandler)

	authenticated := router.Group("/")
	authenticated.Use(app.AuthMiddleware(cfg.JWTSecret))
	{
		authenticated.POST("/chat", appInstance.ChatHandler)
		authenticated.GET("/dashboard", appInstance.DashboardHandler)

		cal := authenticated.Group("/calendar")
		{
			cal.GET("/events", appInstance.GetCalendarEventsHandler)
			cal.GET("/slots", appInstance.GetFreeSlotsHandler)
			cal.POST("/event", appInstance.CreateEventHandler)
		}

		meetings := authenticated.Group("/meetings")
		{
			meetings.POST("", appInstance.CreateMeetingHandler)
			meetings.GET("", appInstance.ListMeetingsHandler)
		}
	}

	server.Run(router, cfg.Port)
}
