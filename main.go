package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"fight-picks-go/config"
	"fight-picks-go/database"
	"fight-picks-go/handlers"
	"fight-picks-go/logging"
	appmiddleware "fight-picks-go/middleware"
	"fight-picks-go/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	logger := logging.WithPrefix("Main")
	cfg.LogConfiguration()

	db, err := database.Connect(database.Config{
		URI:      cfg.GetMongoURI(),
		Database: cfg.Database.Database,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		logging.Fatalf("Failed to connect to database: %v", err)
	}

	// Repositories
	eventRepo := database.NewMongoEventRepository(db)
	boutRepo := database.NewMongoBoutRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Services
	scoringService := services.NewScoringService()
	pickService := services.NewPickService(pickRepo, eventRepo, boutRepo)
	resultService := services.NewResultService(pickRepo, boutRepo, eventRepo, userRepo, scoringService)
	leaderboardService := services.NewLeaderboardService(userRepo, pickRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, boutRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth.GoogleClientID, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	if cfg.App.IsDevelopment && cfg.App.SeedDemoUsers {
		seeder := services.NewUserSeeder(userRepo)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := seeder.SeedDemoUsers(ctx, 10); err != nil {
			logger.Warnf("Demo user seeding failed: %v", err)
		}
		cancel()
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	pickHandler := handlers.NewPickHandler(pickService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, cfg.App.LeaderboardLimit)
	adminHandler := handlers.NewAdminHandler(resultService, pickService, eventService)
	healthHandler := handlers.NewHealthHandler(db)

	authMiddleware := appmiddleware.NewAuthMiddleware(authService)

	router := mux.NewRouter()
	router.Use(appmiddleware.RequestID)
	router.Use(appmiddleware.SecurityHeaders)
	router.Use(appmiddleware.RequestLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", appmiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", healthHandler.Health).Methods("GET")
	api.HandleFunc("/auth/google", authHandler.GoogleLogin).Methods("POST")
	api.HandleFunc("/events", eventHandler.ListEvents).Methods("GET")
	api.HandleFunc("/events/{eventID:[0-9]+}", eventHandler.GetEvent).Methods("GET")
	api.HandleFunc("/events/{eventID:[0-9]+}/bouts", eventHandler.GetEventBouts).Methods("GET")
	api.HandleFunc("/events/{eventID:[0-9]+}/card", eventHandler.GetEventCard).Methods("GET")
	api.HandleFunc("/bouts/{boutID:[0-9]+}", eventHandler.GetBout).Methods("GET")
	api.HandleFunc("/bouts/{boutID:[0-9]+}/distribution", pickHandler.GetBoutDistribution).Methods("GET")
	api.HandleFunc("/leaderboard", leaderboardHandler.GetGlobalLeaderboard).Methods("GET")
	api.HandleFunc("/leaderboard/events/{eventID:[0-9]+}", leaderboardHandler.GetEventLeaderboard).Methods("GET")

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware.RequireAuth)
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/picks", pickHandler.SubmitPick).Methods("POST")
	authed.HandleFunc("/picks", pickHandler.GetMyPicks).Methods("GET")
	authed.HandleFunc("/bouts/{boutID:[0-9]+}/pick", pickHandler.GetMyPickForBout).Methods("GET")
	authed.HandleFunc("/leaderboard/me", leaderboardHandler.GetMyRank).Methods("GET")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware.RequireAuth)
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/bouts/{boutID:[0-9]+}/result", adminHandler.ApplyResult).Methods("PUT")
	admin.HandleFunc("/bouts/{boutID:[0-9]+}/result", adminHandler.RevertResult).Methods("DELETE")
	admin.HandleFunc("/bouts/{boutID:[0-9]+}/lock", adminHandler.SetBoutLock).Methods("PUT")
	admin.HandleFunc("/events/{eventID:[0-9]+}/lock", adminHandler.LockEventPicks).Methods("POST")
	admin.HandleFunc("/events/{eventID:[0-9]+}/unlock", adminHandler.UnlockEventPicks).Methods("POST")
	admin.HandleFunc("/events/{eventID:[0-9]+}/status", adminHandler.SetEventStatus).Methods("PUT")
	admin.HandleFunc("/events/{eventID:[0-9]+}/timing", adminHandler.UpdateEventTiming).Methods("PUT")
	admin.HandleFunc("/recalculate-stats", adminHandler.RecalculateStats).Methods("POST")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		logger.Errorf("Database close failed: %v", err)
	}

	logger.Info("Stopped")
}
