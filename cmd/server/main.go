package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/api"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/config"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/database"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/mailer"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/service"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting blog server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, log)

	// Session signing and outbound mail
	sessions := auth.NewSessions(cfg.Session.Secret, cfg.Session.Lifetime)
	mail := mailer.New(&cfg.Mail, log)

	// Initialize router
	router := api.NewRouter(services, repos.User, sessions, mail, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
