package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hostvault/internal/auth"
	"hostvault/internal/config"
	"hostvault/internal/handler"
	"hostvault/internal/repository"
	"hostvault/internal/service"
)

func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	for i := 0; i < maxAttempts; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxAttempts).Msg("failed to connect to database")
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxAttempts, err)
}

func runMigrations(cfg *config.Config) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Warn().Uint("version", uint(version)).Msg("found dirty database state, forcing version")
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := connectWithRetry(appConfig.Database.GetDSN(), 5, time.Second*5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database after retries")
	}
	defer db.Close()

	if err := runMigrations(appConfig); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	auth.Init(appConfig.Auth.JWTSecret)

	userRepo := repository.NewUserRepository(db)
	hostRepo := repository.NewHostRepository(db)
	shareRepo := repository.NewShareRepository(db)
	cascadeRepo := repository.NewCascadeRepository(db)

	accessService := service.NewAccessService(hostRepo, shareRepo)
	permissionService := service.NewPermissionService(hostRepo, accessService)
	shareService := service.NewShareService(shareRepo, hostRepo, userRepo)
	hostService := service.NewHostService(hostRepo, userRepo, permissionService, cascadeRepo)
	userService := service.NewUserService(userRepo, cascadeRepo)

	hostHandler := handler.NewHostHandler(hostService, accessService)
	shareHandler := handler.NewShareHandler(shareService)
	userHandler := handler.NewUserHandler(userService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/hosts", func(r chi.Router) {
			r.Get("/", hostHandler.ListHosts)
			r.Post("/", hostHandler.CreateHost)
			r.Get("/{id}", hostHandler.GetHost)
			r.Put("/{id}", hostHandler.UpdateHost)
			r.Delete("/{id}", hostHandler.DeleteHost)
			r.Get("/{id}/shares", shareHandler.ListHostShares)
		})

		r.Route("/shares", func(r chi.Router) {
			r.Get("/my", shareHandler.GetMyShares)

			r.Route("/hosts", func(r chi.Router) {
				r.Post("/", shareHandler.CreateHostShare)
				r.Delete("/{id}", shareHandler.RevokeHostShare)
			})

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", shareHandler.CreateFolderShare)
				r.Get("/", shareHandler.ListFolderShares)
				r.Delete("/{id}", shareHandler.RevokeFolderShare)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", appConfig.Server.Port).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start HTTP server")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database connection")
	}

	log.Info().Msg("server exited properly")
}
