package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/cache"
	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/internal/router"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/anonto42/sach-wave/backend/pkg/config"
	"github.com/anonto42/sach-wave/backend/pkg/firebase"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStorage()

	var ranker services.Ranker
	if cfg.RedisURL != "" {
		client, err := cache.InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		ranker = cache.NewLeaderboard(client)
	}

	authOpts := services.AuthOptions{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		AccessCode: cfg.AccessCode,
	}
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case err == nil:
		authOpts.Firebase = firebaseApp.AuthClient
	case errors.Is(err, firebase.ErrNotConfigured):
		log.Println("Firebase sign-in disabled: no credentials configured.")
	default:
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	svc := router.NewServices(repos, ranker, authOpts)
	if ranker != nil {
		if err := svc.Gamification.SyncLeaderboard(ctx); err != nil {
			slog.Warn("leaderboard sync failed", "err", err)
		}
	}

	e := router.New(svc)
	config.SetupMiddleware(e, cfg)

	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "err", err)
		}
	}()

	go func() {
		log.Printf("Server starting on port %s (%s storage)...", cfg.Port, cfg.StorageDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Metrics server shutdown error: %v", err)
	}
}

// openStorage builds the repository set for the configured driver and returns a closer for it.
func openStorage(ctx context.Context, cfg *config.Config) (*repositories.Set, func(), error) {
	if cfg.StorageDriver == config.StorageFile {
		store, err := recordstore.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using JSON record store in %s", store.Dir())
		return repositories.NewFileSet(store), func() {}, nil
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		db.CloseDB()
		return nil, nil, err
	}
	if err := repositories.EnsureMongoIndexes(ctx, db.MongoDB); err != nil {
		db.CloseDB()
		return nil, nil, err
	}
	return repositories.NewDatabaseSet(db.Postgres, db.MongoDB), db.CloseDB, nil
}
