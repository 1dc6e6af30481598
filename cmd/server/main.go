package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Skufu/heartrisk/internal/handlers"
	"github.com/Skufu/heartrisk/internal/logging"
	"github.com/Skufu/heartrisk/internal/model"
	"github.com/Skufu/heartrisk/internal/predict"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	ArtifactDir string
	DatabaseURL string
	EnableDB    bool
}

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	logging.Init("heartrisk", cfg.Env, cfg.LogLevel)

	// Artifacts are required before serving anything.
	artifacts, err := model.Load(cfg.ArtifactDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ArtifactDir).Msg("model artifacts unusable")
	}
	log.Info().
		Str("dir", cfg.ArtifactDir).
		Int("features", len(artifacts.Columns())).
		Msg("model artifacts loaded")

	ctx := context.Background()
	var db HealthChecker
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()
		db = pool
	}

	router := setupRouter(db, predict.NewService(artifacts))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("server listening")
	waitForShutdown(server)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ArtifactDir: os.Getenv("ARTIFACT_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = detectArtifactDir()
	}

	return cfg, nil
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func setupRouter(db HealthChecker, svc handlers.Predictor) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(handlers.Templates())
	router.Use(
		handlers.RequestLogger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", handlers.RequestIDHeader},
			MaxAge:       12 * time.Hour,
		}),
	)

	predictHandler := handlers.NewPredictHandler(svc)
	router.GET("/", predictHandler.Index)
	router.POST("/predict", predictHandler.PredictForm)

	api := router.Group("/api/v1")
	{
		api.POST("/predict", predictHandler.PredictJSON)
		api.GET("/schema", predictHandler.Schema)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		features := len(svc.Columns())
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "features": features, "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"features": features,
				"db":       fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"features": features,
			"db":       "ok",
		})
	})

	return router
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// detectArtifactDir looks for artifacts/ next to the working directory or up to
// two levels above it, so the server runs from the repo root or cmd/server.
func detectArtifactDir() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "artifacts"
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "artifacts", model.FeatureColumnsFile)) {
			return filepath.Join(dir, "artifacts")
		}
	}

	return filepath.Join(startDir, "artifacts")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
