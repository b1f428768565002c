// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/handlers"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/reminder"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/store"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// .env は開発用。無ければ環境変数だけを使う
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		tempLogger.Warn("Failed to load .env", slog.Any("error", err))
	}

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// Database
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()
	if repository.IsSQLite(db) {
		// PostgreSQL は cmd/migrate で事前に適用する
		if err := repository.AutoMigrate(db); err != nil {
			slog.Error("Error migrating sqlite schema", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Dependency Injection
	learnerRepo := repository.NewGormLearnerRepository()
	vocabRepo := repository.NewGormVocabularyRepository()
	recordRepo := repository.NewGormRecordRepository()
	recordStore := store.NewGormStore(db, recordRepo)

	scheduler, err := srs.NewScheduler(srs.Config{MaxIntervalDays: config.Cfg.App.MaxIntervalDays})
	if err != nil {
		slog.Error("Invalid scheduler configuration", slog.Any("error", err))
		os.Exit(1)
	}

	rootCtx := middleware.WithLogger(context.Background(), logger)
	mailer, err := service.NewMailer(rootCtx, &config.Cfg)
	if err != nil {
		slog.Error("Error initializing mailer", slog.Any("error", err))
		os.Exit(1)
	}

	learnerService := service.NewLearnerService(db, learnerRepo, mailer, &config.Cfg)
	vocabService := service.NewVocabularyService(db, vocabRepo)
	reviewService := service.NewReviewService(db, recordStore, vocabRepo, scheduler, &config.Cfg)

	if config.Cfg.Reminder.Enabled {
		rem, err := reminder.New(db, learnerRepo, recordStore, mailer, config.Cfg.Reminder, logger)
		if err != nil {
			slog.Error("Invalid reminder configuration", slog.Any("error", err))
			os.Exit(1)
		}
		if err := rem.Start(); err != nil {
			slog.Error("Error starting reminder job", slog.Any("error", err))
			os.Exit(1)
		}
		defer rem.Stop()
	}

	h := handlers.Handlers{
		Learner:    handlers.NewLearnerHandler(learnerService),
		Vocabulary: handlers.NewVocabularyHandler(vocabService),
		Review:     handlers.NewReviewHandler(reviewService),
	}
	r := newRouter(logger, db, h, authMiddleware(config.Cfg))

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON でログを出します
func newLogger(level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info", "":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}

// authMiddleware は認証が無効なら X-Learner-ID ヘッダーをそのまま信用する開発用ミドルウェアを返します
func authMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	if !cfg.Auth.Enabled {
		slog.Warn("Authentication is disabled. Using DEV learner header middleware")
		return middleware.DevLearnerContextMiddleware
	}
	slog.Info("Applying JWT authentication middleware")
	return middleware.JWTAuthMiddleware(cfg.JWT.SecretKey)
}

func newRouter(logger *slog.Logger, db *gorm.DB, h handlers.Handlers, auth func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.RegisterRoutes(r, h, auth)
	r.Get("/health", healthHandler(db))
	return r
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
