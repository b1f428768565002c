// cmd/migrate/main.go
//
// 使い方: migrate [up|down|version]
// PostgreSQL には migrations/ の SQL を適用します。sqlite:// の URL では GORM の AutoMigrate を使います。
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/repository"
	"macrobius_srs/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	// .env は無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", slog.Any("error", err))
	}
	if err := config.LoadConfig(*configDir); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(command, config.Cfg.Database.URL, logger); err != nil {
		logger.Error("Migration failed", slog.String("command", command), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(command, databaseURL string, logger *slog.Logger) error {
	if databaseURL == "" {
		return errors.New("database url is not set")
	}
	if strings.HasPrefix(databaseURL, "sqlite://") {
		return autoMigrate(command, databaseURL, logger)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgxURL(databaseURL))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			logger.Info("No migration has been applied yet")
			return nil
		}
		if verr != nil {
			return verr
		}
		logger.Info("Current schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q (want up, down or version)", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("Schema is already up to date", slog.String("command", command))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Migration applied", slog.String("command", command))
	return nil
}

func autoMigrate(command, databaseURL string, logger *slog.Logger) error {
	if command != "up" {
		return fmt.Errorf("command %q is not supported for sqlite", command)
	}
	db, err := repository.NewDB(databaseURL, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("SQLite schema migrated with GORM")
	return nil
}

// pgxURL は postgres:// を golang-migrate の pgx/v5 ドライバのスキームに変えます
func pgxURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return databaseURL
}
