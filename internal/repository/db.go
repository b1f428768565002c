package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"macrobius_srs/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlitePrefix の付いたURLは SQLite として開く (例: sqlite://data/srs.db)
const sqlitePrefix = "sqlite://"

// NewDB はURLに応じて PostgreSQL か SQLite に接続します
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	// APP_ENV=dev のときは全クエリを出す
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}

	gormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(gormLogLevel)

	db, err := gorm.Open(dialectorFor(databaseURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if IsSQLite(db) {
		// SQLite は書き込みが1本なので接続を絞る
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("dialect", db.Dialector.Name()))
	return db, nil
}

func dialectorFor(databaseURL string) gorm.Dialector {
	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		return sqlite.Open(path)
	}
	return postgres.Open(databaseURL)
}

// IsSQLite は接続先が SQLite かどうかを返します
func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}

// Models はスキーマ管理対象のモデル一覧です (依存される側から順に並べる)
func Models() []interface{} {
	return []interface{}{
		&model.Learner{},
		&model.VocabularyItem{},
		&model.ReviewRecordRow{},
	}
}

// AutoMigrate は GORM のモデル定義からテーブルを作成します。
// PostgreSQL では migrations/ の SQL を使い、これは SQLite とテスト用です
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
