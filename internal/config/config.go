// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	ReviewLimit        int `mapstructure:"review_limit"`
	NewItemsPerSession int `mapstructure:"new_items_per_session"`
	TrendWindow        int `mapstructure:"trend_window"`
	MaxIntervalDays    int `mapstructure:"max_interval_days"` // 0 なら srs.MaxIntervalDays (100 年) のみ
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log" | "ses"
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" | "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type ReminderConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Every     time.Duration `mapstructure:"every"`
	StartHour int           `mapstructure:"start_hour"` // この時刻 (ローカル) 以降に送る
	EndHour   int           `mapstructure:"end_hour"`   // この時刻より前に送る
	Location  string        `mapstructure:"location"`
	AppURL    string        `mapstructure:"app_url"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SES      SESConfig      `mapstructure:"ses"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

var Cfg Config

// LoadConfig は path 配下の config.yaml と環境変数 (APP_ 接頭辞) を読み込み、Cfg に格納します
func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL -> database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 秘密情報は接頭辞なしの環境変数でも受け付ける
	v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("auth.enabled", "APP_AUTH_ENABLED", "AUTH_ENABLED")
	v.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY", "JWT_SECRET_KEY")
	v.BindEnv("ses.access_key_id", "APP_SES_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	v.BindEnv("ses.secret_access_key", "APP_SES_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY")

	// 設定ファイルに無いキーも AutomaticEnv で拾えるように既定値を登録しておく
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("mailer.type", DefaultMailerType)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// Auth.Enabled は未設定なら true (有効)
	if !v.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}
	applyDefaults(&cfg)

	if cfg.Auth.Enabled && cfg.JWT.SecretKey == "" {
		return errors.New("config: jwt.secret_key is required when auth is enabled")
	}

	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d", Cfg.App.ReviewLimit)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	log.Printf("Reminders Enabled: %t", Cfg.Reminder.Enabled)

	return nil
}

// applyDefaults は未設定または不正な値を既定値で埋めます
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.App.ReviewLimit <= 0 {
		log.Printf("App review limit not set or invalid, using default '%d'", DefaultAppReviewLimit)
		cfg.App.ReviewLimit = DefaultAppReviewLimit
	}
	if cfg.App.NewItemsPerSession <= 0 {
		cfg.App.NewItemsPerSession = DefaultNewItemsPerSession
	}
	if cfg.App.TrendWindow <= 0 {
		cfg.App.TrendWindow = DefaultTrendWindow
	}
	if cfg.App.MaxIntervalDays < 0 {
		log.Println("App max interval is negative, disabling the cap")
		cfg.App.MaxIntervalDays = 0
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.Reminder.Every <= 0 {
		cfg.Reminder.Every = DefaultReminderEvery
	}
	if cfg.Reminder.StartHour == 0 && cfg.Reminder.EndHour == 0 {
		cfg.Reminder.StartHour = DefaultReminderStartHour
		cfg.Reminder.EndHour = DefaultReminderEndHour
	}
	if cfg.Reminder.Location == "" {
		cfg.Reminder.Location = DefaultReminderLocation
	}
}
