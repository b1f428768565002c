// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "macrobius-srs"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultAppReviewLimit     = 20
	DefaultNewItemsPerSession = 10
	DefaultTrendWindow        = 5
	DefaultAccessTokenTTL     = 24 * time.Hour
	DefaultMailerType         = "log"
	DefaultReminderEvery      = time.Hour
	DefaultReminderStartHour  = 8
	DefaultReminderEndHour    = 20
	DefaultReminderLocation   = "Europe/Berlin"
)
