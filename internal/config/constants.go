// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "algo-review-keep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultDatabaseDriver   = "postgres"
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultAppReviewLimit   = 20
	DefaultRecentReviews    = 5
	DefaultAuthEnabled      = false
	DefaultMailerType       = "log"
	DefaultFirstReviewGrace = 24 * time.Hour
	DefaultWeekHorizonDays  = 7
	DefaultLoadHorizonDays  = 14
	DefaultTimezone         = "UTC"
)
