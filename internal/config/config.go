// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials / iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// ScheduleConfig は期日判定・分類の設定
type ScheduleConfig struct {
	FirstReviewGrace time.Duration `mapstructure:"first_review_grace"`
	WeekHorizonDays  int           `mapstructure:"week_horizon_days"`
	LoadHorizonDays  int           `mapstructure:"load_horizon_days"`
	Timezone         string        `mapstructure:"timezone"`
}

type Config struct {
	Database struct {
		Driver string `mapstructure:"driver"` // postgres / sqlite
		URL    string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		ReviewLimit   int `mapstructure:"review_limit"`   // 1回に返す復習対象の上限
		RecentReviews int `mapstructure:"recent_reviews"` // 復習対象ごとに添付する直近の復習数
	} `mapstructure:"app"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	CORS   CORSConfig `mapstructure:"cors"`
	Mailer struct {
		Type string `mapstructure:"type"` // log / smtp / ses
	} `mapstructure:"mailer"`
	SMTP SMTPConfig `mapstructure:"smtp"`
	SES  SESConfig  `mapstructure:"ses"`
	Cron struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"cron"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞付きの環境変数で上書き可能
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("cron.secret", "CRON_SECRET")
	v.BindEnv("jwt.secret_key", "JWT_SECRET")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
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
	if err := cfg.Validate(); err != nil {
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("app.review_limit", DefaultAppReviewLimit)
	v.SetDefault("app.recent_reviews", DefaultRecentReviews)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("mailer.type", DefaultMailerType)
	v.SetDefault("schedule.first_review_grace", DefaultFirstReviewGrace)
	v.SetDefault("schedule.week_horizon_days", DefaultWeekHorizonDays)
	v.SetDefault("schedule.load_horizon_days", DefaultLoadHorizonDays)
	v.SetDefault("schedule.timezone", DefaultTimezone)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-User-ID"})
	v.SetDefault("cors.max_age", 300)
}

// Validate は設定値の整合性を確認します
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if c.App.ReviewLimit <= 0 {
		return fmt.Errorf("config: app.review_limit must be positive, got %d", c.App.ReviewLimit)
	}
	if c.Schedule.FirstReviewGrace < 0 {
		return fmt.Errorf("config: schedule.first_review_grace must not be negative")
	}
	if c.Schedule.WeekHorizonDays <= 0 || c.Schedule.LoadHorizonDays <= 0 {
		return fmt.Errorf("config: schedule horizons must be positive")
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if c.Auth.Enabled && c.JWT.SecretKey == "" {
		return fmt.Errorf("config: jwt.secret_key is required when auth is enabled")
	}
	return nil
}

// Location は schedule.timezone を *time.Location に変換します
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid schedule.timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
