package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables
// and, optionally, a config file named by CONFIG_FILE.
type Config struct {
	Env        string
	ServerPort string

	DataDir       string
	UsersFile     string
	CustomersFile string

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSOrigin string

	RateLimitEnabled bool
	RateLimitWindow  time.Duration
	RateLimitMax     int

	RedisAddr string
	RedisDB   int
	RedisPass string

	LogLevel  string
	LogFormat string

	DBDriver    string
	DatabaseDSN string

	ShutdownTimeout time.Duration
}

var defaults = map[string]interface{}{
	"APP_ENV":            "development",
	"PORT":               "3000",
	"DATA_DIR":           "data",
	"USERS_FILE":         "users.json",
	"CUSTOMERS_FILE":     "customers.json",
	"JWT_SECRET":         "your-super-secret-jwt-key-at-least-32-characters-long-for-testing-purposes",
	"JWT_EXPIRES_IN":     "1h",
	"CORS_ORIGIN":        "*",
	"RATE_LIMIT_ENABLED": false,
	"RATE_LIMIT_WINDOW":  "15m",
	"RATE_LIMIT_MAX":     100,
	"REDIS_ADDR":         "",
	"REDIS_DB":           0,
	"REDIS_PASSWORD":     "",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"DB_DRIVER":          "mysql",
	"DATABASE_DSN":       "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local",
	"SHUTDOWN_TIMEOUT":   "10s",
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Env:              v.GetString("APP_ENV"),
		ServerPort:       v.GetString("PORT"),
		DataDir:          v.GetString("DATA_DIR"),
		UsersFile:        v.GetString("USERS_FILE"),
		CustomersFile:    v.GetString("CUSTOMERS_FILE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpiresIn:     v.GetDuration("JWT_EXPIRES_IN"),
		CORSOrigin:       v.GetString("CORS_ORIGIN"),
		RateLimitEnabled: v.GetBool("RATE_LIMIT_ENABLED"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisDB:          v.GetInt("REDIS_DB"),
		RedisPass:        v.GetString("REDIS_PASSWORD"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		DBDriver:         v.GetString("DB_DRIVER"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be a positive duration, got %q", v.GetString("JWT_EXPIRES_IN"))
	}
	if cfg.RateLimitEnabled {
		if cfg.RateLimitMax <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
		}
		if cfg.RateLimitWindow <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration, got %q", v.GetString("RATE_LIMIT_WINDOW"))
		}
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }
