package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"business-directory-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// AppConfig is the configuration loaded at startup.
var AppConfig = Defaults()

type Config struct {
	Port            string
	GinMode         string
	DBDriver        string
	DatabaseURL     string
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	MediaRoot       string
	AllowedOrigins  []string
	// TrustedProxies may set X-Forwarded-For. Empty means client addresses
	// come from the connection only.
	TrustedProxies  []string
	AuthRateLimit   int
	AuthRateWindow  time.Duration
}

// Defaults returns the configuration used when no environment is set.
func Defaults() *Config {
	return &Config{
		Port:            "8000",
		GinMode:         "debug",
		DBDriver:        "sqlite",
		DatabaseURL:     "business_directory.db",
		JWTSecret:       []byte("business_directory_dev_secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		MediaRoot:       "./media",
		AllowedOrigins:  []string{"http://localhost:3000"},
		AuthRateLimit:   3,
		AuthRateWindow:  time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring malformed duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring malformed integer", "key", key, "value", v)
		return fallback
	}
	return n
}

// Load reads the environment, and a .env file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}
	d := Defaults()
	cfg := &Config{
		Port:            getEnv("PORT", d.Port),
		GinMode:         getEnv("GIN_MODE", d.GinMode),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", d.DBDriver)),
		DatabaseURL:     getEnv("DATABASE_URL", d.DatabaseURL),
		JWTSecret:       []byte(getEnv("JWT_SECRET", string(d.JWTSecret))),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", d.AccessTokenTTL),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", d.RefreshTokenTTL),
		MediaRoot:       getEnv("MEDIA_ROOT", d.MediaRoot),
		AllowedOrigins:  d.AllowedOrigins,
		AuthRateLimit:   getInt("AUTH_RATE_LIMIT", d.AuthRateLimit),
		AuthRateWindow:  d.AuthRateWindow,
	}
	if origins := getList("ALLOWED_ORIGINS"); origins != nil {
		cfg.AllowedOrigins = origins
	}
	cfg.TrustedProxies = getList("TRUSTED_PROXIES")
	return cfg
}

// getList splits a comma-separated variable, nil when unset or blank.
func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NewLogger builds the application logger: text while developing, JSON in release.
func NewLogger(mode string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if mode == "release" {
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "sqlite", "":
		dsn := cfg.DatabaseURL
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		// Cascades rely on foreign keys, which sqlite leaves off by default.
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(cfg.DatabaseURL), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Connect opens the database described by cfg.
func Connect(cfg *Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Warn
	if cfg.GinMode == "test" {
		level = logger.Silent
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver != "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDB connects and migrates using AppConfig, exiting on failure.
func InitDB() {
	var err error
	DB, err = Connect(AppConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	slog.Info("database connected and migrated", "driver", AppConfig.DBDriver)
}
