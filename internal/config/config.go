// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to assemble the application.
type Config struct {
	Addr   string
	WebDir string

	// DatabaseURL selects the PostgreSQL store. Empty runs on the in-memory
	// store, which loses data on restart.
	DatabaseURL string

	StorageDriver  string
	UploadDir      string
	MaxUploadBytes int64
	MinIO          MinIOConfig

	AuthDisabled    bool
	ForwardAuth     bool
	InitialUser     string
	InitialPassword string
	OIDC            OIDCConfig

	UploadRatePerMinute int

	Log LogConfig
}

// MinIOConfig configures the object storage backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OIDCConfig configures SSO login. SSO is enabled when Issuer is set.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// LogConfig configures the zap logger and its rolling file sink.
type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:   env("ADDR", ":8080"),
		WebDir: env("WEB_DIR", "web"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		StorageDriver:  strings.ToLower(env("STORAGE_DRIVER", "disk")),
		UploadDir:      env("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		MinIO: MinIOConfig{
			Endpoint:  env("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    env("MINIO_BUCKET", "weightlog-photos"),
			UseSSL:    envBool("MINIO_USE_SSL", false),
		},

		AuthDisabled:    envBool("AUTH_DISABLED", false),
		ForwardAuth:     envBool("FORWARD_AUTH", false),
		InitialUser:     os.Getenv("INITIAL_USER"),
		InitialPassword: os.Getenv("INITIAL_PASSWORD"),
		OIDC: OIDCConfig{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},

		UploadRatePerMinute: envInt("UPLOAD_RATE_PER_MINUTE", 30),

		Log: LogConfig{
			Level:      env("LOG_LEVEL", "info"),
			Path:       os.Getenv("LOG_PATH"),
			MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: envInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 7),
			Compress:   envBool("LOG_COMPRESS", false),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
