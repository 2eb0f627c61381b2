package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/kaloraat/auth-api/internal/crypto"
	"github.com/kaloraat/auth-api/internal/mailer"
	"github.com/kaloraat/auth-api/internal/storage"
)

type Config struct {
	Port      string
	Env       string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	JWTExpiry time.Duration

	Mail mailer.Config
	S3   storage.Config
}

// Load reads configuration from the environment once at startup. Business
// logic never touches the environment directly; everything is passed in
// through constructors.
func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8000"),
		Env:       getEnv("ENV", "development"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:   getEnv("MONGO_DB", "auth_api"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: crypto.TokenTTL,
		Mail: mailer.Config{
			Provider:     getEnv("EMAIL_PROVIDER", "smtp"),
			From:         getEnv("EMAIL_FROM", "noreply@localhost"),
			SendGridKey:  os.Getenv("SENDGRID_KEY"),
			SMTPHost:     getEnv("SMTP_HOST", "127.0.0.1"),
			SMTPPort:     getEnv("SMTP_PORT", "25"),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
		S3: storage.Config{
			Region:       getEnv("S3_REGION", "us-east-1"),
			Bucket:       getEnv("S3_BUCKET", "profile-images"),
			BaseEndpoint: os.Getenv("S3_ENDPOINT"),
			AccessKey:    os.Getenv("S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("S3_SECRET_KEY"),
			PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		},
	}

	// The token secret must be explicit everywhere except local development.
	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			slog.Error("JWT_SECRET must be set")
			os.Exit(1)
		}
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
