// Package config reads the process configuration from the environment,
// loading a .env file first when one exists.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	SessionSecret string
	Production    bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("no .env file found, using environment variables")
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017/fotobox"),
		MongoDB:        getenv("MONGO_DB", "fotobox"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "fotobox-files"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		Production:     os.Getenv("APP_ENV") == "production",
	}
	cfg.MinioPublicURL = getenv("MINIO_PUBLIC_URL", "http://"+cfg.MinioEndpoint)

	if cfg.SessionSecret == "" {
		zap.L().Warn("SESSION_SECRET is not set, share sessions will not survive restarts")
		cfg.SessionSecret = randomSecret()
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
