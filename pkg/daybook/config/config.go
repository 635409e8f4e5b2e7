package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration, read from the environment with an
// optional .env file.
type Config struct {
	DBPath    string
	Port      string
	JWTSecret string
}

// Load reads configuration. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:    getEnv("DAYBOOK_DB_PATH", "daybook.db"),
		Port:      getEnv("DAYBOOK_PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
