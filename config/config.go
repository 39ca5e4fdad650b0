package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	ListenAddr        string
	APIBaseURL        string
	Env               string
	StateDir          string
	RedisURL          string
	RequestTimeout    time.Duration
	ReconcileInterval time.Duration
}

// Load reads configuration from the .env file and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		ListenAddr:        getEnv("STOREFRONT_ADDR", ":8080"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:5000/api"),
		Env:               getEnv("APP_ENV", "development"),
		StateDir:          getEnv("STATE_DIR", ".storefront"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 10*time.Second),
		ReconcileInterval: getDuration("RECONCILE_INTERVAL", time.Minute),
	}
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %v, using default", key, err)
		return fallback
	}
	return d
}
