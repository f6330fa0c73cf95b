package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// BaseURL is the recipe service root, including any path prefix.
	BaseURL string
	// Timeout applies to every outbound HTTP request.
	Timeout time.Duration
	// RatePerSec throttles outbound requests; 0 disables the limiter.
	RatePerSec float64
	RateBurst  int
}

// Load reads configuration from the environment, with a .env file as
// fallback when present.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := Config{
		BaseURL:    getenv("FORKFUL_API_URL", "http://localhost:10000"),
		Timeout:    30 * time.Second,
		RatePerSec: 0,
		RateBurst:  1,
	}
	if v := os.Getenv("FORKFUL_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("FORKFUL_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RatePerSec = f
			cfg.RateBurst = int(f) + 1
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
