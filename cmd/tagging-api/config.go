package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aryannaik/tagging-api/internal/vision"
)

var errMissingAPIKey = errors.New("GOOGLE_API_KEY is required. Set it in .env or as an environment variable")

type config struct {
	GoogleAPIKey       string
	Port               string
	VisionEndpoint     string
	VisionMaxResults   int
	LabelCacheSize     int
	RateLimitPerMinute int
	RateLimitBurst     int
}

func loadConfig() (config, error) {
	_ = godotenv.Load()

	cfg := config{
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		Port:           envOrDefault("PORT", "8000"),
		VisionEndpoint: os.Getenv("VISION_ENDPOINT"),
	}

	var err error
	if cfg.VisionMaxResults, err = envInt("VISION_MAX_RESULTS", vision.DefaultMaxResults); err != nil {
		return config{}, err
	}
	if cfg.LabelCacheSize, err = envInt("LABEL_CACHE_SIZE", 0); err != nil {
		return config{}, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_PER_MINUTE", 120); err != nil {
		return config{}, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 20); err != nil {
		return config{}, err
	}

	if cfg.GoogleAPIKey == "" {
		return config{}, errMissingAPIKey
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}
