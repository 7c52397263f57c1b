package config

import (
	"os"
	"time"
)

// Config carries everything the storefront core needs from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// collaborator backends
	RecoBaseURL    string
	CatalogBaseURL string

	HTTPTimeout time.Duration
}

func Load() Config {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	recoURL := os.Getenv("RECO_SERVICE_URL")
	if recoURL == "" {
		recoURL = "http://127.0.0.1:8000"
	}

	catalogURL := os.Getenv("CATALOG_SERVICE_URL")
	if catalogURL == "" {
		catalogURL = "http://127.0.0.1:8081/api"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	return Config{
		Addr:           addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RecoBaseURL:    recoURL,
		CatalogBaseURL: catalogURL,
		HTTPTimeout:    timeout,
	}
}
