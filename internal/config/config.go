// Package config reads the backend configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL the API is reachable at, e.g. https://split.example.com.
	// Used to build the links in responses.
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// Path of the sqlite database file.
	DBFile string `env:"DB_FILE" envDefault:"data/tripsplit.db"`

	// Address the HTTP server listens on.
	ListenAddress string `env:"LISTEN_ADDRESS" envDefault:":8080"`

	// Mode gin runs in, one of "release" and "debug".
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// Log output format, "json" or "human". When unset, debug mode logs
	// human readable and release mode logs JSON.
	LogFormat string `env:"LOG_FORMAT"`

	// Space separated list of origins allowed for cross-origin requests.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS"`

	// Serves the pprof endpoints under /debug/pprof when set.
	EnablePprof bool `env:"ENABLE_PPROF" envDefault:"false"`
}

// Load reads the configuration from a .env file, if present, and the
// environment. The environment wins.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
