// Package config loads the service configuration from the environment,
// with an optional .env overlay for local development.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the service.
type Config struct {
	Addr          string        `envconfig:"ADDR" default:":8080"`
	DatabasePath  string        `envconfig:"DATABASE_PATH" default:"properties.db"`
	CORSOrigins   []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	UploadURL     string        `envconfig:"UPLOAD_URL"`
	UploadPreset  string        `envconfig:"UPLOAD_PRESET"`
	UploadTimeout time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"30s"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
