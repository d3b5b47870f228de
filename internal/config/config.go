package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	CookieConfig
	APIConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
	GetServerBaseURL() string
	GetClientBaseURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	Cors
	Cookies
	API
}

func New() Config {
	return mainConfig{}
}

// Load reads an optional .env file into the process environment before the
// config is built. Variables already set in the environment win.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("[config Load] failed to load %s: %w", envFile, err)
			}
		}
	}
	return New(), nil
}
