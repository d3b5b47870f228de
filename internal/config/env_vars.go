package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	PortEnvVar          = "PORT"
	appNameVar          = "APP_NAME"
	envVar              = "ENV"
	serverBaseURLEnvVar = "SERVER_BASE_URL"
	clientBaseURLEnvVar = "CLIENT_BASE_URL"

	EnvDevelopment = "DEV"
	EnvProduction  = "PRODUCTION"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(PortEnvVar, "3000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Tracker")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, EnvDevelopment))
}

func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == EnvProduction
}

// GetServerBaseURL is the backend API root used by the edge server itself
// (e.g. an internal cluster address).
func (EnvVars) GetServerBaseURL() string {
	return strings.TrimRight(GetEnv(serverBaseURLEnvVar, "http://localhost:8080"), "/")
}

// GetClientBaseURL is the backend API root handed to the browser.
func (e EnvVars) GetClientBaseURL() string {
	return strings.TrimRight(GetEnv(clientBaseURLEnvVar, e.GetServerBaseURL()), "/")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
