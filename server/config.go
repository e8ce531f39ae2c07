package server

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultHost        = "0.0.0.0"
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultETFDataPath = "data/etf_yields.json"
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Host        string
	Port        string
	LogLevel    string
	ETFDataPath string
}

// Addr renders the listen address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadConfig reads configuration from the environment, after loading a
// local .env file when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Host:        getEnvOrDefault("SERVER_HOST", defaultHost),
		Port:        getEnvOrDefault("SERVER_PORT", defaultPort),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		ETFDataPath: getEnvOrDefault("ETF_DATA_PATH", defaultETFDataPath),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
