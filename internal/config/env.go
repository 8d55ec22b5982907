package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised as overrides of the YAML file.
const (
	EnvSource      = "WIKIMIGRATE_SOURCE"
	EnvDestination = "WIKIMIGRATE_DESTINATION"
	EnvToken       = "WIKIMIGRATE_TOKEN"
	EnvBranch      = "WIKIMIGRATE_BRANCH"
	EnvMaxRetries  = "WIKIMIGRATE_MAX_RETRIES"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first .env file found. Existing process variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		return nil
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv(EnvDestination); v != "" {
		cfg.Destination = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.SetToken(v)
	}
	if v := os.Getenv(EnvBranch); v != "" {
		cfg.Branch = v
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Retry.MaxRetries = n
		}
	}
}
