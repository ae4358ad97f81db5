package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// DumperConfig holds the ambient configuration for the dumpfiles command.
// It never affects which paths are dumped.
type DumperConfig struct {
	// EnvFile is the dotenv file consulted before reading the environment.
	EnvFile string
	// DBPath enables the run event log when non-empty.
	DBPath string
}

// EventLogEnabled reports whether runs should be recorded.
func (c DumperConfig) EventLogEnabled() bool { return c.DBPath != "" }

// LoadDumperConfig reads configuration from environment variables, after
// loading an optional dotenv file. Variables already set in the environment
// take precedence over the file. A missing file is not an error.
func LoadDumperConfig() (DumperConfig, error) {
	envFile := envOrDefault("DUMPER_ENV_FILE", defaultEnvFile)
	if err := loadEnvFile(envFile); err != nil {
		return DumperConfig{}, err
	}
	return DumperConfig{
		EnvFile: envFile,
		DBPath:  os.Getenv("DUMPER_DB_PATH"),
	}, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("DUMPER_ENV_FILE %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("DUMPER_ENV_FILE %s: %w", path, err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
