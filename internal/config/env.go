package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// API key environment variables, checked in order.
const (
	EnvAPIKey       = "DOCSCORE_GEMINI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// LoadDotEnv loads variables from a .env file at path into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// APIKeyFromEnv returns the first non-empty API key variable.
func APIKeyFromEnv() string {
	for _, name := range []string{EnvAPIKey, EnvGeminiAPIKey} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
