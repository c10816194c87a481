package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL  = "http://api.openweathermap.org"
	DefaultTimeout = 10 * time.Second
	DefaultPort    = "8080"
)

// Config holds the runtime settings of the weather app
type Config struct {
	APIKey   string
	APIURL   string
	Timeout  time.Duration
	Port     string
	LogLevel string
}

// Load reads the dotenv file (if any) into the process environment and
// builds a Config from it.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	return FromEnv()
}

// LoadEnvFile loads variables from path without overriding ones already
// set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from the process environment. Empty variables
// fall back to their defaults.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("WEATHER_API_URL", DefaultAPIURL)
	v.SetDefault("WEATHER_TIMEOUT", DefaultTimeout.String())
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("LOG_LEVEL", "info")

	// "0" turns the timeout off; anything unparsable is rejected
	timeout, err := time.ParseDuration(v.GetString("WEATHER_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid WEATHER_TIMEOUT: negative duration %s", timeout)
	}

	return &Config{
		APIKey:   v.GetString("WEATHER_API_KEY"),
		APIURL:   v.GetString("WEATHER_API_URL"),
		Timeout:  timeout,
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}, nil
}
