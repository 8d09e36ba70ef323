package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type HTTP struct {
	Host              string        `validate:"required"`
	Port              int           `validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `validate:"gt=0"`
	AllowedOrigins    []string      `validate:"dive,required"`
}

type Storage struct {
	Kind             string `validate:"oneof=memory file postgres"`
	ReservationsFile string `validate:"required_if=Kind file"`
	DSN              string `validate:"required_if=Kind postgres"`
}

type Log struct {
	Level string `validate:"oneof=trace debug info warn warning error fatal panic"`
	File  string
}

type Config struct {
	HTTP      HTTP
	Storage   Storage
	Log       Log
	RatesFile string
	SeedDemo  bool
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	conf := &Config{
		HTTP: HTTP{
			Host:              getEnvOrDefault("CAMPSITE_HTTP_HOST", "localhost"),
			Port:              getEnvAsIntOrDefault("CAMPSITE_HTTP_PORT", 8092),                                      //nolint:gomnd
			ReadHeaderTimeout: time.Duration(getEnvAsIntOrDefault("CAMPSITE_READ_HEADER_TIMEOUT", 20)) * time.Second, //nolint:gomnd
			AllowedOrigins:    splitList(getEnvOrDefault("CAMPSITE_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Storage: Storage{
			Kind:             strings.ToLower(getEnvOrDefault("CAMPSITE_STORAGE", StorageFile)),
			ReservationsFile: getEnvOrDefault("CAMPSITE_RESERVATIONS_FILE", "reservas.json"),
			DSN:              os.Getenv("CAMPSITE_DB_DSN"),
		},
		Log: Log{
			Level: strings.ToLower(getEnvOrDefault("CAMPSITE_LOG_LEVEL", "info")),
			File:  os.Getenv("CAMPSITE_LOG_FILE"),
		},
		RatesFile: os.Getenv("CAMPSITE_RATES_FILE"),
		SeedDemo:  getEnvAsBoolOrDefault("CAMPSITE_SEED_DEMO", false),
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return conf, nil
}

func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}

	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}

	return defaultValue
}

func splitList(value string) []string {
	var out []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
