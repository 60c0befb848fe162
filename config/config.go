package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present; its absence is not an error.
const DefaultEnvFile = ".env"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LogLevel           string `env:"LOG_LEVEL"           env-default:"info" validate:"oneof=debug info warn error"`
	DescriptionPreview int    `env:"DESCRIPTION_PREVIEW" env-default:"50"   validate:"min=1,max=1000"`
	CurrencySymbol     string `env:"CURRENCY_SYMBOL"     env-default:"$"    validate:"required"`
	ExportDir          string `env:"EXPORT_DIR"`
}

// Load reads envFile into the process environment and returns a validated
// Config. An empty envFile means DefaultEnvFile, which may be missing; an
// explicitly named file must exist. Variables already set in the
// environment win over the file.
func Load(envFile string) (*Config, error) {
	const op = "config.Load"

	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: read env file %q: %w", op, envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: read env: %w", op, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: validate: %w", op, err)
	}
	return &cfg, nil
}

// ExportPath places relative export paths under ExportDir when it is set.
func (c *Config) ExportPath(path string) string {
	if c.ExportDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ExportDir, path)
}
