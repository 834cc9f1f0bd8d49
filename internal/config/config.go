package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Output struct {
		// Path is the default output path for graph-producing commands,
		// without extension; the format decides the suffix.
		Path   string `yaml:"path"`
		Format string `yaml:"format"`
	} `yaml:"output"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Stats struct {
		// ValidateSchema runs the structural schema check before decoding.
		ValidateSchema bool `yaml:"validate_schema"`
	} `yaml:"stats"`
	History struct {
		// Path of the SQLite database recording analysis runs.
		Path string `yaml:"path"`
	} `yaml:"history"`
}

func defaults() *Config {
	var cfg Config
	cfg.Output.Path = "webpackq"
	cfg.Output.Format = "json"
	cfg.Log.Level = "info"
	cfg.Stats.ValidateSchema = true
	cfg.History.Path = "webpackq.db"
	return &cfg
}

// LoadConfig reads the YAML config at path, layered under .env and
// WEBPACKQ_* environment variables. A missing config file is fine; defaults
// apply.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := defaults()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with environment variables if present
	if path := os.Getenv("WEBPACKQ_OUTPUT_PATH"); path != "" {
		cfg.Output.Path = path
	}
	if format := os.Getenv("WEBPACKQ_OUTPUT_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if level := os.Getenv("WEBPACKQ_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if validate := os.Getenv("WEBPACKQ_VALIDATE_SCHEMA"); validate != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(validate)); err == nil {
			cfg.Stats.ValidateSchema = b
		}
	}
	if db := os.Getenv("WEBPACKQ_HISTORY_DB"); db != "" {
		cfg.History.Path = db
	}

	return cfg, nil
}
