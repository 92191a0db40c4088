// Package config loads importer configuration from environment variables
// and an optional YAML file. Environment variables take precedence over
// file values, file values over defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Import   ImportConfig   `yaml:"import" envconfig:"IMPORT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
}

// ImportConfig contains ingestion configuration
type ImportConfig struct {
	InputDir    string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/in" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/out" validate:"required"`
	Delimiter   string `yaml:"delimiter" envconfig:"DELIMITER" default:","`
	SheetName   string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	DefaultYear int    `yaml:"default_year" envconfig:"DEFAULT_YEAR" validate:"omitempty,min=2000,max=2100"`
	Workers     int    `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"min=1,max=64"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/importer.log"`
}

// DatabaseConfig contains the optional Postgres sink configuration.
// An empty DSN disables persistence and the importer only writes files.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

var validate = validator.New()

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BFKO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if isEnvUnset("BFKO_IMPORT_INPUT_DIR") && fileConfig.Import.InputDir != "" {
		envConfig.Import.InputDir = fileConfig.Import.InputDir
	}
	if isEnvUnset("BFKO_IMPORT_OUTPUT_DIR") && fileConfig.Import.OutputDir != "" {
		envConfig.Import.OutputDir = fileConfig.Import.OutputDir
	}
	if isEnvUnset("BFKO_IMPORT_DELIMITER") && fileConfig.Import.Delimiter != "" {
		envConfig.Import.Delimiter = fileConfig.Import.Delimiter
	}
	if isEnvUnset("BFKO_IMPORT_SHEET_NAME") && fileConfig.Import.SheetName != "" {
		envConfig.Import.SheetName = fileConfig.Import.SheetName
	}
	if isEnvUnset("BFKO_IMPORT_DEFAULT_YEAR") && fileConfig.Import.DefaultYear != 0 {
		envConfig.Import.DefaultYear = fileConfig.Import.DefaultYear
	}
	if isEnvUnset("BFKO_IMPORT_WORKERS") && fileConfig.Import.Workers != 0 {
		envConfig.Import.Workers = fileConfig.Import.Workers
	}
	if isEnvUnset("BFKO_LOGGING_LEVEL") && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if isEnvUnset("BFKO_LOGGING_OUTPUT") && fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if isEnvUnset("BFKO_LOGGING_FILE_PATH") && fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if isEnvUnset("BFKO_DATABASE_DSN") && fileConfig.Database.DSN != "" {
		envConfig.Database.DSN = fileConfig.Database.DSN
	}
	return envConfig
}

func isEnvUnset(key string) bool {
	_, ok := os.LookupEnv(key)
	return !ok
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	if len(c.Import.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Import.Delimiter)
	}
	return nil
}

// findConfigFile returns the path to the config file
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			InputDir:  "data/in",
			OutputDir: "data/out",
			Delimiter: ",",
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/importer.log",
		},
	}
}
