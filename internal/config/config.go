// Package config loads application configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Predictor  PredictorConfig  `yaml:"predictor"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `yaml:"host" env:"PREDITOR_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"PREDITOR_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"PREDITOR_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"PREDITOR_WRITE_TIMEOUT" default:"30s"`
	EnableCORS   bool          `yaml:"enable_cors" env:"PREDITOR_ENABLE_CORS" default:"true"`
}

// DatabaseConfig selects and parameterizes the storage backend
type DatabaseConfig struct {
	Type         string `yaml:"type" env:"DATABASE_TYPE" default:"sqlite"`
	DatabasePath string `yaml:"database_path" env:"PREDITOR_DATABASE_PATH" default:"data/preditor.db"`
	Host         string `yaml:"host" env:"POSTGRES_HOST" default:"localhost"`
	Port         int    `yaml:"port" env:"POSTGRES_PORT" default:"5432"`
	Username     string `yaml:"username" env:"POSTGRES_USER" default:"preditor"`
	Password     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database     string `yaml:"database" env:"POSTGRES_DB" default:"imdb"`
	LogQueries   bool   `yaml:"log_queries" env:"DB_LOG_QUERIES" default:"false"`
}

// ClassifierConfig points at the external scoring service
type ClassifierConfig struct {
	URL     string        `yaml:"url" env:"CLASSIFIER_URL" default:"http://localhost:8001"`
	Timeout time.Duration `yaml:"timeout" env:"CLASSIFIER_TIMEOUT" default:"10s"`
}

// IngestConfig parameterizes the offline batch job
type IngestConfig struct {
	SourcePath string `yaml:"source_path" env:"INGEST_SOURCE_PATH" default:"data/movies_data.xlsx"`
}

// PredictorConfig holds prediction behavior switches
type PredictorConfig struct {
	// StrictUnknown rejects requests carrying labels the feature schema
	// does not know instead of silently ignoring them.
	StrictUnknown bool `yaml:"strict_unknown" env:"PREDICTOR_STRICT_UNKNOWN" default:"false"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level" env:"PREDITOR_LOG_LEVEL" default:"info"`
}

var (
	mu      sync.RWMutex
	current = defaultConfig()
)

func defaultConfig() *Config {
	cfg := &Config{}
	// Defaults come from the struct tags so file, env and zero-config
	// startup all agree on them.
	if err := applyEnv(reflect.ValueOf(cfg).Elem(), true); err != nil {
		panic(fmt.Sprintf("invalid default config tags: %v", err))
	}
	return cfg
}

// Load reads configuration from the given YAML file (if it exists) and then
// applies environment variable overrides. An empty path skips the file step.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(reflect.ValueOf(cfg).Elem(), false); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	current = cfg
	return nil
}

// Get returns the current configuration (thread-safe copy).
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	cfg := *current
	return &cfg
}

// applyEnv walks the config struct; defaultsOnly seeds `default` tags,
// otherwise environment variables named by `env` tags win.
func applyEnv(v reflect.Value, defaultsOnly bool) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) {
			if err := applyEnv(field, defaultsOnly); err != nil {
				return err
			}
			continue
		}

		var value string
		if defaultsOnly {
			value = fieldType.Tag.Get("default")
		} else if env := fieldType.Tag.Get("env"); env != "" {
			value = os.Getenv(env)
		}
		if value == "" {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("field %s: %w", fieldType.Name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported config field kind %s", field.Kind())
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	switch cfg.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
	if cfg.Classifier.URL == "" {
		return fmt.Errorf("classifier url must be set")
	}
	return nil
}
