package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"  envPrefix:"QUERYSIM_"`
	Auth    AuthConfig    `json:"auth"    envPrefix:"QUERYSIM_"`
	Storage StorageConfig `json:"storage" envPrefix:"QUERYSIM_"`
	Synth   SynthConfig   `json:"synth"   envPrefix:"QUERYSIM_"`
	Logging LoggingConfig `json:"logging" envPrefix:"QUERYSIM_"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr            string `json:"addr"             env:"ADDR"              envDefault:":8080"`
	ReadTimeout     string `json:"read_timeout"     env:"READ_TIMEOUT"      envDefault:"10s"`
	WriteTimeout    string `json:"write_timeout"    env:"WRITE_TIMEOUT"     envDefault:"10s"`
	ShutdownTimeout string `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"  envDefault:"5s"`
	MaxBodyBytes    int64  `json:"max_body_bytes"   env:"MAX_BODY_BYTES"    envDefault:"1048576"`
}

// AuthConfig represents bearer-token configuration. The service carries a
// single analyst credential.
type AuthConfig struct {
	Username        string `json:"username"          env:"AUTH_USERNAME"  envDefault:"analyst"`
	Password        string `json:"password"          env:"AUTH_PASSWORD"  envDefault:"analystpass"`
	TokenTTLMinutes int    `json:"token_ttl_minutes" env:"AUTH_TOKEN_TTL" envDefault:"30"`
}

// StorageConfig represents the mock warehouse configuration
type StorageConfig struct {
	Path     string `json:"path"      env:"DB_PATH"   envDefault:""` // empty = in-memory
	SeedRows int    `json:"seed_rows" env:"SEED_ROWS" envDefault:"50"`
}

// SynthConfig represents record synthesis configuration
type SynthConfig struct {
	Seed int64 `json:"seed" env:"SYNTH_SEED" envDefault:"0"` // 0 = time-seeded
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"  envDefault:"info"`   // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" envDefault:"text"`   // text, json
	Output string `json:"output" env:"LOG_OUTPUT" envDefault:"stderr"` // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"   envDefault:"~/.config/querysim/logs/app.log"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigWithOverrides(nil)
}

// LoadConfigWithOverrides loads configuration with optional command-line flag overrides
func LoadConfigWithOverrides(flagOverrides map[string]interface{}) (*Config, error) {
	config := &Config{}

	// Load from config file if it exists
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply environment variable overrides (also sets defaults)
	if err := env.ParseWithOptions(config, env.Options{
		Prefix: "QUERYSIM_",
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if flagOverrides != nil {
		applyFlagOverrides(config, flagOverrides)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyFlagOverrides applies command-line flag overrides to configuration
func applyFlagOverrides(config *Config, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "addr":
			if str, ok := value.(string); ok && str != "" {
				config.Server.Addr = str
			}
		case "db-path":
			if str, ok := value.(string); ok && str != "" {
				config.Storage.Path = str
			}
		case "log-level":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Level = str
			}
		case "seed":
			if n, ok := value.(int64); ok && n != 0 {
				config.Synth.Seed = n
			}
		}
	}
}

// mergeConfigs merges source configuration into target configuration
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := range s.NumField() {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			config.Logging.Level,
		)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Logging.Format)
	}

	validLogOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}
	if !validLogOutputs[strings.ToLower(config.Logging.Output)] {
		return fmt.Errorf(
			"invalid log output: %s (must be stdout, stderr, or file)",
			config.Logging.Output,
		)
	}

	for name, value := range map[string]string{
		"server read timeout":     config.Server.ReadTimeout,
		"server write timeout":    config.Server.WriteTimeout,
		"server shutdown timeout": config.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %s", name, value)
		}
	}

	if config.Auth.Username == "" || config.Auth.Password == "" {
		return fmt.Errorf("auth username and password must not be empty")
	}

	if config.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token TTL must be positive: %d", config.Auth.TokenTTLMinutes)
	}

	if config.Storage.SeedRows < 0 {
		return fmt.Errorf("seed rows must not be negative: %d", config.Storage.SeedRows)
	}

	return nil
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	if configPath := os.Getenv("QUERYSIM_CONFIG"); configPath != "" {
		return ExpandPath(configPath)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(homeDir, ".config", "querysim", "config.json")
}

// ExpandPath expands ~ to home directory in file paths
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ExpandAllPaths expands all paths in the configuration
func (c *Config) ExpandAllPaths() {
	c.Storage.Path = ExpandPath(c.Storage.Path)
	c.Logging.File = ExpandPath(c.Logging.File)
}
