package config

import (
	"os"
	"strconv"
	"time"

	"pharmabrand/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Paths  PathConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// AIConfig holds the LLM settings. Model and temperature are fixed for
// the process; every generation call uses them.
type AIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// PathConfig holds file system paths
type PathConfig struct {
	WorkbookFile string
	SecretsFile  string
}

// secretsFile is the structured secrets store consulted before the
// environment for the API key.
type secretsFile struct {
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// Load reads configuration from the secrets file and environment
// variables. A missing API key is fatal at startup.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Paths: PathConfig{
			WorkbookFile: getEnvOrDefault("WORKBOOK_FILE", "test.xlsx"),
			SecretsFile:  getEnvOrDefault("SECRETS_FILE", "secrets.yaml"),
		},
	}

	aiConfig, err := loadAIConfig(config.Paths.SecretsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	return config, nil
}

func loadAIConfig(secretsPath string) (*AIConfig, error) {
	key, err := resolveAPIKey(secretsPath)
	if err != nil {
		return nil, err
	}

	return &AIConfig{
		APIKey:      key,
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.7),
		MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 1024),
		Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
	}, nil
}

// resolveAPIKey checks the structured secrets store first and the
// environment second. Absence of both is a fatal startup condition.
func resolveAPIKey(secretsPath string) (string, error) {
	if raw, err := os.ReadFile(secretsPath); err == nil {
		var secrets secretsFile
		if err := yaml.Unmarshal(raw, &secrets); err != nil {
			return "", errors.Wrapf(err, "malformed secrets file %s", secretsPath)
		}
		if secrets.OpenAIAPIKey != "" {
			return secrets.OpenAIAPIKey, nil
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}
	return "", errors.ConfigInvalid("OpenAI API key not found in secrets file or OPENAI_API_KEY")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
