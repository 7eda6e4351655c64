package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOpenAIAPIURL = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel  = "gpt-4o"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	RequestTimeout time.Duration

	// OpenAI configuration
	OpenAIAPIKey      string
	OpenAIAPIURL      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	OpenAITimeout     time.Duration

	// CORS configuration
	AllowedOrigins []string

	LogLevel string
}

// ServerAddress returns the host:port the HTTP server listens on
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.ServerHost), strings.TrimSpace(c.ServerPort))
}

// HasOpenAIKey reports whether an OpenAI credential was configured
func (c *Config) HasOpenAIKey() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// LoadConfig creates a new Config instance from the environment, a .env file and Docker secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; variables may come from the real environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Environment:       GetEnvironment(),
		ServerHost:        getEnv("SERVER_HOST", ""),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		OpenAIAPIURL:      getEnv("OPENAI_API_URL", DefaultOpenAIAPIURL),
		OpenAIModel:       getEnv("OPENAI_MODEL", DefaultOpenAIModel),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OpenAIMaxTokens:   1500,
		OpenAITemperature: 0.3,
		OpenAITimeout:     30 * time.Second,
		RequestTimeout:    45 * time.Second,
	}

	var err error
	if cfg.OpenAIMaxTokens, err = getEnvInt("OPENAI_MAX_TOKENS", cfg.OpenAIMaxTokens); err != nil {
		return nil, err
	}
	if cfg.OpenAITemperature, err = getEnvFloat("OPENAI_TEMPERATURE", cfg.OpenAITemperature); err != nil {
		return nil, err
	}
	if cfg.OpenAITimeout, err = getEnvDuration("OPENAI_TIMEOUT", cfg.OpenAITimeout); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}

	cfg.OpenAIAPIKey, err = loadOpenAIKey()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadOpenAIKey resolves the credential from OPENAI_API_KEY, OPENAI_API_KEY_FILE or the
// openai_api_key Docker secret, in that order. An absent key is not an error here.
func loadOpenAIKey() (string, error) {
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		return apiKey, nil
	}

	if apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE"); apiKeyFile != "" {
		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		return strings.TrimSpace(string(apiKeyBytes)), nil
	}

	return readSecret("openai_api_key"), nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", value)}
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid number %q", value)}
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", value)}
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
