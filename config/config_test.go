package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the caller's environment and Docker secrets
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT", "OPENAI_API_KEY", "OPENAI_API_KEY_FILE",
		"OPENAI_API_URL", "OPENAI_MODEL", "OPENAI_MAX_TOKENS", "OPENAI_TEMPERATURE",
		"OPENAI_TIMEOUT", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_MAX_TOKENS", "800")
	t.Setenv("OPENAI_TEMPERATURE", "0.1")
	t.Setenv("OPENAI_TIMEOUT", "10s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://frontend:5173")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 800, cfg.OpenAIMaxTokens)
	assert.Equal(t, 0.1, cfg.OpenAITemperature)
	assert.Equal(t, 10*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.HasOpenAIKey())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.ServerAddress())
	assert.Equal(t, DefaultOpenAIAPIURL, cfg.OpenAIAPIURL)
	assert.Equal(t, DefaultOpenAIModel, cfg.OpenAIModel)
	assert.Equal(t, 1500, cfg.OpenAIMaxTokens)
	assert.Equal(t, 0.3, cfg.OpenAITemperature)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasOpenAIKey())
}

func TestLoadConfigReadsKeyFromFile(t *testing.T) {
	clearEnv(t)
	keyFile := filepath.Join(t.TempDir(), "openai_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-from-file\n"), 0o600))
	t.Setenv("OPENAI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
}

func TestLoadConfigMissingKeyFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY_FILE", filepath.Join(t.TempDir(), "missing"))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to read API key file")
}

func TestLoadConfigReadsDockerSecret(t *testing.T) {
	clearEnv(t)
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "openai_api_key"), []byte(" sk-secret "), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.OpenAIAPIKey)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"OPENAI_MAX_TOKENS", "many"},
		{"OPENAI_TEMPERATURE", "warm"},
		{"OPENAI_TIMEOUT", "30"},
		{"REQUEST_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.key, verr.Field)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:       Development,
			ServerPort:        "8080",
			OpenAIAPIKey:      "sk-test",
			OpenAIAPIURL:      DefaultOpenAIAPIURL,
			OpenAIModel:       DefaultOpenAIModel,
			OpenAIMaxTokens:   1500,
			OpenAITemperature: 0.3,
			OpenAITimeout:     30 * time.Second,
			RequestTimeout:    45 * time.Second,
		}
	}

	t.Run("valid config has no errors", func(t *testing.T) {
		assert.Empty(t, ValidateConfig(valid()))
	})

	t.Run("missing key is only fatal in production", func(t *testing.T) {
		cfg := valid()
		cfg.OpenAIAPIKey = "  "

		errs := ValidateConfig(cfg)
		require.Len(t, errs, 1)
		assert.Equal(t, "OPENAI_API_KEY", errs[0].Field)
		assert.False(t, errs.Fatal(Development))
		assert.True(t, errs.Fatal(Production))
	})

	t.Run("bad port is always fatal", func(t *testing.T) {
		cfg := valid()
		cfg.ServerPort = "99999"

		errs := ValidateConfig(cfg)
		require.Len(t, errs, 1)
		assert.True(t, errs.Fatal(Development))
		assert.Contains(t, errs.Error(), "SERVER_PORT")
	})

	t.Run("request timeout shorter than upstream timeout", func(t *testing.T) {
		cfg := valid()
		cfg.RequestTimeout = 5 * time.Second

		errs := ValidateConfig(cfg)
		require.Len(t, errs, 1)
		assert.Equal(t, "REQUEST_TIMEOUT", errs[0].Field)
	})

	t.Run("origins need a scheme", func(t *testing.T) {
		cfg := valid()
		cfg.AllowedOrigins = []string{"*", "https://caloria.app", "localhost:5173"}

		errs := ValidateConfig(cfg)
		require.Len(t, errs, 1)
		assert.Equal(t, "CORS_ALLOWED_ORIGINS", errs[0].Field)
		assert.Contains(t, errs[0].Message, "localhost:5173")
	})
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("production"))
	assert.Equal(t, Production, ParseEnvironment(" PRODUCTION "))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
