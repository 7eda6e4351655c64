package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the set of problems found by ValidateConfig
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	lines := make([]string, 0, len(v))
	for _, e := range v {
		lines = append(lines, e.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

// Fatal reports whether any of the errors must stop the server from starting.
// A missing OpenAI key only blocks startup in production; elsewhere the relay
// answers each request with a configuration error instead.
func (v ValidationErrors) Fatal(env Environment) bool {
	for _, e := range v {
		if e.Field != "OPENAI_API_KEY" || env.IsProduction() {
			return true
		}
	}
	return false
}

// ValidateConfig checks the configuration once, before any request is served
func ValidateConfig(cfg *Config) ValidationErrors {
	var errs ValidationErrors

	if p, err := strconv.Atoi(strings.TrimSpace(cfg.ServerPort)); err != nil || p < 1 || p > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	if !cfg.HasOpenAIKey() {
		errs = append(errs, ValidationError{Field: "OPENAI_API_KEY", Message: "OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set"})
	}
	if cfg.OpenAIAPIURL == "" {
		errs = append(errs, ValidationError{Field: "OPENAI_API_URL", Message: "must not be empty"})
	}
	if cfg.OpenAIModel == "" {
		errs = append(errs, ValidationError{Field: "OPENAI_MODEL", Message: "must not be empty"})
	}
	if cfg.OpenAIMaxTokens <= 0 {
		errs = append(errs, ValidationError{Field: "OPENAI_MAX_TOKENS", Message: fmt.Sprintf("must be > 0 (got %d)", cfg.OpenAIMaxTokens)})
	}
	if cfg.OpenAITemperature < 0 || cfg.OpenAITemperature > 2 {
		errs = append(errs, ValidationError{Field: "OPENAI_TEMPERATURE", Message: fmt.Sprintf("must be between 0 and 2 (got %g)", cfg.OpenAITemperature)})
	}
	if cfg.OpenAITimeout <= 0 {
		errs = append(errs, ValidationError{Field: "OPENAI_TIMEOUT", Message: "must be > 0"})
	}
	if cfg.RequestTimeout < cfg.OpenAITimeout {
		errs = append(errs, ValidationError{Field: "REQUEST_TIMEOUT", Message: "must not be shorter than OPENAI_TIMEOUT"})
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: fmt.Sprintf("origin %q must be \"*\" or start with http:// or https://", origin)})
		}
	}

	return errs
}
