package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validator validates configuration values using go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("provider", validateProvider)
	v.RegisterValidation("log_level", validateLogLevel)
	v.RegisterValidation("log_format", validateLogFormat)

	return &Validator{validate: v}
}

// Validate validates a complete configuration, including that every guard
// pattern compiles.
func (v *Validator) Validate(config *Config) error {
	if config.Version == "" {
		config.Version = "1.0"
	}

	if err := v.validate.Struct(config); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrors {
				return ValidationError{
					Field:   e.Field(),
					Message: fmt.Sprintf("validation failed on tag '%s' with value '%v'", e.Tag(), e.Value()),
					Value:   e.Value(),
				}
			}
		}
		return err
	}

	for _, pattern := range config.Guard.ExtraPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return ValidationError{
				Field:   "Guard.ExtraPatterns",
				Message: fmt.Sprintf("invalid guard pattern %q: %v", pattern, err),
				Value:   pattern,
			}
		}
	}

	for _, server := range config.MCPServers {
		if server.Name == "" || server.Command == "" {
			return ValidationError{
				Field:   "MCPServers",
				Message: "mcp server entries require both name and command",
				Value:   server,
			}
		}
	}

	return nil
}

func validateProvider(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // filled by defaults
	}
	return contains([]string{"openrouter", "openai", "local", "test"}, value)
}

func validateLogLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return contains([]string{"debug", "info", "warn", "error"}, value)
}

func validateLogFormat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return contains([]string{"json", "text"}, value)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
