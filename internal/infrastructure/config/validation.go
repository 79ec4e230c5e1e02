package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the cross-field rules
// the tags cannot express
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(databaseRules, DatabaseConfig{})
	v.RegisterStructValidation(pollerRules, PollerConfig{})

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// postgres needs either a URL or a host; sqlite needs a path
func databaseRules(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	switch db.Type {
	case "postgres":
		if db.URL == "" && db.Host == "" {
			sl.ReportError(db.Host, "Host", "host", "required_without_url", "")
		}
	case "sqlite":
		if db.Path == "" {
			sl.ReportError(db.Path, "Path", "path", "required", "")
		}
	}
}

// the idle budget must cover at least one poll
func pollerRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(PollerConfig)
	if p.IdleBudget > 0 && p.IdleBudget < p.Interval {
		sl.ReportError(p.IdleBudget, "IdleBudget", "idle_budget", "gtefield", "Interval")
	}
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
