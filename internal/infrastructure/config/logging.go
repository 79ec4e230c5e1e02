package config

import "github.com/andrescamacho/colonial-go/internal/infrastructure/logging"

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, console
	Format string `mapstructure:"format" validate:"required,oneof=json console"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}

// OutputPaths returns the zap output paths for the configured destination
func (c LoggingConfig) OutputPaths() []string {
	switch c.Output {
	case "file":
		return []string{c.FilePath}
	case "stdout":
		return []string{"stdout"}
	default:
		return []string{"stderr"}
	}
}

// ToLogging maps the section onto the logger constructor's options
func (c LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:       c.Level,
		Format:      c.Format,
		OutputPaths: c.OutputPaths(),
	}
}
