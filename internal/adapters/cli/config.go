package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Colonial configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (COLONIAL_* prefix, plus DATABASE_URL and REDIS_URL)
2. Config file (config.yaml)
3. Default values

Local preferences (commander, sort modes, drafts) live in the database;
see 'colonial prefs show'.

Example:
  colonial config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(os.Stderr, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}
			if jsonOutput {
				masked := *cfg
				masked.Database.URL = maskPassword(cfg.Database.URL)
				masked.Database.Password = maskSecret(cfg.Database.Password)
				masked.Cache.RedisURL = maskPassword(cfg.Cache.RedisURL)
				return printJSON(os.Stdout, masked)
			}

			fmt.Println("Colonial Configuration")
			fmt.Println("======================")

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nBackend API:")
			fmt.Printf("  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.API.Timeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.API.RateLimit.Requests, cfg.API.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d\n", cfg.API.Retry.MaxAttempts)
			fmt.Printf("  Breaker:          %d failures, %s cool-down\n",
				cfg.API.Breaker.MaxFailures, cfg.API.Breaker.Timeout)

			fmt.Println("\nProviders:")
			fmt.Printf("  Systems:          %s\n", cfg.Providers.AstroURL)
			fmt.Printf("  Markets:          %s\n", cfg.Providers.POIURL)
			fmt.Printf("  Bodies:           %s\n", cfg.Providers.BodiesURL)
			fmt.Printf("  Rate Limit:       %d req/s\n", cfg.Providers.RateLimit)

			fmt.Println("\nSearch Cache:")
			if cfg.Cache.Enabled() {
				fmt.Printf("  Redis:            %s\n", maskPassword(cfg.Cache.RedisURL))
			} else {
				fmt.Printf("  Redis:            (disabled, in-process only)\n")
			}
			fmt.Printf("  TTL:              %s\n", cfg.Cache.TTL)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s\n", cfg.Server.Address)
			fmt.Printf("  PID File:         %s\n", cfg.Server.PIDFile)
			fmt.Printf("  Poll Interval:    %s (idle stop after %s)\n", cfg.Poller.Interval, cfg.Poller.IdleBudget)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Path:             %s\n", cfg.Metrics.Path)
			}

			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
