package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/application/common"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colonial",
		Short: "Colonial - colonization logistics from the terminal",
		Long: `Colonial tracks colonization construction projects: what a site still
needs, what your fleet carriers already hold, and where to buy the rest.

Examples:
  colonial project show x1y2z3 --sort category
  colonial project deliver x1y2z3 steel=120 aluminium=40
  colonial fc cargo 3700123456
  colonial market find x1y2z3 --sort distance --asc
  colonial prefs set-cmdr Jameson --large 784 --medium 400
  colonial serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/colonial)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewProjectCommand())
	rootCmd.AddCommand(NewCarrierCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewSystemCommand())
	rootCmd.AddCommand(NewPrefsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// withApp wires the application, runs fn with a logger-carrying context and
// releases the application afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := NewApp(ctx, configPath, verbose)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(common.WithLogger(ctx, app.Logger), app)
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
