package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/adapters/httpapi"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var force bool
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		Long: `Serve the dashboard API over HTTP with live project updates on a
websocket. Only one server runs per PID file; --force stops the running one.

Examples:
  colonial serve
  colonial serve --address 0.0.0.0:8080 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				if address != "" {
					app.Config.Server.Address = address
				}

				pf := pidfile.New(app.Config.Server.PIDFile)
				if err := pf.Acquire(); err != nil {
					if !force || !errors.Is(err, pidfile.ErrRunning) {
						return fmt.Errorf("%w\nUse --force to stop the running server", err)
					}
					app.Logger.Warn("stopping running server", logging.String("pid_file", pf.Path()))
					if err := pf.KillExisting(app.Config.Server.ShutdownTimeout + time.Second); err != nil {
						return err
					}
					if err := pf.Acquire(); err != nil {
						return fmt.Errorf("failed to acquire PID file after stopping the running server: %w", err)
					}
				}
				defer func() {
					if err := pf.Release(); err != nil {
						app.Logger.Warn("failed to release PID file", logging.Err(err))
					}
				}()

				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				server := httpapi.NewServer(app.Config, app.Mediator, app.Projects, app.Prefs, nil, app.Logger)
				app.Logger.Info("server starting",
					logging.String("address", app.Config.Server.Address),
					logging.Bool("metrics", app.Config.Metrics.Enabled))
				if err := server.ListenAndServe(ctx); err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				app.Logger.Info("server stopped")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Stop a running server and start a new one")
	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides server.address)")

	return cmd
}
