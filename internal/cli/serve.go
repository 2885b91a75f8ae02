package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pricewatch/internal/api"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger endpoint and the interval scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := app.buildRunner(false)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if interval := app.Config.Interval(); interval > 0 {
				app.Logger.Info().Dur("interval", interval).Msg("Scheduler started")
				go func() {
					ticker := time.NewTicker(interval)
					defer ticker.Stop()
					for {
						select {
						case <-ctx.Done():
							return
						case <-ticker.C:
							runner.RunScheduled(ctx)
						}
					}
				}()
			}

			server := api.NewServer(runner, app.Config.Server.TriggerToken, app.Logger)
			addr := fmt.Sprintf(":%d", app.Config.Server.Port)
			app.Logger.Info().Str("addr", addr).Msg("HTTP server starting")

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(addr)
			}()

			select {
			case <-ctx.Done():
				app.Logger.Info().Msg("Shutting down")
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
}
