package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/alerts"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		symbols []string
		force   bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one evaluation cycle and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := app.buildRunner(dryRun)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := runner.Run(context.Background(), alerts.RunOptions{
				Symbols: symbols,
				Force:   force,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "symbols to evaluate (default: configured watchlist)")
	cmd.Flags().BoolVar(&force, "force", false, "fire every met condition, ignore cooldown, do not persist state")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate without sending notifications")

	return cmd
}
