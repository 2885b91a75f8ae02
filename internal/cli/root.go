// Package cli provides the command-line interface for the alert service.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pricewatch/internal/alerts"
	"pricewatch/internal/config"
	"pricewatch/internal/logging"
	"pricewatch/internal/marketdata"
	"pricewatch/internal/notify"
	"pricewatch/internal/rules"
	"pricewatch/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "pricewatch",
		Short: "Symbol price watcher with webhook alert notifications",
		Long: `Pricewatch watches a set of tradable symbols and sends rate-limited webhook
notifications when price or percent-change conditions cross configured
thresholds.

Use 'pricewatch serve' to run the HTTP trigger endpoint and the interval
scheduler, or 'pricewatch run' for a one-shot evaluation cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newRulesCmd(app))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute(cfg *config.Config, logger zerolog.Logger) error {
	return NewRootCmd(cfg, logger).Execute()
}

// buildRunner assembles the evaluation pipeline from the configuration.
// The returned cleanup closes the state store.
func (a *App) buildRunner(dryRun bool) (*alerts.Runner, func(), error) {
	if err := a.Config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating config: %w", err)
	}

	if dir := filepath.Dir(a.Config.Database.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	st, err := store.NewSQLiteStore(a.Config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state store: %w", err)
	}

	var notifier notify.Notifier = notify.NewWebhookNotifier(a.Config.Notify.WebhookURL)
	if dryRun {
		notifier = notify.NewConsoleNotifier()
		a.Logger.Info().Msg("Dry run: printing notifications instead of delivering them")
	}

	evaluator := alerts.NewEvaluator(st, notifier, alerts.Params{
		PctThreshold: a.Config.Watch.PctThreshold,
		Cooldown:     a.Config.Cooldown(),
	}, a.Logger)

	provider := marketdata.NewAlpacaProvider(marketdata.AlpacaConfig{
		APIKey:    a.Config.Alpaca.APIKey,
		APISecret: a.Config.Alpaca.APISecret,
	})

	runner := alerts.NewRunner(
		a.Config.Symbols(),
		rules.Parse(a.Config.Watch.Rules),
		provider,
		evaluator,
		a.Logger,
	)

	cleanup := func() { _ = st.Close() }
	return runner, cleanup, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pricewatch v%s\n", Version)
		},
	}
}
