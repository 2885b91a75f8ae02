package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pricewatch/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented config.toml skeleton",
		Long: `Writes a commented config.toml into the config directory
(PRICEWATCH_CONFIG_DIR or the default location). Fails if the file
already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteTemplate(os.Getenv("PRICEWATCH_CONFIG_DIR"))
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			fmt.Println("Fill in trigger_token, webhook_url and the alpaca credentials before running.")
			return nil
		},
	}
}
