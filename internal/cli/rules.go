package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/rules"
)

func newRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect alert rule configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [rules]",
		Short: "Parse a rule string and print the resolved per-symbol thresholds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleStr := app.Config.Watch.Rules
			if len(args) == 1 {
				ruleStr = args[0]
			}

			parsed := rules.Parse(ruleStr)
			out, err := json.MarshalIndent(parsed, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	})

	return cmd
}
