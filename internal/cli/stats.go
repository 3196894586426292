package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = LeafCommand{
	Use:   "stats",
	Short: "Show total and completed workout days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runStats(cmd, a)
		})
	},
}.Build()

func runStats(cmd *cobra.Command, a *app) error {
	s := a.components.Stats.Compute(cmd.Context())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", Primary("total days:"), s.TotalDays)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", Primary("completed days:"), s.CompletedDays)
	return nil
}
