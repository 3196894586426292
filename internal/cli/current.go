package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currentCmd = LeafCommand{
	Use:   "current",
	Short: "Show today's workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runCurrent(cmd, a)
		})
	},
}.Build()

func runCurrent(cmd *cobra.Command, a *app) error {
	current, err := a.components.Engine.Current(cmd.Context())
	if err != nil {
		return err
	}
	if current == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Warning("no workouts configured"))
		return nil
	}

	printWorkout(cmd.OutOrStdout(), current)
	return nil
}
