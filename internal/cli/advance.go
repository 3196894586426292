package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var advanceCmd = LeafCommand{
	Use:   "advance",
	Short: "Move the rotation to the next workout day",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "reset", Usage: "clear completion marks of the next workout", Default: true},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")
		return withApp(cmd, func(a *app) error {
			return runAdvance(cmd, a, reset)
		})
	},
}.Build()

func runAdvance(cmd *cobra.Command, a *app, reset bool) error {
	next, err := a.components.Engine.Advance(cmd.Context(), reset)
	if err != nil {
		return err
	}
	if next == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Warning("no workouts configured"))
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Info("rotation advanced"))
	printWorkout(cmd.OutOrStdout(), next)
	return nil
}
