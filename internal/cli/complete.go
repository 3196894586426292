package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2beens/gymrota/internal/workouts"
)

var completeCmd = LeafCommand{
	Use:   "complete <day> <exercise-id>",
	Short: "Mark an exercise as completed",
	Args:  cobra.ExactArgs(2),
	BoolFlags: []BoolFlag{
		{Name: "undo", Usage: "clear the completion mark instead"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")
		return withApp(cmd, func(a *app) error {
			return runComplete(cmd, a, args[0], args[1], undo)
		})
	},
}.Build()

func runComplete(cmd *cobra.Command, a *app, dayArg, exerciseID string, undo bool) error {
	day, err := workouts.ParseDayLabel(dayArg)
	if err != nil {
		return err
	}

	if undo {
		if !a.components.Workouts.SetExerciseCompletion(cmd.Context(), day, workouts.ID(exerciseID), false) {
			return fmt.Errorf("exercise %s of day %s not updated", exerciseID, day)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Info("completion cleared"))
		return nil
	}

	res, err := a.components.Workouts.Complete(cmd.Context(), day, workouts.ID(exerciseID))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Success("exercise completed"))
	if res.DayCompleted {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Success(fmt.Sprintf("day %s fully done", day)))
	}
	if res.NewLedgerEntry {
		s := a.components.Stats.Compute(cmd.Context())
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Info(fmt.Sprintf("completed %d of %d days", s.CompletedDays, s.TotalDays)))
	}
	return nil
}
