package cli

import (
	"fmt"
	"io"

	"github.com/2beens/gymrota/internal/workouts"
)

func printWorkout(w io.Writer, workout *workouts.WorkoutDay) {
	done := 0
	for _, ex := range workout.Exercises {
		if ex.Completed {
			done++
		}
	}

	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		Primary("Day "+string(workout.Day)),
		workout.Title,
		Silent(fmt.Sprintf("(%d/%d done)", done, len(workout.Exercises))),
	)
	for _, ex := range workout.Exercises {
		mark := "[ ]"
		if ex.Completed {
			mark = Success("[x]")
		}
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", mark, ex.Name, Silent(string(ex.ID)))
	}
}
