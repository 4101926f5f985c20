package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/octofit/octofit-tracker/internal/views"
	"github.com/spf13/cobra"
)

// errViewFailed is returned after a failed view has already printed its
// error line.
var errViewFailed = errors.New("view failed to load")

func init() {
	rootCmd.AddCommand(
		listCommand("activities", "List logged activities", views.LoadActivities),
		listCommand("leaderboard", "Show the leaderboard", views.LoadLeaderboard),
		listCommand("workouts", "List workout plans", views.LoadWorkouts),
	)
}

// listCommand builds a command that loads one view and prints it.
func listCommand[V views.Table](use, short string, load func(context.Context, views.Source) views.State[V]) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commonSetUp(cmd); err != nil {
				return err
			}

			// Progress goes to stderr so stdout holds only the table
			_ = views.RenderText(cmd.ErrOrStderr(), views.Loading[V]())
			return printState(cmd.OutOrStdout(), load(cmd.Context(), service.Backend))
		},
	}
}

func printState[V views.Table](w io.Writer, s views.State[V]) error {
	if err := views.RenderText(w, s); err != nil {
		return err
	}
	if _, failed := s.Message(); failed {
		return errViewFailed
	}
	return nil
}
