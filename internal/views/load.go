package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source is the part of the backend client the list views read from.
type Source interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
}

// LoadUsers fetches the user list.
func LoadUsers(ctx context.Context, src Source) State[UsersView] {
	users, err := src.ListUsers(ctx)
	if err != nil {
		return Failed[UsersView](singleMessage(err))
	}
	return Ready(NewUsersView(users))
}

// LoadTeams fetches teams and users together.
func LoadTeams(ctx context.Context, src Source) State[TeamsView] {
	teams, users, err := fetchWithUsers(ctx, src, "Teams", src.ListTeams)
	if err != nil {
		return Failed[TeamsView](err.Error())
	}
	return Ready(NewTeamsView(teams, users))
}

// LoadActivities fetches activities and resolves athletes to display names.
func LoadActivities(ctx context.Context, src Source) State[ActivitiesView] {
	activities, users, err := fetchWithUsers(ctx, src, "Activities", src.ListActivities)
	if err != nil {
		return Failed[ActivitiesView](err.Error())
	}
	return Ready(NewActivitiesView(activities, users))
}

// LoadLeaderboard fetches leaderboard entries and users. The rank shown is the
// response position, so an unsorted response is logged rather than reordered.
func LoadLeaderboard(ctx context.Context, src Source) State[LeaderboardView] {
	entries, users, err := fetchWithUsers(ctx, src, "Leaderboard", src.ListLeaderboard)
	if err != nil {
		return Failed[LeaderboardView](err.Error())
	}

	view := NewLeaderboardView(entries, users)
	if !view.Sorted() {
		zerolog.Ctx(ctx).Warn().
			Int("entries", len(entries)).
			Msg("leaderboard is not in descending score order, ranks follow response order")
	}
	return Ready(view)
}

// LoadWorkouts fetches the workout plans.
func LoadWorkouts(ctx context.Context, src Source) State[WorkoutsView] {
	workouts, err := src.ListWorkouts(ctx)
	if err != nil {
		return Failed[WorkoutsView](singleMessage(err))
	}
	return Ready(NewWorkoutsView(workouts))
}

// fetchWithUsers runs the primary fetch and the user fetch concurrently. Both
// must succeed; the first failure cancels the other and is returned.
func fetchWithUsers[T any](ctx context.Context, src Source, resource string,
	fetch func(context.Context) ([]T, error)) ([]T, []models.User, error) {

	var (
		items []T
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if items, err = fetch(gctx); err != nil {
			return fmt.Errorf("%s: %s", resource, reason(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if users, err = src.ListUsers(gctx); err != nil {
			return fmt.Errorf("Users: %s", reason(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("resource", resource).Msg("failed to load view")
		return nil, nil, err
	}
	return items, users, nil
}

func singleMessage(err error) string {
	var httpErr *services.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP error! status: %d", httpErr.Status)
	}
	return err.Error()
}

func reason(err error) string {
	var httpErr *services.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP %d", httpErr.Status)
	}
	return err.Error()
}
