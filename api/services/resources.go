package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/octofit/octofit-tracker/models"
)

const (
	UsersPath       = "users/"
	TeamsPath       = "teams/"
	ActivitiesPath  = "activities/"
	LeaderboardPath = "leaderboard/"
	WorkoutsPath    = "workouts/"
)

// ListUsers retrieves every user.
func (c *BackendClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.FetchCollection(ctx, UsersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new user and returns the stored record.
func (c *BackendClient) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	var created models.User
	if err := c.Submit(ctx, http.MethodPost, UsersPath, user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteUser removes a user by id.
func (c *BackendClient) DeleteUser(ctx context.Context, id int) error {
	return c.Remove(ctx, fmt.Sprintf("%s%d/", UsersPath, id))
}

// ListTeams retrieves every team.
func (c *BackendClient) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := c.FetchCollection(ctx, TeamsPath, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// UpdateTeamMembers replaces a team's member list with members.
func (c *BackendClient) UpdateTeamMembers(ctx context.Context, id int, members []string) (*models.Team, error) {
	var updated models.Team
	patch := models.MembersPatch{Members: members}
	if err := c.Submit(ctx, http.MethodPatch, fmt.Sprintf("%s%d/", TeamsPath, id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListActivities retrieves every logged activity.
func (c *BackendClient) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := c.FetchCollection(ctx, ActivitiesPath, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// ListLeaderboard retrieves the leaderboard in the order the backend ranks it.
func (c *BackendClient) ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.FetchCollection(ctx, LeaderboardPath, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListWorkouts retrieves every workout plan.
func (c *BackendClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.FetchCollection(ctx, WorkoutsPath, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}
