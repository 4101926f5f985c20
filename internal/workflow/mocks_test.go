package workflow

import (
	"context"

	"github.com/octofit/octofit-tracker/models"
	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) UpdateTeamMembers(ctx context.Context, id int, members []string) (*models.Team, error) {
	args := m.Called(id, members)
	team, _ := args.Get(0).(*models.Team)
	return team, args.Error(1)
}

func (m *MockBackend) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	args := m.Called(user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *MockBackend) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}
