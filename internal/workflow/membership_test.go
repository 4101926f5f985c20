package workflow

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"testing"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var falcons = models.Team{ID: 5, Name: "Falcons", Members: models.StringList{"alice"}}

var everyone = []models.User{
	{ID: 1, Username: "alice"},
	{ID: 2, Username: "bob"},
	{ID: 3, Username: "carol"},
	{ID: 4, Username: "dave"},
}

func TestMembership_SaveScenario(t *testing.T) {
	backend := new(MockBackend)
	backend.On("UpdateTeamMembers", 5, []string{"bob"}).
		Return(&models.Team{ID: 5, Name: "Falcons", Members: models.StringList{"bob"}}, nil).Once()

	refetched := 0
	m := NewMembership(backend, func() { refetched++ })

	require.NoError(t, m.Open(falcons))
	require.NoError(t, m.RemoveMember("alice"))
	require.NoError(t, m.AddMember("bob"))
	require.NoError(t, m.Save(context.Background()))

	backend.AssertExpectations(t)
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, 1, refetched)
	_, open := m.Team()
	assert.False(t, open)
}

func TestMembership_DraftIsIndependentCopy(t *testing.T) {
	team := models.Team{ID: 5, Name: "Falcons", Members: models.StringList{"alice", "bob"}}
	m := NewMembership(new(MockBackend), nil)

	require.NoError(t, m.Open(team))
	require.NoError(t, m.RemoveMember("alice"))

	assert.Equal(t, models.StringList{"alice", "bob"}, team.Members)
	assert.Equal(t, []string{"bob"}, m.Members())
}

func TestMembership_AddIsIdempotent(t *testing.T) {
	m := NewMembership(new(MockBackend), nil)
	require.NoError(t, m.Open(falcons))

	require.NoError(t, m.AddMember("bob"))
	once := m.Members()
	require.NoError(t, m.AddMember("bob"))

	assert.Equal(t, once, m.Members())
	assert.Equal(t, []string{"alice", "bob"}, m.Members())
}

func TestMembership_RemoveThenAddRestores(t *testing.T) {
	m := NewMembership(new(MockBackend), nil)
	require.NoError(t, m.Open(models.Team{ID: 1, Members: models.StringList{"alice", "bob", "carol"}}))

	require.NoError(t, m.RemoveMember("alice"))
	require.NoError(t, m.AddMember("alice"))

	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, m.Members())
}

func TestMembership_RemoveFirstOccurrenceOnly(t *testing.T) {
	m := NewMembership(new(MockBackend), nil)
	require.NoError(t, m.Open(models.Team{ID: 1, Members: models.StringList{"alice", "bob", "alice"}}))

	require.NoError(t, m.RemoveMember("alice"))
	assert.Equal(t, []string{"bob", "alice"}, m.Members())

	require.NoError(t, m.RemoveMember("nobody"))
	assert.Equal(t, []string{"bob", "alice"}, m.Members())
}

func TestMembership_RandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewMembership(new(MockBackend), nil)
	require.NoError(t, m.Open(falcons))

	for i := 0; i < 500; i++ {
		username := everyone[rng.Intn(len(everyone))].Username
		if rng.Intn(2) == 0 {
			require.NoError(t, m.AddMember(username))
		} else {
			require.NoError(t, m.RemoveMember(username))
		}

		members := m.Members()
		seen := map[string]bool{}
		for _, u := range members {
			assert.False(t, seen[u], "duplicate %s after step %d", u, i)
			seen[u] = true
		}

		available := m.AvailableToAdd(everyone)
		assert.Equal(t, len(everyone), len(members)+len(available))
		for _, u := range available {
			assert.False(t, seen[u.Username])
		}
	}
}

func TestMembership_AvailableToAddTracksEdits(t *testing.T) {
	m := NewMembership(new(MockBackend), nil)
	require.NoError(t, m.Open(falcons))

	assert.Equal(t, []models.User{everyone[1], everyone[2], everyone[3]}, m.AvailableToAdd(everyone))

	require.NoError(t, m.AddMember("carol"))
	assert.Equal(t, []models.User{everyone[1], everyone[3]}, m.AvailableToAdd(everyone))

	require.NoError(t, m.RemoveMember("alice"))
	assert.Equal(t, []models.User{everyone[0], everyone[1], everyone[3]}, m.AvailableToAdd(everyone))
}

func TestMembership_UnchangedSaveSendsOriginalMembers(t *testing.T) {
	team := models.Team{ID: 8, Name: "Owls", Members: models.StringList{"carol", "alice"}}
	backend := new(MockBackend)
	backend.On("UpdateTeamMembers", 8, []string{"carol", "alice"}).Return(&team, nil).Once()

	m := NewMembership(backend, nil)
	require.NoError(t, m.Open(team))
	require.NoError(t, m.Save(context.Background()))

	backend.AssertExpectations(t)
}

func TestMembership_SaveFailureKeepsDraft(t *testing.T) {
	backend := new(MockBackend)
	backend.On("UpdateTeamMembers", 5, mock.Anything).
		Return(nil, &services.HTTPError{Status: http.StatusBadRequest, Message: `{"members":["invalid"]}`}).Once()

	refetched := false
	m := NewMembership(backend, func() { refetched = true })
	require.NoError(t, m.Open(falcons))
	require.NoError(t, m.AddMember("bob"))

	err := m.Save(context.Background())
	require.Error(t, err)

	var httpErr *services.HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, Editing, m.State())
	assert.Equal(t, []string{"alice", "bob"}, m.Members())
	assert.Equal(t, `Save failed: {"members":["invalid"]}`, m.Err())
	assert.False(t, refetched)

	backend.On("UpdateTeamMembers", 5, []string{"alice", "bob"}).Return(&falcons, nil).Once()
	require.NoError(t, m.Save(context.Background()))
	assert.Equal(t, Closed, m.State())
	assert.Empty(t, m.Err())
	assert.True(t, refetched)
}

func TestMembership_CancelSendsNothing(t *testing.T) {
	backend := new(MockBackend)
	m := NewMembership(backend, nil)

	require.NoError(t, m.Open(falcons))
	require.NoError(t, m.AddMember("bob"))
	require.NoError(t, m.Cancel())

	assert.Equal(t, Closed, m.State())
	assert.Empty(t, m.Members())
	backend.AssertNotCalled(t, "UpdateTeamMembers", mock.Anything, mock.Anything)
}

func TestMembership_ClosedRejectsEdits(t *testing.T) {
	m := NewMembership(new(MockBackend), nil)

	assert.ErrorIs(t, m.AddMember("bob"), ErrNoDraft)
	assert.ErrorIs(t, m.RemoveMember("bob"), ErrNoDraft)
	assert.ErrorIs(t, m.Save(context.Background()), ErrNoDraft)
	assert.Nil(t, m.AvailableToAdd(everyone))
}

type blockingUpdater struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingUpdater) UpdateTeamMembers(ctx context.Context, id int, members []string) (*models.Team, error) {
	close(b.started)
	<-b.release
	return &models.Team{ID: id, Members: members}, nil
}

func TestMembership_OneSaveInFlight(t *testing.T) {
	updater := &blockingUpdater{started: make(chan struct{}), release: make(chan struct{})}
	m := NewMembership(updater, nil)
	require.NoError(t, m.Open(falcons))

	done := make(chan error, 1)
	go func() { done <- m.Save(context.Background()) }()
	<-updater.started

	assert.Equal(t, Saving, m.State())
	assert.ErrorIs(t, m.Save(context.Background()), ErrOperationPending)
	assert.ErrorIs(t, m.AddMember("bob"), ErrOperationPending)
	assert.ErrorIs(t, m.Cancel(), ErrOperationPending)
	assert.ErrorIs(t, m.Open(falcons), ErrOperationPending)

	close(updater.release)
	require.NoError(t, <-done)
	assert.Equal(t, Closed, m.State())
}
