package workflow

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
)

// MembershipState is the lifecycle of a membership draft.
type MembershipState int

const (
	Closed MembershipState = iota
	Editing
	Saving
)

func (s MembershipState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

// TeamUpdater replaces a team's member list on the backend.
type TeamUpdater interface {
	UpdateTeamMembers(ctx context.Context, id int, members []string) (*models.Team, error)
}

// Membership edits one team's member list locally and commits it with a
// single write. The draft is never merged with server state; whatever it
// holds at save time replaces the stored list.
type Membership struct {
	mu      sync.Mutex
	updater TeamUpdater
	onSaved func()

	state MembershipState
	draft models.Team
	err   string
}

// NewMembership returns a closed workflow. onSaved, if set, runs after every
// successful save so the caller can refetch the team list.
func NewMembership(updater TeamUpdater, onSaved func()) *Membership {
	return &Membership{updater: updater, onSaved: onSaved}
}

// Open starts editing team, replacing any open draft.
func (m *Membership) Open(team models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Saving {
		return ErrOperationPending
	}

	m.draft = team
	m.draft.Members = append(models.StringList{}, team.Members...)
	m.state = Editing
	m.err = ""
	return nil
}

// AddMember appends username unless it is already in the draft.
func (m *Membership) AddMember(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.editable(); err != nil {
		return err
	}
	if !slices.Contains(m.draft.Members, username) {
		m.draft.Members = append(m.draft.Members, username)
	}
	return nil
}

// RemoveMember drops the first occurrence of username from the draft.
func (m *Membership) RemoveMember(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.editable(); err != nil {
		return err
	}
	if i := slices.Index(m.draft.Members, username); i >= 0 {
		m.draft.Members = slices.Delete(m.draft.Members, i, i+1)
	}
	return nil
}

// Cancel discards the draft without contacting the backend.
func (m *Membership) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Saving {
		return ErrOperationPending
	}
	m.reset()
	return nil
}

// Save sends the draft as the team's complete member list. On failure the
// draft is kept, Err reports why and the caller may retry or cancel.
func (m *Membership) Save(ctx context.Context) error {
	m.mu.Lock()
	if err := m.editable(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = Saving
	m.err = ""
	id := m.draft.ID
	members := append([]string{}, m.draft.Members...)
	m.mu.Unlock()

	logger := zerolog.Ctx(ctx).With().Int("team_id", id).Int("members", len(members)).Logger()

	_, err := m.updater.UpdateTeamMembers(ctx, id, members)

	m.mu.Lock()
	if err != nil {
		m.state = Editing
		m.err = fmt.Sprintf("Save failed: %s", err.Error())
		m.mu.Unlock()
		logger.Error().Err(err).Msg("failed to save team members")
		return fmt.Errorf("failed to save team members: %w", err)
	}
	m.reset()
	m.mu.Unlock()

	logger.Info().Msg("team members saved")
	if m.onSaved != nil {
		m.onSaved()
	}
	return nil
}

// State returns the current lifecycle state.
func (m *Membership) State() MembershipState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Team returns a copy of the draft team; ok is false when closed.
func (m *Membership) Team() (team models.Team, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Closed {
		return models.Team{}, false
	}
	team = m.draft
	team.Members = append(models.StringList{}, m.draft.Members...)
	return team, true
}

// Members returns a copy of the draft member list.
func (m *Membership) Members() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.draft.Members...)
}

// Err returns the message from the last failed save, or "".
func (m *Membership) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// AvailableToAdd returns the users not in the draft, in the order given.
// It is computed from the current draft on every call.
func (m *Membership) AvailableToAdd(users []models.User) []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Closed {
		return nil
	}

	inDraft := make(map[string]struct{}, len(m.draft.Members))
	for _, username := range m.draft.Members {
		inDraft[username] = struct{}{}
	}

	available := make([]models.User, 0, len(users))
	for _, u := range users {
		if _, ok := inDraft[u.Username]; !ok {
			available = append(available, u)
		}
	}
	return available
}

func (m *Membership) editable() error {
	switch m.state {
	case Closed:
		return ErrNoDraft
	case Saving:
		return ErrOperationPending
	}
	return nil
}

func (m *Membership) reset() {
	m.state = Closed
	m.draft = models.Team{}
	m.err = ""
}
