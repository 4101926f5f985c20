package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/octofit/octofit-tracker/internal/workflow"
	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
)

const (
	DefaultDraftTTL  = 30 * time.Minute
	DefaultMaxDrafts = 1000
)

// ErrTooManyDrafts is returned when the store is full of live drafts.
var ErrTooManyDrafts = errors.New("too many membership drafts are open")

// Draft is one open membership edit in the web shell. Users is the user list
// loaded with the team, used to offer members to add.
type Draft struct {
	ID         uuid.UUID
	Membership *workflow.Membership
	Users      []models.User

	lastTouched time.Time
}

// DraftStore holds the open membership drafts keyed by id. A draft nobody has
// touched for the TTL is expired, and at most maxDrafts drafts are held at once.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
	max    int
	now    func() time.Time
}

// NewDraftStore returns an empty store. Zero values select DefaultDraftTTL
// and DefaultMaxDrafts.
func NewDraftStore(ttl time.Duration, maxDrafts int) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	if maxDrafts <= 0 {
		maxDrafts = DefaultMaxDrafts
	}
	return &DraftStore{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
		max:    maxDrafts,
		now:    time.Now,
	}
}

// Open starts a draft of team. The draft removes itself from the store once
// it has been saved.
func (s *DraftStore) Open(updater workflow.TeamUpdater, team models.Team, users []models.User) (*Draft, error) {
	id := uuid.New()
	m := workflow.NewMembership(updater, func() { s.Discard(id) })
	if err := m.Open(team); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.drafts) >= s.max {
		s.evictLocked(now)
		if len(s.drafts) >= s.max {
			return nil, ErrTooManyDrafts
		}
	}

	d := &Draft{ID: id, Membership: m, Users: users, lastTouched: now}
	s.drafts[id] = d
	return d, nil
}

// Get returns a live draft and marks it as used. An expired draft is dropped.
func (s *DraftStore) Get(id uuid.UUID) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, false
	}

	now := s.now()
	if s.expired(d, now) {
		delete(s.drafts, id)
		return nil, false
	}
	d.lastTouched = now
	return d, true
}

func (s *DraftStore) Discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Len returns the number of drafts held, expired or not.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Evict drops every expired draft and returns how many went.
func (s *DraftStore) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

// Run evicts expired drafts every interval until ctx is done.
func (s *DraftStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				zerolog.Ctx(ctx).Debug().Int("evicted", n).Msg("expired membership drafts dropped")
			}
		}
	}
}

func (s *DraftStore) evictLocked(now time.Time) int {
	evicted := 0
	for id, d := range s.drafts {
		if s.expired(d, now) {
			delete(s.drafts, id)
			evicted++
		}
	}
	return evicted
}

// A draft mid-save is kept; its save removes it.
func (s *DraftStore) expired(d *Draft, now time.Time) bool {
	return d.Membership.State() != workflow.Saving && now.Sub(d.lastTouched) > s.ttl
}
