package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
)

// UserForm holds the add-user form as entered.
type UserForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Validate requires every field to be non-blank after trimming.
func (f UserForm) Validate() error {
	for _, v := range []string{f.Username, f.FirstName, f.LastName, f.Email, f.Password} {
		if strings.TrimSpace(v) == "" {
			return ErrFieldsRequired
		}
	}
	return nil
}

// NewUser returns the request body for the form.
func (f UserForm) NewUser() models.NewUser {
	return models.NewUser{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
	}
}

// UserCreator registers users on the backend.
type UserCreator interface {
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
}

// AddUser is the add-user form workflow.
type AddUser struct {
	mu        sync.Mutex
	creator   UserCreator
	onCreated func()

	open   bool
	saving bool
	form   UserForm
	err    string
}

// NewAddUser returns a closed form. onCreated, if set, runs after every
// successful submit.
func NewAddUser(creator UserCreator, onCreated func()) *AddUser {
	return &AddUser{creator: creator, onCreated: onCreated}
}

// Open shows an empty form.
func (a *AddUser) Open() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.open = true
	a.form = UserForm{}
	a.err = ""
}

// Close hides the form. It is refused while a submit is in flight.
func (a *AddUser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.saving {
		return ErrOperationPending
	}
	a.open = false
	return nil
}

// Submit validates form and posts it. The form stays open with its values on
// any failure; on success it closes and the created callback runs.
func (a *AddUser) Submit(ctx context.Context, form UserForm) (*models.User, error) {
	a.mu.Lock()
	if a.saving {
		a.mu.Unlock()
		return nil, ErrOperationPending
	}
	a.open = true
	a.form = form
	if err := form.Validate(); err != nil {
		a.err = err.Error()
		a.mu.Unlock()
		return nil, err
	}
	a.saving = true
	a.err = ""
	a.mu.Unlock()

	logger := zerolog.Ctx(ctx).With().Str("username", form.Username).Logger()

	created, err := a.creator.CreateUser(ctx, form.NewUser())

	a.mu.Lock()
	a.saving = false
	if err != nil {
		a.err = fmt.Sprintf("Failed to add user: %s", err.Error())
		a.mu.Unlock()
		logger.Error().Err(err).Msg("failed to add user")
		return nil, fmt.Errorf("failed to add user: %w", err)
	}
	a.open = false
	a.form = UserForm{}
	a.mu.Unlock()

	logger.Info().Msg("user added")
	if a.onCreated != nil {
		a.onCreated()
	}
	return created, nil
}

// IsOpen reports whether the form is shown.
func (a *AddUser) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// Form returns the values last submitted or opened.
func (a *AddUser) Form() UserForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// Err returns the message from the last failed submit, or "".
func (a *AddUser) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// UserDeleter removes users from the backend.
type UserDeleter interface {
	DeleteUser(ctx context.Context, id int) error
}

// DeleteUser asks for confirmation before issuing a delete.
type DeleteUser struct {
	mu        sync.Mutex
	deleter   UserDeleter
	onDeleted func()

	target   *models.User
	deleting bool
	err      string
}

// NewDeleteUser returns a workflow with no target. onDeleted, if set, runs
// after every successful delete.
func NewDeleteUser(deleter UserDeleter, onDeleted func()) *DeleteUser {
	return &DeleteUser{deleter: deleter, onDeleted: onDeleted}
}

// Confirm selects user as the pending delete target.
func (d *DeleteUser) Confirm(user models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deleting {
		return ErrOperationPending
	}
	d.target = &user
	d.err = ""
	return nil
}

// Cancel drops the pending target without sending anything.
func (d *DeleteUser) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deleting {
		return ErrOperationPending
	}
	d.target = nil
	return nil
}

// Execute deletes the confirmed target. The target is cleared either way; on
// failure Err reports the status and the list is not touched.
func (d *DeleteUser) Execute(ctx context.Context) error {
	d.mu.Lock()
	if d.deleting {
		d.mu.Unlock()
		return ErrOperationPending
	}
	if d.target == nil {
		d.mu.Unlock()
		return ErrNoTarget
	}
	d.deleting = true
	d.err = ""
	user := *d.target
	d.mu.Unlock()

	logger := zerolog.Ctx(ctx).With().Int("user_id", user.ID).Str("username", user.Username).Logger()

	err := d.deleter.DeleteUser(ctx, user.ID)

	d.mu.Lock()
	d.deleting = false
	d.target = nil
	if err != nil {
		d.err = fmt.Sprintf("Delete failed: %s", deleteReason(err))
		d.mu.Unlock()
		logger.Error().Err(err).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	d.mu.Unlock()

	logger.Info().Msg("user deleted")
	if d.onDeleted != nil {
		d.onDeleted()
	}
	return nil
}

// Target returns the user awaiting confirmation.
func (d *DeleteUser) Target() (models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.target == nil {
		return models.User{}, false
	}
	return *d.target, true
}

// Err returns the message from the last failed delete, or "".
func (d *DeleteUser) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func deleteReason(err error) string {
	var httpErr *services.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP %d", httpErr.Status)
	}
	return err.Error()
}
