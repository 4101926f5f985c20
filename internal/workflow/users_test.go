package workflow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var peter = UserForm{
	Username:  "spiderman",
	FirstName: "Peter",
	LastName:  "Parker",
	Email:     "peter@example.com",
	Password:  "secret",
}

func TestUserForm_Validate(t *testing.T) {
	assert.NoError(t, peter.Validate())

	blank := peter
	blank.Password = "   "
	err := blank.Validate()
	assert.ErrorIs(t, err, ErrFieldsRequired)
	assert.Equal(t, "All fields are required.", err.Error())

	blank = peter
	blank.Email = ""
	assert.ErrorIs(t, blank.Validate(), ErrFieldsRequired)
}

func TestAddUser_BlankPasswordRejectedLocally(t *testing.T) {
	backend := new(MockBackend)
	a := NewAddUser(backend, nil)
	a.Open()

	form := peter
	form.Password = ""
	_, err := a.Submit(context.Background(), form)

	assert.ErrorIs(t, err, ErrFieldsRequired)
	assert.Equal(t, "All fields are required.", a.Err())
	assert.True(t, a.IsOpen())
	assert.Equal(t, form, a.Form())
	backend.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestAddUser_Success(t *testing.T) {
	backend := new(MockBackend)
	backend.On("CreateUser", peter.NewUser()).Return(&models.User{ID: 9, Username: "spiderman"}, nil).Once()

	refetched := false
	a := NewAddUser(backend, func() { refetched = true })
	a.Open()

	created, err := a.Submit(context.Background(), peter)
	require.NoError(t, err)

	backend.AssertExpectations(t)
	assert.Equal(t, 9, created.ID)
	assert.False(t, a.IsOpen())
	assert.True(t, refetched)
}

func TestAddUser_ServerErrorKeepsForm(t *testing.T) {
	backend := new(MockBackend)
	backend.On("CreateUser", mock.Anything).Return(nil, &services.HTTPError{
		Status:  http.StatusBadRequest,
		Message: `{"username":["user with this username already exists."]}`,
	}).Once()

	refetched := false
	a := NewAddUser(backend, func() { refetched = true })
	a.Open()

	_, err := a.Submit(context.Background(), peter)
	require.Error(t, err)

	assert.True(t, a.IsOpen())
	assert.Equal(t, peter, a.Form())
	assert.Equal(t, `Failed to add user: {"username":["user with this username already exists."]}`, a.Err())
	assert.False(t, refetched)
}

func TestAddUser_OpenResetsForm(t *testing.T) {
	a := NewAddUser(new(MockBackend), nil)
	form := peter
	form.Email = ""
	_, _ = a.Submit(context.Background(), form)

	a.Open()
	assert.Equal(t, UserForm{}, a.Form())
	assert.Empty(t, a.Err())
	assert.NoError(t, a.Close())
	assert.False(t, a.IsOpen())
}

func TestDeleteUser_ConfirmThenExecute(t *testing.T) {
	backend := new(MockBackend)
	backend.On("DeleteUser", 7).Return(nil).Once()

	refetched := false
	d := NewDeleteUser(backend, func() { refetched = true })

	require.NoError(t, d.Confirm(models.User{ID: 7, Username: "bob"}))
	target, ok := d.Target()
	require.True(t, ok)
	assert.Equal(t, 7, target.ID)

	require.NoError(t, d.Execute(context.Background()))
	backend.AssertExpectations(t)
	assert.True(t, refetched)
	_, ok = d.Target()
	assert.False(t, ok)
}

func TestDeleteUser_CancelSendsNothing(t *testing.T) {
	backend := new(MockBackend)
	d := NewDeleteUser(backend, nil)

	require.NoError(t, d.Confirm(models.User{ID: 7}))
	require.NoError(t, d.Cancel())

	assert.ErrorIs(t, d.Execute(context.Background()), ErrNoTarget)
	backend.AssertNotCalled(t, "DeleteUser", mock.Anything)
}

func TestDeleteUser_ServerError(t *testing.T) {
	backend := new(MockBackend)
	backend.On("DeleteUser", 7).Return(&services.HTTPError{Status: http.StatusInternalServerError, Message: "HTTP 500"}).Once()

	refetched := false
	d := NewDeleteUser(backend, func() { refetched = true })
	require.NoError(t, d.Confirm(models.User{ID: 7, Username: "bob"}))

	err := d.Execute(context.Background())
	require.Error(t, err)

	var httpErr *services.HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Delete failed: HTTP 500", d.Err())
	assert.False(t, refetched)
	_, ok := d.Target()
	assert.False(t, ok)
}
