package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/internal/views"
	"github.com/octofit/octofit-tracker/internal/workflow"
	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
)

type userFormPage struct {
	Form  workflow.UserForm
	Error string
}

// ListUsers renders the users table with add and delete controls.
func ListUsers(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeUsers(w, r, svc, http.StatusOK, "")
	}
}

func writeUsers(w http.ResponseWriter, r *http.Request, svc *services.Service, statusCode int, notice string) {
	page, status, view := newTablePage(views.LoadUsers(r.Context(), svc.Backend))
	if status == http.StatusOK {
		status = statusCode
		page.AddHref = "/users/new"
		page.HasActions = true
		for i, row := range view.Rows {
			page.Rows[i].Action = &rowAction{
				Label: "Delete",
				Href:  fmt.Sprintf("/users/%d/delete", row.ID),
				Class: "btn-outline-danger",
			}
		}
	}
	page.Notice = notice
	writePage(w, r, status, "table.html", "Users", page)
}

// NewUserForm renders an empty add-user form.
func NewUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, http.StatusOK, "user_form.html", "Users", userFormPage{})
	}
}

// CreateUser submits the add-user form. Any failure re-renders the form with
// every value entered, password included, so the user can retry as is.
func CreateUser(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		form := workflow.UserForm{
			Username:  r.PostFormValue("username"),
			FirstName: r.PostFormValue("first_name"),
			LastName:  r.PostFormValue("last_name"),
			Email:     r.PostFormValue("email"),
			Password:  r.PostFormValue("password"),
		}

		add := workflow.NewAddUser(svc.Backend, nil)
		if _, err := add.Submit(r.Context(), form); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, workflow.ErrFieldsRequired) {
				status = http.StatusUnprocessableEntity
			}
			writePage(w, r, status, "user_form.html", "Users", userFormPage{Form: add.Form(), Error: add.Err()})
			return
		}

		redirect(w, r, "/users")
	}
}

// ConfirmDeleteUser asks before deleting the user named in the path.
func ConfirmDeleteUser(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.NotFound(w, r)
			return
		}

		users, err := svc.Backend.ListUsers(r.Context())
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load users")
			writeUsers(w, r, svc, http.StatusBadGateway, "")
			return
		}

		user, ok := findUser(users, id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		writePage(w, r, http.StatusOK, "confirm_delete.html", "Users", struct {
			ID   int
			Name string
		}{user.ID, user.FullName()})
	}
}

// DeleteUser deletes the user and returns to the list. A failure shows a
// banner above the unchanged list.
func DeleteUser(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.NotFound(w, r)
			return
		}

		del := workflow.NewDeleteUser(svc.Backend, nil)
		if err := del.Confirm(models.User{ID: id}); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err := del.Execute(r.Context()); err != nil {
			writeUsers(w, r, svc, http.StatusBadGateway, del.Err())
			return
		}

		redirect(w, r, "/users")
	}
}

func findUser(users []models.User, id int) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
