package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/octofit/octofit-tracker/api/middleware"
	"github.com/octofit/octofit-tracker/api/services"
)

// NewRouter registers the web shell's routes.
func NewRouter(svc *services.Service, drafts *DraftStore) *mux.Router {
	r := mux.NewRouter()

	if svc.Metrics != nil {
		r.Handle("/metrics", svc.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", Healthz()).Methods(http.MethodGet)

	shell := r.NewRoute().Subrouter()
	shell.Use(middleware.WithLogger)
	shell.Use(middleware.WithMetrics(svc.Metrics))

	shell.HandleFunc("/", Home()).Methods(http.MethodGet)

	// User routes
	shell.HandleFunc("/users", ListUsers(svc)).Methods(http.MethodGet)
	shell.HandleFunc("/users", CreateUser(svc)).Methods(http.MethodPost)
	shell.HandleFunc("/users/new", NewUserForm()).Methods(http.MethodGet)
	shell.HandleFunc("/users/{id:[0-9]+}/delete", ConfirmDeleteUser(svc)).Methods(http.MethodGet)
	shell.HandleFunc("/users/{id:[0-9]+}/delete", DeleteUser(svc)).Methods(http.MethodPost)

	// Team membership routes
	shell.HandleFunc("/teams", ListTeams(svc)).Methods(http.MethodGet)
	shell.HandleFunc("/teams/{id:[0-9]+}/drafts", OpenDraft(svc, drafts)).Methods(http.MethodPost)
	shell.HandleFunc("/drafts/{draft}", ShowDraft(drafts)).Methods(http.MethodGet)
	shell.HandleFunc("/drafts/{draft}/add", AddDraftMember(drafts)).Methods(http.MethodPost)
	shell.HandleFunc("/drafts/{draft}/remove", RemoveDraftMember(drafts)).Methods(http.MethodPost)
	shell.HandleFunc("/drafts/{draft}/save", SaveDraft(drafts)).Methods(http.MethodPost)
	shell.HandleFunc("/drafts/{draft}/cancel", CancelDraft(drafts)).Methods(http.MethodPost)

	// Read-only views
	shell.HandleFunc("/activities", ListActivities(svc)).Methods(http.MethodGet)
	shell.HandleFunc("/leaderboard", ListLeaderboard(svc)).Methods(http.MethodGet)
	shell.HandleFunc("/workouts", ListWorkouts(svc)).Methods(http.MethodGet)

	return r
}
