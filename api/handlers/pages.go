package handlers

import (
	"net/http"
	"time"

	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/internal/views"
)

type feature struct {
	Icon  string
	Title string
	Desc  string
}

var features = []feature{
	{Icon: "👤", Title: "User Profiles", Desc: "Manage athlete profiles and credentials."},
	{Icon: "🏃", Title: "Activity Logging", Desc: "Track workouts, runs, and exercise sessions."},
	{Icon: "🤝", Title: "Team Management", Desc: "Create teams and collaborate with others."},
	{Icon: "🏆", Title: "Leaderboard", Desc: "Compete and rank up against your teammates."},
	{Icon: "💪", Title: "Workout Plans", Desc: "Get personalized workout suggestions."},
}

// Home renders the landing page.
func Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, http.StatusOK, "home.html", "", struct {
			Links    []navLink
			Features []feature
			Year     int
		}{navLinks, features, time.Now().Year()})
	}
}

// Healthz reports liveness without touching the backend.
func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func ListActivities(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, status, _ := newTablePage(views.LoadActivities(r.Context(), svc.Backend))
		writePage(w, r, status, "table.html", "Activities", page)
	}
}

// ListLeaderboard highlights the top three rows.
func ListLeaderboard(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, status, view := newTablePage(views.LoadLeaderboard(r.Context(), svc.Backend))
		for i, row := range view.Rows {
			page.Rows[i].Highlight = row.Podium()
		}
		writePage(w, r, status, "table.html", "Leaderboard", page)
	}
}

func ListWorkouts(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, status, _ := newTablePage(views.LoadWorkouts(r.Context(), svc.Backend))
		writePage(w, r, status, "table.html", "Workouts", page)
	}
}
