package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/internal/views"
	"github.com/octofit/octofit-tracker/internal/workflow"
	"github.com/rs/zerolog"
)

type draftMember struct {
	Username string
	Name     string
}

type draftPage struct {
	Base      string
	TeamName  string
	Error     string
	Members   []draftMember
	Available []draftMember
}

// ListTeams renders the teams table with a Manage Members control per team.
func ListTeams(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, status, view := newTablePage(views.LoadTeams(r.Context(), svc.Backend))
		if status == http.StatusOK {
			page.HasActions = true
			for i, row := range view.Rows {
				page.Rows[i].Action = &rowAction{
					Label: "Manage Members",
					Href:  fmt.Sprintf("/teams/%d/drafts", row.ID),
					Class: "btn-outline-primary",
					Post:  true,
				}
			}
		}
		writePage(w, r, status, "table.html", "Teams", page)
	}
}

// OpenDraft loads the team and the user list and starts a membership draft.
func OpenDraft(svc *services.Service, drafts *DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.NotFound(w, r)
			return
		}

		state := views.LoadTeams(r.Context(), svc.Backend)
		view, ok := state.Data()
		if !ok {
			page, status, _ := newTablePage(state)
			writePage(w, r, status, "table.html", "Teams", page)
			return
		}

		team, ok := view.Team(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		d, err := drafts.Open(svc.Backend, team, view.Users)
		if err != nil {
			status := http.StatusConflict
			if errors.Is(err, ErrTooManyDrafts) {
				status = http.StatusServiceUnavailable
			}
			zerolog.Ctx(r.Context()).Warn().Err(err).Int("team_id", team.ID).Msg("failed to open membership draft")
			http.Error(w, err.Error(), status)
			return
		}

		zerolog.Ctx(r.Context()).Info().
			Int("team_id", team.ID).
			Str("draft", d.ID.String()).
			Msg("membership draft opened")
		redirect(w, r, draftPath(d.ID))
	}
}

// ShowDraft renders the membership editor.
func ShowDraft(drafts *DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(drafts, r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeDraft(w, r, http.StatusOK, d)
	}
}

// AddDraftMember adds the posted username to the draft.
func AddDraftMember(drafts *DraftStore) http.HandlerFunc {
	return editDraft(drafts, (*workflow.Membership).AddMember)
}

// RemoveDraftMember removes the posted username from the draft.
func RemoveDraftMember(drafts *DraftStore) http.HandlerFunc {
	return editDraft(drafts, (*workflow.Membership).RemoveMember)
}

func editDraft(drafts *DraftStore, edit func(*workflow.Membership, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(drafts, r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		username := r.PostFormValue("username")
		if username == "" {
			http.Error(w, "Missing username", http.StatusBadRequest)
			return
		}

		if err := edit(d.Membership, username); err != nil {
			writeWorkflowError(w, err)
			return
		}
		redirect(w, r, draftPath(d.ID))
	}
}

// SaveDraft sends the draft as the team's member list. On failure the editor
// is shown again with the draft intact.
func SaveDraft(drafts *DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(drafts, r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		if err := d.Membership.Save(r.Context()); err != nil {
			if errors.Is(err, workflow.ErrOperationPending) || errors.Is(err, workflow.ErrNoDraft) {
				writeWorkflowError(w, err)
				return
			}
			writeDraft(w, r, http.StatusBadGateway, d)
			return
		}

		redirect(w, r, "/teams")
	}
}

// CancelDraft discards the draft without contacting the backend.
func CancelDraft(drafts *DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(drafts, r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		if err := d.Membership.Cancel(); err != nil {
			writeWorkflowError(w, err)
			return
		}
		drafts.Discard(d.ID)
		redirect(w, r, "/teams")
	}
}

func lookupDraft(drafts *DraftStore, r *http.Request) (*Draft, bool) {
	id, err := uuid.Parse(mux.Vars(r)["draft"])
	if err != nil {
		return nil, false
	}
	return drafts.Get(id)
}

func draftPath(id uuid.UUID) string {
	return "/drafts/" + id.String()
}

func writeDraft(w http.ResponseWriter, r *http.Request, statusCode int, d *Draft) {
	team, ok := d.Membership.Team()
	if !ok {
		http.NotFound(w, r)
		return
	}

	names := views.DisplayNames(d.Users)
	page := draftPage{
		Base:     draftPath(d.ID),
		TeamName: team.Name,
		Error:    d.Membership.Err(),
	}
	for _, username := range team.Members {
		page.Members = append(page.Members, draftMember{Username: username, Name: views.ResolveName(names, username)})
	}
	for _, u := range d.Membership.AvailableToAdd(d.Users) {
		page.Available = append(page.Available, draftMember{Username: u.Username, Name: u.FullName()})
	}

	writePage(w, r, statusCode, "draft.html", "Teams", page)
}

func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrOperationPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, workflow.ErrNoDraft):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
