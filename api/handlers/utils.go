package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/octofit/octofit-tracker/internal/views"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/users", Label: "Users"},
	{Href: "/teams", Label: "Teams"},
	{Href: "/activities", Label: "Activities"},
	{Href: "/leaderboard", Label: "Leaderboard"},
	{Href: "/workouts", Label: "Workouts"},
}

var pages = parsePages("home.html", "table.html", "user_form.html", "confirm_delete.html", "draft.html")

func parsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return parsed
}

// layout is the data every page template receives; Body is the page's own.
type layout struct {
	Active string
	Nav    []navLink
	Body   any
}

// writePage renders a page inside the shared layout. The page is rendered to
// a buffer first so a template failure still yields a clean 500.
func writePage(w http.ResponseWriter, r *http.Request, statusCode int, page, active string, body any) {
	logger := zerolog.Ctx(r.Context())

	tmpl, ok := pages[page]
	if !ok {
		logger.Error().Str("page", page).Msg("unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", layout{Active: active, Nav: navLinks, Body: body}); err != nil {
		logger.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Pages always reflect a fresh fetch
	w.Header().Set("Cache-Control", "max-age=0")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

// redirect sends the browser to location after a form post.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

type tablePage struct {
	Title      string
	Badge      string
	Empty      string
	Error      string
	Notice     string
	AddHref    string
	Header     []string
	HasActions bool
	Rows       []tableRow
}

type tableRow struct {
	Cells     []string
	Highlight bool
	Action    *rowAction
}

type rowAction struct {
	Label string
	Href  string
	Class string
	Post  bool
}

// newTablePage converts a loaded view state into template data and the
// status code to serve it with.
func newTablePage[V views.Table](s views.State[V]) (tablePage, int, V) {
	view, ok := s.Data()
	if !ok {
		msg, _ := s.Message()
		return tablePage{Title: view.Title(), Error: msg}, http.StatusBadGateway, view
	}

	cells := view.Cells()
	page := tablePage{
		Title:  view.Title(),
		Badge:  view.Noun(len(cells)),
		Header: view.Header(),
		Rows:   make([]tableRow, 0, len(cells)),
	}
	if view.Empty() {
		page.Empty = views.EmptyMessage(view)
	}
	for _, c := range cells {
		page.Rows = append(page.Rows, tableRow{Cells: c})
	}
	return page, http.StatusOK, view
}
