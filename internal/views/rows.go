package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/octofit/octofit-tracker/models"
)

// Table is implemented by every loaded view so it can be rendered as text or
// HTML without knowing the entity.
type Table interface {
	Title() string
	Noun(count int) string
	Empty() bool
	Header() []string
	Cells() [][]string
}

const missingValue = "—"

type UserRow struct {
	Index    int
	ID       int
	Username string
	FullName string
	Email    string
}

type UsersView struct {
	Users []models.User
	Rows  []UserRow
}

func NewUsersView(users []models.User) UsersView {
	rows := make([]UserRow, 0, len(users))
	for i, u := range users {
		rows = append(rows, UserRow{
			Index:    i + 1,
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName(),
			Email:    u.Email,
		})
	}
	return UsersView{Users: users, Rows: rows}
}

func (v UsersView) Title() string { return "Users" }
func (v UsersView) Empty() bool   { return len(v.Rows) == 0 }
func (v UsersView) Noun(n int) string {
	return plural(n, "record")
}
func (v UsersView) Header() []string {
	return []string{"#", "ID", "Full Name", "Username", "Email"}
}
func (v UsersView) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		cells = append(cells, []string{strconv.Itoa(r.Index), strconv.Itoa(r.ID), r.FullName, "@" + r.Username, r.Email})
	}
	return cells
}

type TeamRow struct {
	Index       int
	ID          int
	Name        string
	Members     []string
	MemberNames []string
}

// TeamsView also carries the full user list, which membership editing needs
// to compute who can be added.
type TeamsView struct {
	Teams []models.Team
	Users []models.User
	Names map[string]string
	Rows  []TeamRow
}

func NewTeamsView(teams []models.Team, users []models.User) TeamsView {
	names := DisplayNames(users)
	rows := make([]TeamRow, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, TeamRow{
			Index:       i + 1,
			ID:          t.ID,
			Name:        t.Name,
			Members:     append([]string(nil), t.Members...),
			MemberNames: JoinNames(names, t.Members),
		})
	}
	return TeamsView{Teams: teams, Users: users, Names: names, Rows: rows}
}

// Team returns the loaded team with the given id.
func (v TeamsView) Team(id int) (models.Team, bool) {
	for _, t := range v.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

func (v TeamsView) Title() string { return "Teams" }
func (v TeamsView) Empty() bool   { return len(v.Rows) == 0 }
func (v TeamsView) Noun(n int) string {
	return plural(n, "team")
}
func (v TeamsView) Header() []string {
	return []string{"#", "ID", "Team Name", "Members"}
}
func (v TeamsView) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		members := "No members"
		if len(r.MemberNames) > 0 {
			members = strings.Join(r.MemberNames, ", ")
		}
		cells = append(cells, []string{strconv.Itoa(r.Index), strconv.Itoa(r.ID), r.Name, members})
	}
	return cells
}

type ActivityRow struct {
	Index        int
	ID           int
	Athlete      string
	ActivityType string
	Duration     string
	Date         string
}

type ActivitiesView struct {
	Activities []models.Activity
	Rows       []ActivityRow
}

func NewActivitiesView(activities []models.Activity, users []models.User) ActivitiesView {
	names := DisplayNames(users)
	rows := make([]ActivityRow, 0, len(activities))
	for i, a := range activities {
		rows = append(rows, ActivityRow{
			Index:        i + 1,
			ID:           a.ID,
			Athlete:      ResolveName(names, a.User),
			ActivityType: a.ActivityType,
			Duration:     strconv.FormatFloat(a.Duration, 'f', -1, 64),
			Date:         FormatDate(a.Date),
		})
	}
	return ActivitiesView{Activities: activities, Rows: rows}
}

func (v ActivitiesView) Title() string { return "Activities" }
func (v ActivitiesView) Empty() bool   { return len(v.Rows) == 0 }
func (v ActivitiesView) Noun(n int) string {
	return plural(n, "record")
}
func (v ActivitiesView) Header() []string {
	return []string{"#", "Athlete", "Activity Type", "Duration (min)", "Date"}
}
func (v ActivitiesView) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		cells = append(cells, []string{strconv.Itoa(r.Index), r.Athlete, r.ActivityType, r.Duration, r.Date})
	}
	return cells
}

// LeaderboardRow's Rank is the 1-based response position.
type LeaderboardRow struct {
	Rank     int
	ID       int
	User     string
	Score    int
	Calories string
}

// Podium reports whether the row is one of the top three.
func (r LeaderboardRow) Podium() bool {
	return r.Rank <= 3
}

type LeaderboardView struct {
	Entries []models.LeaderboardEntry
	Rows    []LeaderboardRow
}

func NewLeaderboardView(entries []models.LeaderboardEntry, users []models.User) LeaderboardView {
	names := DisplayNames(users)
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		calories := missingValue
		if e.Calories != nil {
			calories = FormatNumber(*e.Calories)
		}
		rows = append(rows, LeaderboardRow{
			Rank:     i + 1,
			ID:       e.ID,
			User:     ResolveName(names, e.User),
			Score:    e.Score,
			Calories: calories,
		})
	}
	return LeaderboardView{Entries: entries, Rows: rows}
}

// Sorted reports whether entries are in descending score order, which the
// rank column assumes.
func (v LeaderboardView) Sorted() bool {
	for i := 1; i < len(v.Entries); i++ {
		if v.Entries[i].Score > v.Entries[i-1].Score {
			return false
		}
	}
	return true
}

func (v LeaderboardView) Title() string { return "Leaderboard" }
func (v LeaderboardView) Empty() bool   { return len(v.Rows) == 0 }
func (v LeaderboardView) Noun(n int) string {
	return plural(n, "athlete")
}
func (v LeaderboardView) Header() []string {
	return []string{"Rank", "User", "Score", "Calories Burned"}
}
func (v LeaderboardView) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		cells = append(cells, []string{
			strconv.Itoa(r.Rank),
			r.User,
			fmt.Sprintf("%d pts", r.Score),
			r.Calories + " kcal",
		})
	}
	return cells
}

type WorkoutRow struct {
	Index       int
	ID          int
	Name        string
	Description string
	Exercises   []string
}

type WorkoutsView struct {
	Workouts []models.Workout
	Rows     []WorkoutRow
}

func NewWorkoutsView(workouts []models.Workout) WorkoutsView {
	rows := make([]WorkoutRow, 0, len(workouts))
	for i, w := range workouts {
		rows = append(rows, WorkoutRow{
			Index:       i + 1,
			ID:          w.ID,
			Name:        w.Name,
			Description: w.Description,
			Exercises:   append([]string(nil), w.Exercises...),
		})
	}
	return WorkoutsView{Workouts: workouts, Rows: rows}
}

func (v WorkoutsView) Title() string { return "Workouts" }
func (v WorkoutsView) Empty() bool   { return len(v.Rows) == 0 }
func (v WorkoutsView) Noun(n int) string {
	return plural(n, "plan")
}
func (v WorkoutsView) Header() []string {
	return []string{"#", "Name", "Description", "Exercises"}
}
func (v WorkoutsView) Cells() [][]string {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		cells = append(cells, []string{strconv.Itoa(r.Index), r.Name, r.Description, strings.Join(r.Exercises, ", ")})
	}
	return cells
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// FormatDate renders an ISO date as "Jan 2, 2006". Blank input renders a dash
// and anything unparseable is returned unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingValue
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// FormatNumber renders v with comma thousands separators and no trailing
// zeros, e.g. 12345.5 -> "12,345.5".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
