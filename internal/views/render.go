package views

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderText writes a view state for a terminal: a loading line, an error
// banner, a "no records" placeholder, or an aligned table.
func RenderText[V Table](w io.Writer, s State[V]) error {
	switch s.Kind() {
	case KindLoading:
		_, err := fmt.Fprintln(w, "Loading…")
		return err
	case KindError:
		msg, _ := s.Message()
		_, err := fmt.Fprintf(w, "Error: %s\n", msg)
		return err
	}

	view, _ := s.Data()
	cells := view.Cells()
	if _, err := fmt.Fprintf(w, "%s (%s)\n\n", view.Title(), view.Noun(len(cells))); err != nil {
		return err
	}

	if view.Empty() {
		_, err := fmt.Fprintln(w, EmptyMessage(view))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(view.Header(), "\t"))
	for _, row := range cells {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// EmptyMessage is the placeholder shown for an empty collection.
func EmptyMessage(t Table) string {
	return fmt.Sprintf("No %s found.", emptyNoun(t))
}

func emptyNoun(t Table) string {
	if _, ok := t.(LeaderboardView); ok {
		return "leaderboard data"
	}
	return strings.ToLower(t.Title())
}
