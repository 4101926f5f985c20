package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/octofit/octofit-tracker/internal/views"
	"github.com/octofit/octofit-tracker/internal/workflow"
	"github.com/octofit/octofit-tracker/models"
	"github.com/spf13/cobra"
)

const editorHelp = `Commands:
  add <username>     add a user to the team
  remove <username>  remove a member
  show               list current members
  available          list users who can be added
  save               replace the team's members with this list
  cancel, quit       discard changes
  help               show this help`

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams and manage their members",
}

var teamsManageCmd = &cobra.Command{
	Use:   "manage <team-id>",
	Short: "Edit a team's members interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}

		if err := commonSetUp(cmd); err != nil {
			return err
		}

		state := views.LoadTeams(cmd.Context(), service.Backend)
		view, ok := state.Data()
		if !ok {
			return printState(cmd.OutOrStdout(), state)
		}

		team, ok := view.Team(id)
		if !ok {
			return fmt.Errorf("no team with id %d", id)
		}

		m := workflow.NewMembership(service.Backend, nil)
		if err := m.Open(team); err != nil {
			return err
		}

		editor := &memberEditor{
			membership: m,
			users:      view.Users,
			names:      view.Names,
			out:        cmd.OutOrStdout(),
		}
		return editor.run(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
	teamsCmd.AddCommand(
		listCommand("list", "List teams and their members", views.LoadTeams),
		teamsManageCmd,
	)
}

// memberEditor drives a membership draft from line commands.
type memberEditor struct {
	membership *workflow.Membership
	users      []models.User
	names      map[string]string
	out        io.Writer
}

// run reads commands until the draft is saved or discarded. End of input
// discards the draft; so does ctx ending, even while waiting for input.
func (e *memberEditor) run(ctx context.Context, in io.Reader) error {
	team, _ := e.membership.Team()
	fmt.Fprintf(e.out, "Managing members of %s. Type \"help\" for commands.\n", team.Name)
	e.show()

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := readLines(readCtx, in)
	for {
		if err := ctx.Err(); err != nil {
			_ = e.membership.Cancel()
			return err
		}

		fmt.Fprint(e.out, "> ")
		line := nextLine(ctx, lines)
		switch {
		case errors.Is(line.err, io.EOF):
			_ = e.membership.Cancel()
			fmt.Fprintln(e.out, "\nDiscarded changes.")
			return nil
		case ctx.Err() != nil:
			_ = e.membership.Cancel()
			return ctx.Err()
		case line.err != nil:
			_ = e.membership.Cancel()
			return fmt.Errorf("failed to read input: %w", line.err)
		}

		fields := strings.Fields(line.text)
		if len(fields) == 0 {
			continue
		}

		switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
		case "add":
			e.add(args)
		case "remove", "rm":
			e.remove(args)
		case "show", "ls":
			e.show()
		case "available":
			e.available()
		case "save":
			if err := e.membership.Save(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				fmt.Fprintln(e.out, e.membership.Err())
				continue
			}
			fmt.Fprintln(e.out, "Saved.")
			return nil
		case "cancel", "quit", "exit":
			_ = e.membership.Cancel()
			fmt.Fprintln(e.out, "Discarded changes.")
			return nil
		case "help", "?":
			fmt.Fprintln(e.out, editorHelp)
		default:
			fmt.Fprintf(e.out, "Unknown command %q. Type \"help\" for commands.\n", command)
		}
	}
}

func (e *memberEditor) add(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: add <username>")
		return
	}
	username := strings.TrimPrefix(args[0], "@")

	if _, known := e.names[username]; !known {
		fmt.Fprintf(e.out, "No user @%s.\n", username)
		return
	}

	before := len(e.membership.Members())
	if err := e.membership.AddMember(username); err != nil {
		fmt.Fprintln(e.out, err)
		return
	}
	if len(e.membership.Members()) == before {
		fmt.Fprintf(e.out, "@%s is already a member.\n", username)
		return
	}
	fmt.Fprintf(e.out, "Added %s.\n", views.ResolveName(e.names, username))
}

func (e *memberEditor) remove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: remove <username>")
		return
	}
	username := strings.TrimPrefix(args[0], "@")

	before := len(e.membership.Members())
	if err := e.membership.RemoveMember(username); err != nil {
		fmt.Fprintln(e.out, err)
		return
	}
	if len(e.membership.Members()) == before {
		fmt.Fprintf(e.out, "@%s is not a member.\n", username)
		return
	}
	fmt.Fprintf(e.out, "Removed %s.\n", views.ResolveName(e.names, username))
}

func (e *memberEditor) show() {
	members := e.membership.Members()
	if len(members) == 0 {
		fmt.Fprintln(e.out, "No members yet.")
		return
	}
	fmt.Fprintln(e.out, "Current members:")
	for _, username := range members {
		fmt.Fprintf(e.out, "  %s (@%s)\n", views.ResolveName(e.names, username), username)
	}
}

func (e *memberEditor) available() {
	users := e.membership.AvailableToAdd(e.users)
	if len(users) == 0 {
		fmt.Fprintln(e.out, "All users are already members.")
		return
	}
	fmt.Fprintln(e.out, "Available:")
	for _, u := range users {
		fmt.Fprintf(e.out, "  %s (@%s)\n", u.FullName(), u.Username)
	}
}
