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

var (
	newUser     workflow.UserForm
	skipConfirm bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List, add and delete users",
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commonSetUp(cmd); err != nil {
			return err
		}

		add := workflow.NewAddUser(service.Backend, nil)
		created, err := add.Submit(cmd.Context(), newUser)
		if err != nil {
			return errors.New(add.Err())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added @%s (id %d)\n", created.Username, created.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		if err := commonSetUp(cmd); err != nil {
			return err
		}

		users, err := service.Backend.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}

		var target *models.User
		for i := range users {
			if users[i].ID == id {
				target = &users[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no user with id %d", id)
		}

		del := workflow.NewDeleteUser(service.Backend, nil)
		if err := del.Confirm(*target); err != nil {
			return err
		}

		if !skipConfirm {
			ok, err := confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Are you sure you want to delete %s? This cannot be undone. [y/N] ", target.FullName()))
			if err != nil {
				_ = del.Cancel()
				return err
			}
			if !ok {
				_ = del.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := del.Execute(cmd.Context()); err != nil {
			return errors.New(del.Err())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", target.FullName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(
		listCommand("list", "List users", views.LoadUsers),
		usersAddCmd,
		usersDeleteCmd,
	)

	usersAddCmd.Flags().StringVar(&newUser.Username, "username", "", "login name")
	usersAddCmd.Flags().StringVar(&newUser.FirstName, "first-name", "", "first name")
	usersAddCmd.Flags().StringVar(&newUser.LastName, "last-name", "", "last name")
	usersAddCmd.Flags().StringVar(&newUser.Email, "email", "", "email address")
	usersAddCmd.Flags().StringVar(&newUser.Password, "password", "", "initial password")

	usersDeleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
}

// confirm prints prompt and reports whether the answer was yes. It returns
// ctx's error if ctx ends before an answer arrives.
func confirm(ctx context.Context, in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	line := nextLine(readCtx, readLines(readCtx, in))
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if line.err != nil {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line.text)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
