package cli

import (
	"context"
	"errors"

	"gymlog/services"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts (admin only)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupApp(cmd, args); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			_, err := application.Auth.RequireAdmin(ctx)
			return err
		},
	}
	cmd.AddCommand(newUserAddCmd(), newUserListCmd(), newUserDeleteCmd(), newUserResetCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				var err error
				password, err = readPassword(cmd)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			err := application.Users.Add(ctx, services.UserRequest{
				Username: args[0],
				Password: password,
				IsAdmin:  admin,
			})
			if err != nil {
				return err
			}

			success.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant admin rights")
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts by username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := application.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			if err := application.Users.Delete(ctx, args[0]); err != nil {
				return err
			}
			success.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newUserResetCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every account, including your own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return errors.New("refusing to delete all users without --yes")
			}
			application.Users.Reset()
			warn.Fprintln(cmd.OutOrStdout(), "All users deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deleting every account")
	return cmd
}
