package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gymlog/models"
	"gymlog/services"

	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and review gym logs",
	}
	cmd.AddCommand(newLogAddCmd(), newLogListCmd(), newLogWatchCmd())
	return cmd
}

func newLogAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <exercise> <weight> <reps>",
		Short: "Record a set for the logged-in user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("weight %q is not a number", args[1])
			}
			reps, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("reps %q is not a whole number", args[2])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			user, err := application.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}

			entry, err := application.Logs.Record(user.ID, services.LogRequest{
				Exercise: args[0],
				Weight:   weight,
				Reps:     reps,
			})
			if err != nil {
				return err
			}

			success.Fprintf(cmd.OutOrStdout(), "Logged %s: %v x %d\n", entry.Exercise, entry.Weight, entry.Reps)
			return nil
		},
	}
}

func newLogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the logged-in user's logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			user, err := application.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}

			logs, err := application.Logs.History(ctx, user.ID)
			if err != nil {
				return err
			}

			printLogs(cmd.OutOrStdout(), logs)
			return nil
		},
	}
}

func newLogWatchCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the log list every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
			user, err := application.Auth.CurrentUser(lookupCtx)
			cancel()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cancelWatch := application.Logs.Watch(user.ID, func(logs []models.LogEntry) {
				title.Fprintf(out, "== %s: %d logs ==\n", user.Username, len(logs))
				printLogs(out, logs)
			})
			defer cancelWatch()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "for", 0, "stop after this long (default: until interrupted)")
	return cmd
}
