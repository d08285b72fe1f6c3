package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasktrack/internal/views"
)

func newTasksCmd(stdout io.Writer, opts *Options) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage active tasks",
	}

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				tasks := s.service.ActiveTasks(ctx)
				if jsonOutput(cmd) {
					return writeJSON(stdout, tasks)
				}
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(stdout, views.EmptyTasksText)
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintf(stdout, "%s  %s\n", t.ID, t.Text)
				}
				return nil
			})
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				task, err := s.service.AddTask(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Added task %s: %s\n", task.ID, task.Text)
				return nil
			})
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				done, err := s.service.CompleteTask(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Task completed: %s (%s)\n", done.Text, done.ID)
				return nil
			})
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task without completing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := s.service.DeleteTask(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Task deleted: %s\n", args[0])
				return nil
			})
		},
	})
	return tasksCmd
}

func newPlansCmd(stdout io.Writer, opts *Options) *cobra.Command {
	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage plans",
	}

	plansCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				plans := s.service.Plans(ctx)
				if jsonOutput(cmd) {
					return writeJSON(stdout, plans)
				}
				if len(plans) == 0 {
					_, _ = fmt.Fprintln(stdout, views.EmptyPlansText)
					return nil
				}
				for _, p := range plans {
					_, _ = fmt.Fprintf(stdout, "%d  %s  [%s]  Created: %s\n    %s\n",
						p.ID, p.Title, p.Status, views.FormatDate(p.CreatedAt), p.Description)
				}
				return nil
			})
		},
	})

	plansCmd.AddCommand(&cobra.Command{
		Use:   "add <title> <description>",
		Short: "Create a plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				plan, err := s.service.CreatePlan(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Created plan %d: %s\n", plan.ID, plan.Title)
				return nil
			})
		},
	})

	plansCmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <title> <description>",
		Short: "Replace a plan's title and description",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				plan, err := s.service.EditPlan(ctx, id, args[1], args[2])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Updated plan %d: %s\n", plan.ID, plan.Title)
				return nil
			})
		},
	})

	plansCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := s.service.DeletePlan(ctx, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Plan deleted: %d\n", id)
				return nil
			})
		},
	})
	return plansCmd
}

func newCompletedCmd(stdout io.Writer, opts *Options) *cobra.Command {
	completedCmd := &cobra.Command{
		Use:   "completed",
		Short: "Browse and manage completed tasks",
	}

	completedCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List completed tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				tasks := s.service.CompletedTasks(ctx)
				if jsonOutput(cmd) {
					return writeJSON(stdout, tasks)
				}
				_, _ = fmt.Fprintf(stdout, "Total completed: %d\n", len(tasks))
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(stdout, views.EmptyCompletedText)
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintf(stdout, "%s  %s  Completed: %s\n", t.ID, t.Text, views.FormatDateTime(t.CompletedAt))
				}
				return nil
			})
		},
	})

	completedCmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Move a completed task back to the active list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				task, err := s.service.RestoreTask(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Task restored: %s (%s)\n", task.Text, task.ID)
				return nil
			})
		},
	})

	completedCmd.AddCommand(&cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently delete a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := s.service.PurgeTask(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(stdout, "Task permanently deleted: %s\n", args[0])
				return nil
			})
		},
	})
	return completedCmd
}

var errResetNotConfirmed = errors.New("reset removes every task and plan; pass --yes to confirm")

func newResetCmd(stdout io.Writer, opts *Options) *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove all tasks, plans and completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errResetNotConfirmed
			}
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := s.service.Reset(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(stdout, "All data removed.")
				return nil
			})
		},
	}
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	return resetCmd
}

func parsePlanID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid plan id %q", raw)
	}
	return id, nil
}
