package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Track launch tasks",
	}
	cmd.AddCommand(
		newChecklistListCmd(app),
		newChecklistAddCmd(app),
		newChecklistToggleCmd(app),
		newChecklistRemoveCmd(app),
	)
	return cmd
}

func newChecklistListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by category with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.services().Checklist.List(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatChecklist(c))
			return nil
		},
	}
}

func newChecklistAddCmd(app *App) *cobra.Command {
	var description, category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := app.services().Checklist.Add(cmd.Context(), args[0], description, category)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Added %s to %s (%s)\n", it.Title, it.Category, formatter.Dim(it.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task details")
	cmd.Flags().StringVar(&category, "category", domain.DefaultChecklistCategory, "Category, e.g. Legal or Finance")
	return cmd
}

func newChecklistToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or not done again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := app.services().Checklist.Toggle(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound("task", args[0])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "%s %s\n", formatter.Check(done), args[0])
			}
			return nil
		},
	}
}

func newChecklistRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Checklist.Remove(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound("task", args[0])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed task %s\n", args[0])
			}
			return nil
		},
	}
}
