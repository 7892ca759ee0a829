package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newSWOTCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swot",
		Short: "Strengths, weaknesses, opportunities and threats",
	}
	cmd.AddCommand(
		newSWOTListCmd(app),
		newSWOTAddCmd(app),
		newSWOTRemoveCmd(app),
	)
	return cmd
}

func newSWOTListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "Print all four quadrants",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.services().SWOT.Get(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatSWOT(s))
			return nil
		},
	}
}

func newSWOTAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "add <quadrant> <text>",
		Short:     "Add an item to a quadrant",
		Long:      "Add an item to a quadrant: strengths, weaknesses, opportunities or threats.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: quadrantNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := domain.ParseQuadrant(args[0])
			if err != nil {
				return err
			}
			it, err := app.services().SWOT.Add(cmd.Context(), q, args[1])
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Added to %s (%s)\n", q.Label(), formatter.Dim(it.ID))
			}
			return nil
		},
	}
}

func newSWOTRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <quadrant> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from a quadrant",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := domain.ParseQuadrant(args[0])
			if err != nil {
				return err
			}
			_, err = app.services().SWOT.Remove(cmd.Context(), q, args[1])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound(string(q)+" item", args[1])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed %s from %s\n", args[1], q.Label())
			}
			return nil
		},
	}
}

func quadrantNames() []string {
	names := make([]string, len(domain.Quadrants))
	for i, q := range domain.Quadrants {
		names[i] = string(q)
	}
	return names
}
