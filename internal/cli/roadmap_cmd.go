package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newRoadmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Plan milestones over 1, 5 and 10 year horizons",
	}
	cmd.AddCommand(
		newRoadmapListCmd(app),
		newRoadmapAddCmd(app),
		newRoadmapRemoveCmd(app),
	)
	return cmd
}

func newRoadmapListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List milestones grouped by horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.services().Roadmap.List(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatRoadmap(r))
			return nil
		},
	}
}

func newRoadmapAddCmd(app *App) *cobra.Command {
	var (
		title, description, timeframe, category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := domain.MilestoneCategory(category)
			if title == "" && app.interactive() {
				if err := milestoneForm(&title, &description, &timeframe, &cat).RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}

			m, err := app.services().Roadmap.Add(cmd.Context(), title, description, timeframe, cat)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Added milestone %s (%s)\n", m.Title, formatter.Dim(m.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().StringVar(&description, "description", "", "What the milestone means")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "When, e.g. Q3 2027")
	cmd.Flags().StringVar(&category, "category", string(domain.Horizon1Year), "Horizon: 1-year, 5-year or 10-year")
	return cmd
}

func newRoadmapRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a milestone",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Roadmap.Remove(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound("milestone", args[0])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed milestone %s\n", args[0])
			}
			return nil
		},
	}
}
