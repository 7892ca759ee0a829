package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newOrgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Build the team org chart",
	}
	cmd.AddCommand(
		newOrgListCmd(app),
		newOrgAddCmd(app),
		newOrgRemoveCmd(app),
		newOrgCheckCmd(app),
	)
	return cmd
}

func newOrgListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List roles grouped by department",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			o, err := app.services().OrgChart.List(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			assets, err := app.services().Assets.List(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatOrgChart(o, assets, o.ReportingIssues()))
			return nil
		},
	}
}

func newOrgAddCmd(app *App) *cobra.Command {
	var draft domain.Role

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a role",
		Long: `Add a role. --reports-to is the title of the role it reports to; it is
stored as typed and checked by "planforge org check".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if draft.Title == "" && app.interactive() {
				o, err := app.services().OrgChart.List(ctx)
				if err := loaded(cmd, err); err != nil {
					return err
				}
				titles := make([]string, len(o))
				for i, r := range o {
					titles[i] = r.Title
				}
				if err := roleForm(&draft, titles).RunWithContext(ctx); err != nil {
					return err
				}
			}

			if draft.PhotoAssetID != "" {
				assets, err := app.services().Assets.List(ctx)
				if err := loaded(cmd, err); err != nil {
					return err
				}
				if _, ok := assets.Find(draft.PhotoAssetID); !ok {
					return fmt.Errorf("no brand asset with id %q (see: planforge assets list)", draft.PhotoAssetID)
				}
			}

			r, err := app.services().OrgChart.Add(ctx, draft)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Added role %s (%s)\n", r.Title, formatter.Dim(r.ID))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Title, "title", "", "Role title")
	f.StringVar(&draft.Name, "name", "", "Person in the role")
	f.StringVar(&draft.Department, "department", "", "Department")
	f.StringVar(&draft.Responsibilities, "responsibilities", "", "What the role owns")
	f.StringVar(&draft.ReportsTo, "reports-to", "", "Title of the role this one reports to")
	f.StringVar(&draft.PhotoAssetID, "photo", "", "Brand asset id of the person's photo")
	return cmd
}

func newOrgRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a role",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().OrgChart.Remove(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound("role", args[0])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed role %s\n", args[0])
			}
			return nil
		},
	}
}

func newOrgCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report reporting lines that name no role or form a loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := app.services().OrgChart.Check(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatReportingIssues(issues))
			return nil
		},
	}
}
