package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newForecastCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project three years of revenue and expenses",
	}
	cmd.AddCommand(
		newForecastShowCmd(app),
		newForecastSetCmd(app),
		newForecastAssumptionsCmd(app),
		newForecastEditCmd(app),
	)
	return cmd
}

func newForecastShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the projection table with profit and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.services().Forecast.Get(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatForecast(f))
			return nil
		},
	}
}

func newForecastSetCmd(app *App) *cobra.Command {
	var revenue, expenses string

	cmd := &cobra.Command{
		Use:   "set <year>",
		Short: "Set revenue and expenses for year 1, 2 or 3",
		Long: `Set revenue and expenses for year 1, 2 or 3. Only the flags given are
changed; pass an empty string to clear an amount.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1 || year > domain.ForecastYears {
				return &domain.ValidationError{Field: "year", Message: fmt.Sprintf("must be 1, 2 or 3, got %q", args[0])}
			}
			if !cmd.Flags().Changed("revenue") && !cmd.Flags().Changed("expenses") {
				return fmt.Errorf("nothing to change; pass --revenue and/or --expenses")
			}

			ctx := cmd.Context()
			f, err := app.services().Forecast.Get(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			y := f.Year(year)
			if cmd.Flags().Changed("revenue") {
				y.Revenue = revenue
			}
			if cmd.Flags().Changed("expenses") {
				y.Expenses = expenses
			}

			f, err = app.services().Forecast.SetYear(ctx, year, y)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Year %d profit: %s\n", year, formatter.Amount(f.Year(year).Profit()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&revenue, "revenue", "", "Projected revenue")
	cmd.Flags().StringVar(&expenses, "expenses", "", "Projected expenses")
	return cmd
}

func newForecastAssumptionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assumptions <text>",
		Short: "Record the assumptions behind the numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Forecast.SetAssumptions(cmd.Context(), args[0])
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printLine(cmd, "Assumptions updated.")
			}
			return nil
		},
	}
}

func newForecastEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Fill in all three years in a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("forecast edit needs an interactive terminal; use: planforge forecast set <year> --revenue --expenses")
			}
			ctx := cmd.Context()
			f, err := app.services().Forecast.Get(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			if err := forecastForm(&f).RunWithContext(ctx); err != nil {
				return err
			}
			ok, err := saved(cmd, app.services().Forecast.Save(ctx, f))
			if err != nil {
				return err
			}
			if ok {
				printLine(cmd, formatter.FormatForecast(f))
			}
			return nil
		},
	}
}
