package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newMarketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Market sizing, segments, competitors, risks and experiments",
	}
	cmd.AddCommand(
		newMarketShowCmd(app),
		newMarketSetCmd(app),
		newMarketAddSegmentCmd(app),
		newMarketAddCompetitorCmd(app),
		newMarketAddRiskCmd(app),
		newMarketAddExperimentCmd(app),
		newMarketRemoveCmd(app),
	)
	return cmd
}

func newMarketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the market research worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.services().Market.Get(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatMarket(m))
			return nil
		},
	}
}

func marketFieldKeys() string {
	keys := make([]string, len(domain.MarketFields))
	for i, f := range domain.MarketFields {
		keys[i] = f.Key
	}
	return strings.Join(keys, ", ")
}

func newMarketSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <text>",
		Short: "Replace a free-text field",
		Long:  "Replace a free-text field. Fields: " + marketFieldKeys() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Market.SetField(cmd.Context(), args[0], args[1])
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Updated %s\n", args[0])
			}
			return nil
		},
	}
}

// added prints the confirmation for a new list entry.
func added(cmd *cobra.Command, err error, what, name, id string) error {
	ok, err := saved(cmd, err)
	if err != nil {
		return err
	}
	if ok {
		printf(cmd, "Added %s %s (%s)\n", what, name, formatter.Dim(id))
	}
	return nil
}

func newMarketAddSegmentCmd(app *App) *cobra.Command {
	var s domain.CustomerSegment

	cmd := &cobra.Command{
		Use:   "add-segment <name>",
		Short: "Add a customer segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.Name = args[0]
			out, err := app.services().Market.AddSegment(cmd.Context(), s)
			return added(cmd, err, "segment", out.Name, out.ID)
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.JTBD, "jtbd", "", "Job the customer is trying to get done")
	f.StringVar(&s.BuyingTriggers, "triggers", "", "What makes them start looking")
	f.StringVar(&s.ProcurementCycle, "procurement", "", "How and how long they take to buy")
	f.StringVar(&s.Budget, "budget", "", "Typical budget")
	f.StringVar(&s.Quotes, "quotes", "", "Interview quotes")
	return cmd
}

func newMarketAddCompetitorCmd(app *App) *cobra.Command {
	var c domain.Competitor

	cmd := &cobra.Command{
		Use:   "add-competitor <name>",
		Short: "Add a competitor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Name = args[0]
			out, err := app.services().Market.AddCompetitor(cmd.Context(), c)
			return added(cmd, err, "competitor", out.Name, out.ID)
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.FoundingYear, "founded", "", "Founding year")
	f.StringVar(&c.HQ, "hq", "", "Headquarters")
	f.StringVar(&c.FundingRevenue, "funding", "", "Funding or revenue")
	f.StringVar(&c.CoreOffer, "offer", "", "Core offer")
	f.StringVar(&c.PricingModel, "pricing", "", "Pricing model")
	f.StringVar(&c.Differentiators, "differentiators", "", "What sets them apart")
	f.StringVar(&c.GTMMotion, "gtm", "", "Go-to-market motion")
	f.StringVar(&c.NotableCustomers, "customers", "", "Notable customers")
	return cmd
}

func newMarketAddRiskCmd(app *App) *cobra.Command {
	var likelihood, impact string

	cmd := &cobra.Command{
		Use:   "add-risk <description>",
		Short: "Add a risk graded by likelihood and impact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.services().Market.AddRisk(cmd.Context(), domain.Risk{
				Description: args[0],
				Likelihood:  domain.Level(likelihood),
				Impact:      domain.Level(impact),
			})
			return added(cmd, err, "risk", formatter.Truncate(out.Description, 40), out.ID)
		},
	}

	cmd.Flags().StringVar(&likelihood, "likelihood", string(domain.LevelMedium), "Low, Medium or High")
	cmd.Flags().StringVar(&impact, "impact", string(domain.LevelMedium), "Low, Medium or High")
	return cmd
}

func newMarketAddExperimentCmd(app *App) *cobra.Command {
	var e domain.Experiment

	cmd := &cobra.Command{
		Use:   "add-experiment <name>",
		Short: "Add a validation experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Name = args[0]
			out, err := app.services().Market.AddExperiment(cmd.Context(), e)
			return added(cmd, err, "experiment", out.Name, out.ID)
		},
	}

	cmd.Flags().StringVar(&e.Description, "description", "", "What you will test")
	cmd.Flags().StringVar(&e.CostRange, "cost", "", "Expected cost range")
	return cmd
}

func newMarketRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "remove <segments|competitors|risks|experiments> <id>",
		Aliases:   []string{"rm"},
		Short:     "Remove an entry from one of the lists",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.ListSegments), string(domain.ListCompetitors), string(domain.ListRisks), string(domain.ListExperiments)},
		RunE: func(cmd *cobra.Command, args []string) error {
			list := domain.MarketList(strings.ToLower(args[0]))
			_, err := app.services().Market.Remove(cmd.Context(), list, args[1])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound(strings.TrimSuffix(string(list), "s"), args[1])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed %s from %s\n", args[1], list)
			}
			return nil
		},
	}
}
