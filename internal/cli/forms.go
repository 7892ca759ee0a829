package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

// planforgeHuhTheme returns a huh theme using the Gruvbox palette.
func planforgeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(planforgeHuhTheme()).WithShowHelp(false)
}

// roleForm collects a new org chart role. reportsTo offers the existing
// titles but any label may be typed.
func roleForm(r *domain.Role, titles []string) *huh.Form {
	reports := huh.NewInput().
		Title("Reports To").
		Placeholder("e.g. CEO").
		Value(&r.ReportsTo)
	if len(titles) > 0 {
		reports = reports.Suggestions(titles).Description("Existing roles: " + strings.Join(titles, ", "))
	}
	return themed(
		huh.NewGroup(
			huh.NewInput().Title("Role Title").Placeholder("e.g. Head Baker").Value(&r.Title).Validate(requiredField("title")),
			huh.NewInput().Title("Person Name").Placeholder("leave blank if open").Value(&r.Name),
			huh.NewInput().Title("Department").Placeholder("e.g. Operations").Value(&r.Department),
			reports,
		),
		huh.NewGroup(
			huh.NewText().Title("Responsibilities").Value(&r.Responsibilities),
		),
	)
}

// milestoneForm collects a new roadmap milestone.
func milestoneForm(title, description, timeframe *string, category *domain.MilestoneCategory) *huh.Form {
	opts := make([]huh.Option[domain.MilestoneCategory], len(domain.Horizons))
	for i, h := range domain.Horizons {
		opts[i] = huh.NewOption(h.Label(), h)
	}
	if *category == "" {
		*category = domain.Horizon1Year
	}
	return themed(
		huh.NewGroup(
			huh.NewInput().Title("Milestone").Value(title).Validate(requiredField("title")),
			huh.NewInput().Title("Timeframe").Placeholder("e.g. Q3 2027").Value(timeframe),
			huh.NewSelect[domain.MilestoneCategory]().Title("Horizon").Options(opts...).Value(category),
			huh.NewText().Title("Description").Value(description),
		),
	)
}

func validAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// forecastForm edits the three projected years and the assumptions.
func forecastForm(f *domain.Forecast) *huh.Form {
	year := func(n int, revenue, expenses *string) *huh.Group {
		return huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Year %d Revenue", n)).Placeholder("0").Value(revenue).Validate(validAmount),
			huh.NewInput().Title(fmt.Sprintf("Year %d Expenses", n)).Placeholder("0").Value(expenses).Validate(validAmount),
		)
	}
	return themed(
		year(1, &f.Year1Revenue, &f.Year1Expenses),
		year(2, &f.Year2Revenue, &f.Year2Expenses),
		year(3, &f.Year3Revenue, &f.Year3Expenses),
		huh.NewGroup(huh.NewText().Title("Assumptions").Value(&f.Assumptions)),
	)
}

// aiSettingsForm edits the assistant provider and, for remote providers,
// the API key.
func aiSettingsForm(s *domain.AISettings) *huh.Form {
	if s.Provider == "" {
		s.Provider = domain.ProviderLocal
	}
	return themed(
		huh.NewGroup(
			huh.NewSelect[domain.Provider]().
				Title("Assistant Provider").
				Options(
					huh.NewOption("Local model (no key, downloads on first use)", domain.ProviderLocal),
					huh.NewOption("Groq", domain.ProviderGroq),
					huh.NewOption("OpenAI", domain.ProviderOpenAI),
				).
				Value(&s.Provider),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("API Key").
				EchoMode(huh.EchoModePassword).
				Value(&s.APIKey).
				Validate(requiredField("API key")),
			huh.NewInput().
				Title("Model").
				Placeholder("leave blank for the provider default").
				Value(&s.Model),
		).WithHideFunc(func() bool { return !s.Provider.Remote() }),
	)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}
