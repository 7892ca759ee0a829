package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/planforge/internal/domain"
)

func TestFormatCanvas_CountsFilledBlocks(t *testing.T) {
	c := domain.Canvas{ValuePropositions: "Fresh bread", Channels: "Stall"}
	got := stripANSI(FormatCanvas(c))
	assert.Contains(t, got, "BUSINESS MODEL CANVAS")
	assert.Contains(t, got, "Fresh bread")
	assert.Contains(t, got, "Who are your customers?")
	assert.Contains(t, got, "2 of 9 blocks filled")
}

func TestFormatDeck_Bullets(t *testing.T) {
	slides := domain.DefaultDeck()
	slides[1].Content = "- Too slow\n- Too costly"
	got := stripANSI(FormatDeck(slides, true))
	assert.Contains(t, got, "logo: set")
	assert.Contains(t, got, "• Too slow")
	assert.Contains(t, got, "[title]")
	assert.Contains(t, got, "[contact]")
}

func TestFormatForecast_ProfitAndTotals(t *testing.T) {
	f := domain.Forecast{Year1Revenue: "100000", Year1Expenses: "40000", Year2Expenses: "5000"}
	got := stripANSI(FormatForecast(f))
	assert.Contains(t, got, "60,000")
	assert.Contains(t, got, "-5,000")
	assert.Contains(t, got, "45,000")
	assert.Contains(t, got, "None recorded")
}

func TestFormatRoadmap_GroupsByHorizon(t *testing.T) {
	r := domain.Roadmap{
		{ID: "m1", Title: "Open shop", Category: domain.Horizon1Year},
		{ID: "m2", Title: "Franchise", Category: domain.Horizon10Year},
	}
	got := stripANSI(FormatRoadmap(r))
	assert.Contains(t, got, "1-Year Plan (1)")
	assert.Contains(t, got, "5-Year Plan (0)")
	assert.Contains(t, got, "Franchise")
}

func TestFormatOrgChart_FlagsIssues(t *testing.T) {
	o := domain.OrgChart{
		{ID: "r1", Title: "CEO", Department: "Leadership"},
		{ID: "r2", Title: "Baker", ReportsTo: "Head Baker"},
	}
	got := stripANSI(FormatOrgChart(o, nil, o.ReportingIssues()))
	assert.Contains(t, got, "Leadership")
	assert.Contains(t, got, domain.UnassignedDepartment)
	assert.Contains(t, got, "! Baker")
	assert.Contains(t, got, "→ Head Baker")
}

func TestFormatReportingIssues(t *testing.T) {
	assert.Contains(t, stripANSI(FormatReportingIssues(nil)), "Every reporting line resolves")

	got := stripANSI(FormatReportingIssues([]domain.ReportingIssue{
		{Title: "A", Kind: "cycle", Detail: "A -> B -> A"},
	}))
	assert.Contains(t, got, "cycle")
	assert.Contains(t, got, "A -> B -> A")
}

func TestFormatChecklist(t *testing.T) {
	c := domain.Checklist{
		{ID: "t1", Title: "Register company", Category: "Legal", Completed: true},
		{ID: "t2", Title: "Open bank account", Category: "Finance"},
	}
	got := stripANSI(FormatChecklist(c))
	assert.Contains(t, got, "1/2 done")
	assert.Contains(t, got, "[✔] Register company")
	assert.Contains(t, got, "[ ] Open bank account")
}

func TestFormatSWOT(t *testing.T) {
	s := domain.NewSWOT()
	_, _ = s.Add(domain.Threats, "New competitor")
	got := stripANSI(FormatSWOT(s))
	assert.Contains(t, got, "Threats (1)")
	assert.Contains(t, got, "New competitor")
	assert.Contains(t, got, "Strengths (0)")
}

func TestFormatMarket(t *testing.T) {
	m := domain.NewMarketResearch()
	m.MarketDefinition = "Bakeries in Lisbon"
	_, _ = m.AddRisk(domain.Risk{Description: "Flour prices", Likelihood: domain.LevelHigh})
	got := stripANSI(FormatMarket(m))
	assert.Contains(t, got, "Bakeries in Lisbon")
	assert.Contains(t, got, "Flour prices")
	assert.Contains(t, got, "● High")
	assert.Contains(t, got, "● Medium")
	assert.Contains(t, got, "Competitors (0)")
}

func TestFormatSettings_MasksKey(t *testing.T) {
	got := stripANSI(FormatSettings(SettingsView{
		AI:         domain.AISettings{Provider: domain.ProviderGroq, APIKey: "gsk_secret1234"},
		Theme:      domain.ThemeDark,
		UsageBytes: 1000,
		QuotaBytes: 4000,
		DBPath:     "/tmp/p.db",
	}))
	assert.Contains(t, got, "groq")
	assert.Contains(t, got, "1234")
	assert.NotContains(t, got, "gsk_secret")
	assert.Contains(t, got, "25%")
}

func TestRenderMarkdown_PlainStyle(t *testing.T) {
	got := RenderMarkdown("**Value Propositions** first", 60, MarkdownStyle(false, false))
	assert.Contains(t, stripANSI(got), "Value Propositions")
}
