package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

// FormatMarket renders the worksheet: free-text fields first, then the four
// repeated lists.
func FormatMarket(m domain.MarketResearch) string {
	var b strings.Builder
	b.WriteString(Header("Market Research") + "\n\n")

	for _, f := range domain.MarketFields {
		v, _ := m.Get(f.Key)
		if strings.TrimSpace(v) == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n%s\n\n", Bold(f.Label), Dim("("+f.Key+")"), Indent(v, "  ")))
	}

	b.WriteString(section("Customer Segments", len(m.CustomerSegments)))
	for _, s := range m.CustomerSegments {
		b.WriteString(fmt.Sprintf("  %s %s\n", Bold(s.Name), Dim(s.ID)))
		writeDetail(&b, "Jobs to be done", s.JTBD)
		writeDetail(&b, "Buying triggers", s.BuyingTriggers)
		writeDetail(&b, "Procurement cycle", s.ProcurementCycle)
		writeDetail(&b, "Budget", s.Budget)
		writeDetail(&b, "Quotes", s.Quotes)
	}

	b.WriteString(section("Competitors", len(m.Competitors)))
	if len(m.Competitors) > 0 {
		rows := make([][]string, len(m.Competitors))
		for i, c := range m.Competitors {
			rows[i] = []string{Dim(c.ID), c.Name, c.FoundingYear, c.HQ, Truncate(c.CoreOffer, 32), c.PricingModel}
		}
		b.WriteString(Indent(RenderTable([]string{"ID", "NAME", "FOUNDED", "HQ", "OFFER", "PRICING"}, rows), "  ") + "\n")
	}

	b.WriteString(section("Risks", len(m.Risks)))
	if len(m.Risks) > 0 {
		rows := make([][]string, len(m.Risks))
		for i, r := range m.Risks {
			rows[i] = []string{Dim(r.ID), Truncate(r.Description, 48), LevelBadge(r.Likelihood), LevelBadge(r.Impact)}
		}
		b.WriteString(Indent(RenderTable([]string{"ID", "RISK", "LIKELIHOOD", "IMPACT"}, rows), "  ") + "\n")
	}

	b.WriteString(section("Experiments", len(m.Experiments)))
	for _, e := range m.Experiments {
		b.WriteString(fmt.Sprintf("  %s %s\n", Bold(e.Name), Dim(e.ID)))
		writeDetail(&b, "Description", e.Description)
		writeDetail(&b, "Cost", e.CostRange)
	}
	return b.String()
}

func section(title string, n int) string {
	s := "\n" + Bold(title) + " " + Dim(fmt.Sprintf("(%d)", n)) + "\n"
	if n == 0 {
		s += Dim("  None yet") + "\n"
	}
	return s
}

func writeDetail(b *strings.Builder, label, v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	b.WriteString(fmt.Sprintf("    %s %s\n", Dim(label+":"), Truncate(v, 72)))
}
