package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

// FormatCanvas lists the nine blocks with their text, empty ones hinted.
func FormatCanvas(c domain.Canvas) string {
	var b strings.Builder
	b.WriteString(Header("Business Model Canvas") + "\n\n")
	filled, _ := c.Split()
	for _, blk := range domain.CanvasBlocks {
		v, _ := c.Get(blk.Key)
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(blk.Label), Dim("("+blk.Key+")")))
		b.WriteString(Indent(Placeholder(v, blk.Hint), "  ") + "\n\n")
	}
	b.WriteString(Dim(fmt.Sprintf("%d of %d blocks filled", len(filled), len(domain.CanvasBlocks))))
	return b.String()
}

// FormatDeck shows each slide with its layout and content.
func FormatDeck(slides []domain.Slide, hasLogo bool) string {
	var b strings.Builder
	b.WriteString(Header("Pitch Deck") + "\n")
	if hasLogo {
		b.WriteString(Dim("logo: set") + "\n")
	}
	for i, s := range slides {
		kind := domain.KindOf(i, s)
		b.WriteString(fmt.Sprintf("\n%s %s %s\n", StyleHeader.Render(fmt.Sprintf("%2d", i+1)), Bold(s.Title), Dim("["+string(kind)+"]")))
		if bullets, ok := domain.Bullets(s.Content); ok {
			for _, l := range bullets {
				b.WriteString("   • " + l + "\n")
			}
			continue
		}
		b.WriteString(Indent(Placeholder(s.Content, "(empty)"), "   ") + "\n")
	}
	return b.String()
}

// FormatRoadmap groups milestones under their planning horizon.
func FormatRoadmap(r domain.Roadmap) string {
	var b strings.Builder
	b.WriteString(Header("Roadmap") + "\n")
	for _, h := range domain.Horizons {
		ms := r.InCategory(h)
		b.WriteString("\n" + Bold(h.Label()) + " " + Dim(fmt.Sprintf("(%d)", len(ms))) + "\n")
		if len(ms) == 0 {
			b.WriteString(Dim("  No milestones yet") + "\n")
			continue
		}
		rows := make([][]string, len(ms))
		for i, m := range ms {
			rows[i] = []string{Dim(m.ID), m.Title, m.Timeframe, Truncate(m.Description, 48)}
		}
		b.WriteString(Indent(RenderTable([]string{"ID", "TITLE", "TIMEFRAME", "DESCRIPTION"}, rows), "  ") + "\n")
	}
	return b.String()
}

// FormatOrgChart shows roles grouped by department as a tree. Roles listed
// in issues are flagged.
func FormatOrgChart(o domain.OrgChart, assets domain.Assets, issues []domain.ReportingIssue) string {
	if len(o) == 0 {
		return Header("Org Chart") + "\n\n" + Dim("No roles yet. Add one with: planforge org add --title \"CEO\"")
	}
	flagged := map[string]bool{}
	for _, is := range issues {
		flagged[is.RoleID] = true
	}

	var items []TreeItem
	for _, d := range o.ByDepartment() {
		items = append(items, TreeItem{Title: d.Name, Detail: fmt.Sprintf("%d", len(d.Roles))})
		for i, r := range d.Roles {
			title := r.Title
			if r.Name != "" {
				title += Dim(" · " + r.Name)
			}
			var detail []string
			if r.ReportsTo != "" {
				detail = append(detail, "→ "+r.ReportsTo)
			}
			if _, ok := r.Photo(assets); ok {
				detail = append(detail, "photo")
			}
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: i == len(d.Roles)-1,
				Detail: strings.Join(detail, ", "),
				Warn:   flagged[r.ID],
			})
		}
	}
	return Header("Org Chart") + "\n\n" + RenderTree(items)
}

// FormatReportingIssues is the report printed by the org check command.
func FormatReportingIssues(issues []domain.ReportingIssue) string {
	if len(issues) == 0 {
		return StyleGreen.Render("✔ Every reporting line resolves to a role.")
	}
	rows := make([][]string, len(issues))
	for i, is := range issues {
		kind := StyleYellow.Render(is.Kind)
		if is.Kind == "cycle" {
			kind = StyleRed.Render(is.Kind)
		}
		rows[i] = []string{is.Title, kind, is.Detail}
	}
	return RenderTable([]string{"ROLE", "ISSUE", "DETAIL"}, rows)
}

// FormatChecklist groups items by category with overall progress.
func FormatChecklist(c domain.Checklist) string {
	var b strings.Builder
	b.WriteString(Header("Checklist") + "\n")
	done, total := c.Progress()
	b.WriteString(RenderCount(done, total, 20) + "\n")

	var order []string
	groups := map[string][]domain.ChecklistItem{}
	for _, it := range c {
		if _, ok := groups[it.Category]; !ok {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	for _, cat := range order {
		b.WriteString("\n" + Bold(cat) + "\n")
		for _, it := range groups[cat] {
			title := it.Title
			if it.Completed {
				title = Dim(title)
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", Check(it.Completed), title, Dim(it.ID)))
			if it.Description != "" {
				b.WriteString(Indent(Dim(it.Description), "      ") + "\n")
			}
		}
	}
	return b.String()
}

// FormatForecast renders the three-year table with derived profit and totals.
func FormatForecast(f domain.Forecast) string {
	rows := make([][]string, 0, domain.ForecastYears+1)
	for n := 1; n <= domain.ForecastYears; n++ {
		y := f.Year(n)
		rows = append(rows, []string{
			fmt.Sprintf("Year %d", n),
			amountOrDash(y.Revenue),
			amountOrDash(y.Expenses),
			Amount(y.Profit()),
		})
	}
	t := f.Totals()
	rows = append(rows, []string{Bold("Total"), Amount(t.Revenue), Amount(t.Expenses), Amount(t.Profit)})

	var b strings.Builder
	b.WriteString(Header("Financial Forecast") + "\n\n")
	b.WriteString(RenderAlignedTable(
		[]string{"", "REVENUE", "EXPENSES", "PROFIT"},
		rows,
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	))
	b.WriteString("\n" + Bold("Assumptions") + "\n")
	b.WriteString(Indent(Placeholder(f.Assumptions, "None recorded"), "  "))
	return b.String()
}

func amountOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("-")
	}
	return Amount(domain.ParseAmount(s))
}

// FormatSWOT lists the four quadrants.
func FormatSWOT(s domain.SWOT) string {
	var b strings.Builder
	b.WriteString(Header("SWOT Analysis") + "\n")
	for _, q := range domain.Quadrants {
		items := s.Items(q)
		b.WriteString("\n" + QuadrantStyle(q).Bold(true).Render(q.Label()) + " " + Dim(fmt.Sprintf("(%d)", len(items))) + "\n")
		if len(items) == 0 {
			b.WriteString(Dim("  Nothing added yet") + "\n")
		}
		for _, it := range items {
			b.WriteString(fmt.Sprintf("  • %s %s\n", it.Text, Dim(it.ID)))
		}
	}
	return b.String()
}
