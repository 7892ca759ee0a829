package view

import (
	"html/template"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

var funcs = template.FuncMap{
	"amount": domain.FormatAmount,
	"add1":   func(i int) int { return i + 1 },
	"lines":  domain.ContentLines,
	"bullets": func(content string) []string {
		b, _ := domain.Bullets(content)
		return b
	},
	"kind":       func(i int, s domain.Slide) string { return string(domain.KindOf(i, s)) },
	"imgsrc":     imageSource,
	"photo":      rolePhoto,
	"blocks":     func() []domain.CanvasBlock { return domain.CanvasBlocks },
	"blockValue": canvasValue,
	"horizon":    func() []domain.MilestoneCategory { return domain.Horizons },
	"quads":      func() []domain.Quadrant { return domain.Quadrants },
	"fields":     marketFields,
	"percent":    percent,
	"years":      func() []int { return []int{1, 2, 3} },
	"title":      func(a Artifact) string { return a.Title() },
	"neg":        func(v float64) bool { return v < 0 },
	"upper":      strings.ToUpper,

	"progress": checklistProgress,
	"groups":   checklistGroups,
}

// imageSource marks a data:image URL as safe for src attributes. Anything
// else renders as an empty source.
func imageSource(u string) template.URL {
	if strings.HasPrefix(u, "data:image/") {
		return template.URL(u)
	}
	return ""
}

func rolePhoto(r domain.Role, assets domain.Assets) template.URL {
	a, ok := r.Photo(assets)
	if !ok {
		return ""
	}
	return imageSource(a.DataURL)
}

func canvasValue(c domain.Canvas, key string) string {
	v, _ := c.Get(key)
	return v
}

type marketField struct {
	Key   string
	Label string
	Value string
}

func marketFields(m domain.MarketResearch, keys ...string) []marketField {
	var out []marketField
	for _, f := range domain.MarketFields {
		for _, k := range keys {
			if f.Key == k {
				v, _ := m.Get(k)
				out = append(out, marketField{Key: f.Key, Label: f.Label, Value: v})
			}
		}
	}
	return out
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

type progressInfo struct {
	Done  int
	Total int
	Pct   int
}

func checklistProgress(c domain.Checklist) progressInfo {
	done, total := c.Progress()
	return progressInfo{Done: done, Total: total, Pct: percent(done, total)}
}

type checklistGroup struct {
	Category string
	Items    []domain.ChecklistItem
}

// checklistGroups groups items by category in first-seen order.
func checklistGroups(c domain.Checklist) []checklistGroup {
	idx := map[string]int{}
	var out []checklistGroup
	for _, it := range c {
		cat := domain.CoalesceStr(it.Category, domain.DefaultChecklistCategory)
		i, ok := idx[cat]
		if !ok {
			i = len(out)
			idx[cat] = i
			out = append(out, checklistGroup{Category: cat})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}
