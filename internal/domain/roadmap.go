package domain

import "strings"

// MilestoneCategory is the planning horizon a milestone belongs to.
type MilestoneCategory string

const (
	Horizon1Year  MilestoneCategory = "1-year"
	Horizon5Year  MilestoneCategory = "5-year"
	Horizon10Year MilestoneCategory = "10-year"
)

// Horizons lists the categories in display order.
var Horizons = []MilestoneCategory{Horizon1Year, Horizon5Year, Horizon10Year}

// Label returns the heading used for the category, e.g. "1-Year Plan".
func (c MilestoneCategory) Label() string {
	switch c {
	case Horizon5Year:
		return "5-Year Plan"
	case Horizon10Year:
		return "10-Year Plan"
	default:
		return "1-Year Plan"
	}
}

func (c MilestoneCategory) valid() bool {
	return c == Horizon1Year || c == Horizon5Year || c == Horizon10Year
}

type Milestone struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Timeframe   string            `json:"timeframe"`
	Category    MilestoneCategory `json:"category"`
}

// NewMilestone validates the draft and assigns a fresh id. An empty category
// defaults to the one-year horizon.
func NewMilestone(title, description, timeframe string, category MilestoneCategory) (Milestone, error) {
	if strings.TrimSpace(title) == "" {
		return Milestone{}, required("title", "a milestone title")
	}
	if category == "" {
		category = Horizon1Year
	}
	if !category.valid() {
		return Milestone{}, &ValidationError{Field: "category", Message: "must be one of 1-year, 5-year, 10-year"}
	}
	return Milestone{
		ID:          NewID("milestone"),
		Title:       title,
		Description: description,
		Timeframe:   timeframe,
		Category:    category,
	}, nil
}

// Roadmap is the ordered milestone list.
type Roadmap []Milestone

func (r Roadmap) Add(m Milestone) Roadmap {
	return append(r, m)
}

func (r Roadmap) Remove(id string) (Roadmap, error) {
	out, ok := removeByID(r, id, func(m Milestone) string { return m.ID })
	if !ok {
		return r, ErrItemNotFound
	}
	return out, nil
}

// InCategory returns the milestones of one horizon in insertion order.
func (r Roadmap) InCategory(c MilestoneCategory) []Milestone {
	var out []Milestone
	for _, m := range r {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}
