package domain

import (
	"fmt"
	"strings"
)

// Quadrant names one of the four SWOT lists.
type Quadrant string

const (
	Strengths     Quadrant = "strengths"
	Weaknesses    Quadrant = "weaknesses"
	Opportunities Quadrant = "opportunities"
	Threats       Quadrant = "threats"
)

var Quadrants = []Quadrant{Strengths, Weaknesses, Opportunities, Threats}

// ParseQuadrant accepts the quadrant name case-insensitively.
func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Quadrants {
		if q == known {
			return q, nil
		}
	}
	return "", &ValidationError{Field: "quadrant", Message: fmt.Sprintf("unknown quadrant %q", s)}
}

func (q Quadrant) Label() string {
	if q == "" {
		return ""
	}
	return strings.ToUpper(string(q[:1])) + string(q[1:])
}

type SWOTItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type SWOT struct {
	Strengths     []SWOTItem `json:"strengths"`
	Weaknesses    []SWOTItem `json:"weaknesses"`
	Opportunities []SWOTItem `json:"opportunities"`
	Threats       []SWOTItem `json:"threats"`
}

// NewSWOT returns an analysis with four empty, non-nil lists so the stored
// JSON always carries arrays.
func NewSWOT() SWOT {
	return SWOT{
		Strengths:     []SWOTItem{},
		Weaknesses:    []SWOTItem{},
		Opportunities: []SWOTItem{},
		Threats:       []SWOTItem{},
	}
}

func (s *SWOT) list(q Quadrant) *[]SWOTItem {
	switch q {
	case Strengths:
		return &s.Strengths
	case Weaknesses:
		return &s.Weaknesses
	case Opportunities:
		return &s.Opportunities
	case Threats:
		return &s.Threats
	}
	return nil
}

// Items returns the entries of one quadrant.
func (s SWOT) Items(q Quadrant) []SWOTItem {
	if l := s.list(q); l != nil {
		return *l
	}
	return nil
}

// Add appends a new entry to a quadrant.
func (s *SWOT) Add(q Quadrant, text string) (SWOTItem, error) {
	l := s.list(q)
	if l == nil {
		return SWOTItem{}, &ValidationError{Field: "quadrant", Message: fmt.Sprintf("unknown quadrant %q", q)}
	}
	if strings.TrimSpace(text) == "" {
		return SWOTItem{}, required("text", "some text before adding")
	}
	it := SWOTItem{ID: NewID("swot"), Text: strings.TrimSpace(text)}
	*l = append(*l, it)
	return it, nil
}

func (s *SWOT) Remove(q Quadrant, id string) error {
	l := s.list(q)
	if l == nil {
		return &ValidationError{Field: "quadrant", Message: fmt.Sprintf("unknown quadrant %q", q)}
	}
	out, ok := removeByID(*l, id, func(it SWOTItem) string { return it.ID })
	if !ok {
		return ErrItemNotFound
	}
	*l = out
	return nil
}

// Backfill replaces nil quadrants from older saves with empty lists.
func (s *SWOT) Backfill() {
	for _, q := range Quadrants {
		if l := s.list(q); *l == nil {
			*l = []SWOTItem{}
		}
	}
}
