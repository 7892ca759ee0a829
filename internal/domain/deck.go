package domain

import (
	"fmt"
	"strings"
)

// DeckSize is the fixed number of slides in a pitch deck.
const DeckSize = 12

// Slide is one pitch deck page.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SlideKind selects the layout used when a slide is rebuilt as native shapes.
type SlideKind string

const (
	SlideTitle   SlideKind = "title"
	SlideContact SlideKind = "contact"
	SlideContent SlideKind = "content"
)

var defaultSlideTitles = [DeckSize]string{
	"Company Name & Tagline",
	"Problem",
	"Solution",
	"Market Opportunity",
	"Product/Service",
	"Business Model",
	"Traction & Milestones",
	"Competition",
	"Team",
	"Financial Projections",
	"Investment Ask",
	"Contact Information",
}

// DefaultDeck returns the twelve template slides with empty content.
func DefaultDeck() []Slide {
	slides := make([]Slide, DeckSize)
	for i, t := range defaultSlideTitles {
		slides[i] = Slide{Title: t}
	}
	return slides
}

// BackfillDeck pads a deck saved by an older version (fewer slides) with the
// missing template slides. Longer decks are returned unchanged.
func BackfillDeck(slides []Slide) []Slide {
	if len(slides) >= DeckSize {
		return slides
	}
	out := make([]Slide, 0, DeckSize)
	out = append(out, slides...)
	for i := len(slides); i < DeckSize; i++ {
		out = append(out, Slide{Title: defaultSlideTitles[i]})
	}
	return out
}

// KindOf returns the layout for the slide at zero-based index i.
func KindOf(i int, s Slide) SlideKind {
	switch {
	case i == 0:
		return SlideTitle
	case strings.Contains(strings.ToLower(s.Title), "contact"):
		return SlideContact
	default:
		return SlideContent
	}
}

// SetSlide replaces the slide at one-based position n.
func SetSlide(slides []Slide, n int, s Slide) error {
	if n < 1 || n > len(slides) {
		return &ValidationError{Field: "slide", Message: fmt.Sprintf("slide %d out of range 1-%d", n, len(slides))}
	}
	slides[n-1] = s
	return nil
}

// ContentLines returns the non-blank lines of a slide body, trimmed.
func ContentLines(content string) []string {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// Bullets reports whether any body line starts with a dash or bullet
// character, and if so returns every line with the marker stripped.
func Bullets(content string) ([]string, bool) {
	lines := ContentLines(content)
	has := false
	for _, l := range lines {
		if strings.HasPrefix(l, "-") || strings.HasPrefix(l, "•") {
			has = true
			break
		}
	}
	if !has {
		return nil, false
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if rest, ok := strings.CutPrefix(l, "-"); ok {
			l = rest
		} else {
			l = strings.TrimPrefix(l, "•")
		}
		out[i] = strings.TrimSpace(l)
	}
	return out, true
}
