// Package view renders planning artifacts as standalone HTML documents.
// The documents are what the exporter rasterizes and what the preview
// server serves.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Artifact names one renderable planning artifact.
type Artifact string

const (
	ArtifactCanvas    Artifact = "canvas"
	ArtifactDeck      Artifact = "deck"
	ArtifactRoadmap   Artifact = "roadmap"
	ArtifactOrgChart  Artifact = "org"
	ArtifactChecklist Artifact = "checklist"
	ArtifactForecast  Artifact = "forecast"
	ArtifactSWOT      Artifact = "swot"
	ArtifactMarket    Artifact = "market"
)

// Artifacts lists every artifact in navigation order.
var Artifacts = []Artifact{
	ArtifactCanvas, ArtifactDeck, ArtifactRoadmap, ArtifactOrgChart,
	ArtifactChecklist, ArtifactForecast, ArtifactSWOT, ArtifactMarket,
}

var artifactMeta = map[Artifact]struct {
	title  string
	region string
	base   string
}{
	ArtifactCanvas:    {"Business Model Canvas", "canvas-content", "business-model-canvas"},
	ArtifactDeck:      {"Pitch Deck", "pitch-deck-content", "pitch-deck"},
	ArtifactRoadmap:   {"Roadmap", "roadmap-content", "roadmap"},
	ArtifactOrgChart:  {"Org Chart", "org-chart-content", "org-chart"},
	ArtifactChecklist: {"Checklist", "checklist-content", "checklist"},
	ArtifactForecast:  {"Financial Forecast", "forecast-content", "financial-forecast"},
	ArtifactSWOT:      {"SWOT Analysis", "swot-content", "swot-analysis"},
	ArtifactMarket:    {"Market Research", "market-research-content", "market-research-report"},
}

// ParseArtifact accepts an artifact name, case-insensitively.
func ParseArtifact(s string) (Artifact, error) {
	a := Artifact(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := artifactMeta[a]; !ok {
		return "", fmt.Errorf("unknown artifact %q (want one of %s)", s, joinArtifacts())
	}
	return a, nil
}

func joinArtifacts() string {
	names := make([]string, len(Artifacts))
	for i, a := range Artifacts {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func (a Artifact) Title() string { return artifactMeta[a].title }

// RegionID is the id of the element that holds the exportable content.
func (a Artifact) RegionID() string { return artifactMeta[a].region }

// BaseName is the default export file name without extension.
func (a Artifact) BaseName() string { return artifactMeta[a].base }

// Model is everything a view may show. Renderers read only the fields
// their artifact needs.
type Model struct {
	Theme     domain.Theme
	Brand     string
	Canvas    domain.Canvas
	Slides    []domain.Slide
	Logo      string
	Roadmap   domain.Roadmap
	OrgChart  domain.OrgChart
	Assets    domain.Assets
	Checklist domain.Checklist
	Forecast  domain.Forecast
	SWOT      domain.SWOT
	Market    domain.MarketResearch
}

// Renderer executes the embedded artifact templates.
type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

type page struct {
	Title      string
	Theme      domain.Theme
	Background string
	Brand      string
	Nav        []Artifact
	Current    Artifact
	Body       template.HTML
}

// Render writes the full HTML document for one artifact.
func (r *Renderer) Render(w io.Writer, a Artifact, m *Model) error {
	if _, ok := artifactMeta[a]; !ok {
		return fmt.Errorf("unknown artifact %q", a)
	}
	var body bytes.Buffer
	if err := r.t.ExecuteTemplate(&body, string(a)+".html", m); err != nil {
		return fmt.Errorf("rendering %s: %w", a, err)
	}
	p := page{
		Title:      a.Title(),
		Theme:      m.Theme,
		Background: m.Theme.Background(),
		Brand:      m.Brand,
		Nav:        Artifacts,
		Current:    a,
		Body:       template.HTML(body.String()),
	}
	if err := r.t.ExecuteTemplate(w, "layout.html", p); err != nil {
		return fmt.Errorf("rendering layout: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(a Artifact, m *Model) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, a, m); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Index renders the landing page linking every artifact.
func (r *Renderer) Index(w io.Writer, m *Model) error {
	var body bytes.Buffer
	if err := r.t.ExecuteTemplate(&body, "index.html", Artifacts); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return r.t.ExecuteTemplate(w, "layout.html", page{
		Title:      m.Brand,
		Theme:      m.Theme,
		Background: m.Theme.Background(),
		Brand:      m.Brand,
		Nav:        Artifacts,
		Body:       template.HTML(body.String()),
	})
}
