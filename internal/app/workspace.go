// Package app composes the planforge services into the use cases shared by
// the CLI and the preview server: loading every record into a view model
// and exporting rendered artifacts.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/planforge/internal/db"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/service"
	"github.com/alexanderramin/planforge/internal/view"
)

// Brand is the product name shown on rendered views and native slides.
const Brand = "Planforge"

// Services is every record service the workspace reads.
type Services struct {
	Canvas    service.CanvasService
	Deck      service.DeckService
	Roadmap   service.RoadmapService
	OrgChart  service.OrgChartService
	Checklist service.ChecklistService
	Forecast  service.ForecastService
	SWOT      service.SWOTService
	Market    service.MarketService
	Assets    service.AssetService
	Settings  service.SettingsService
	Backup    service.BackupService
}

// NewServices wires every record service over one store. Restores run
// inside uow with the same quota.
func NewServices(store repository.KVStore, uow db.UnitOfWork, quota int64, obs service.UseCaseObserver) Services {
	return Services{
		Canvas:    service.NewCanvasService(store),
		Deck:      service.NewDeckService(store),
		Roadmap:   service.NewRoadmapService(store, obs),
		OrgChart:  service.NewOrgChartService(store),
		Checklist: service.NewChecklistService(store),
		Forecast:  service.NewForecastService(store),
		SWOT:      service.NewSWOTService(store),
		Market:    service.NewMarketService(store),
		Assets:    service.NewAssetService(store, obs),
		Settings:  service.NewSettingsService(store),
		Backup:    service.NewBackupService(store, uow, quota, obs),
	}
}

// Workspace renders and exports the saved plan.
type Workspace struct {
	svc      Services
	renderer *view.Renderer
	exporter *export.Exporter
}

func NewWorkspace(svc Services, renderer *view.Renderer, exporter *export.Exporter) *Workspace {
	return &Workspace{svc: svc, renderer: renderer, exporter: exporter}
}

func (w *Workspace) Services() Services { return w.svc }

func (w *Workspace) Renderer() *view.Renderer { return w.renderer }

// Notices collects non-fatal load problems (corrupt records replaced by
// defaults) so callers can warn about them.
type Notices []error

func (n *Notices) keep(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrCorruptRecord) {
		*n = append(*n, err)
		return nil
	}
	return err
}

// Model loads every record into a view model. Corrupt records come back as
// defaults and are reported in the notices.
func (w *Workspace) Model(ctx context.Context) (*view.Model, Notices, error) {
	var (
		m       = &view.Model{Brand: Brand}
		notices Notices
		err     error
	)

	steps := []func() error{
		func() (e error) { m.Canvas, e = w.svc.Canvas.Get(ctx); return },
		func() (e error) { m.Slides, e = w.svc.Deck.Slides(ctx); return },
		func() (e error) { m.Logo, e = w.svc.Deck.Logo(ctx); return },
		func() (e error) { m.Roadmap, e = w.svc.Roadmap.List(ctx); return },
		func() (e error) { m.OrgChart, e = w.svc.OrgChart.List(ctx); return },
		func() (e error) { m.Checklist, e = w.svc.Checklist.List(ctx); return },
		func() (e error) { m.Forecast, e = w.svc.Forecast.Get(ctx); return },
		func() (e error) { m.SWOT, e = w.svc.SWOT.Get(ctx); return },
		func() (e error) { m.Market, e = w.svc.Market.Get(ctx); return },
		func() (e error) { m.Assets, e = w.svc.Assets.List(ctx); return },
		func() (e error) { m.Theme, e = w.svc.Settings.Theme(ctx); return },
	}
	for _, step := range steps {
		if err = notices.keep(step()); err != nil {
			return nil, notices, fmt.Errorf("loading workspace: %w", err)
		}
	}
	return m, notices, nil
}

// RenderHTML writes the standalone document for one artifact.
func (w *Workspace) RenderHTML(ctx context.Context, out io.Writer, a view.Artifact) (Notices, error) {
	m, notices, err := w.Model(ctx)
	if err != nil {
		return notices, err
	}
	return notices, w.renderer.Render(out, a, m)
}

// Index writes the landing page.
func (w *Workspace) Index(ctx context.Context, out io.Writer) (Notices, error) {
	m, notices, err := w.Model(ctx)
	if err != nil {
		return notices, err
	}
	return notices, w.renderer.Index(out, m)
}

// ExportRequest selects an artifact and output format.
type ExportRequest struct {
	Artifact view.Artifact
	Format   export.Format
	// DeckMode applies to pitch deck PPTX exports only.
	DeckMode export.DeckMode
}

// ExportResult describes a finished export.
type ExportResult struct {
	FileName string
	Pages    int
	Bytes    int64
	Notices  Notices
}

// Export renders the artifact and writes it to out in the requested format.
func (w *Workspace) Export(ctx context.Context, out io.Writer, req ExportRequest) (*ExportResult, error) {
	m, notices, err := w.Model(ctx)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := w.renderer.Render(&html, req.Artifact, m); err != nil {
		return nil, err
	}
	doc, err := export.ParseDocument(&html)
	if err != nil {
		return nil, err
	}
	bg, err := export.ParseHexColor(m.Theme.Background())
	if err != nil {
		return nil, err
	}

	er := export.Request{
		Document:   doc,
		RegionID:   req.Artifact.RegionID(),
		Format:     req.Format,
		Background: bg,
	}
	if req.Artifact == view.ArtifactDeck {
		er.Deck = &export.DeckSource{Mode: req.DeckMode, Slides: m.Slides, Logo: m.Logo}
	}

	res, err := w.exporter.Export(ctx, out, er)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: export.FileName(BaseName(req.Artifact, m), req.Format),
		Pages:    res.Pages,
		Bytes:    res.Bytes,
		Notices:  notices,
	}, nil
}

// BaseName is the export file name for an artifact without extension. Market
// research exports are named after the market definition.
func BaseName(a view.Artifact, m *view.Model) string {
	if a == view.ArtifactMarket {
		return export.MarketBaseName(m.Market.MarketDefinition)
	}
	return a.BaseName()
}

// ResolveLogo accepts an asset id from the brand library and returns its
// data URL.
func ResolveLogo(assets domain.Assets, id string) (string, bool) {
	a, ok := assets.Find(id)
	if !ok {
		return "", false
	}
	return a.DataURL, true
}
