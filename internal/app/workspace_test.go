package app_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/service"
	"github.com/alexanderramin/planforge/internal/testutil"
	"github.com/alexanderramin/planforge/internal/view"
)

type solidRasterizer struct {
	calls int
	w, h  int
}

func (r *solidRasterizer) Capture(_ context.Context, _ string, _ string, _ export.RasterOptions) ([]image.Image, error) {
	r.calls++
	img := image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return []image.Image{img}, nil
}

func newWorkspace(t *testing.T, r export.Rasterizer) (*app.Workspace, repository.KVStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteKVRepo(database, 0)
	svc := app.NewServices(store, testutil.NewTestUoW(database), 0, nil)
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	return app.NewWorkspace(svc, renderer, export.NewExporter(r)), store
}

func TestModel_DefaultsOnEmptyStore(t *testing.T) {
	ws, _ := newWorkspace(t, &solidRasterizer{w: 10, h: 10})

	m, notices, err := ws.Model(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, app.Brand, m.Brand)
	assert.Len(t, m.Slides, domain.DeckSize)
	assert.Equal(t, domain.ThemeLight, m.Theme)
	assert.Empty(t, m.Roadmap)
}

func TestModel_CorruptRecordIsNotice(t *testing.T) {
	ws, store := newWorkspace(t, &solidRasterizer{w: 10, h: 10})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.KeyRoadmap, "{not json"))
	require.NoError(t, store.Set(ctx, repository.KeyCanvas, `{"channels":"web shop"}`))

	m, notices, err := ws.Model(ctx)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.ErrorIs(t, notices[0], service.ErrCorruptRecord)
	assert.Empty(t, m.Roadmap)
	assert.Equal(t, "web shop", m.Canvas.Channels)
}

func TestExport_CanvasMarkdown(t *testing.T) {
	r := &solidRasterizer{w: 10, h: 10}
	ws, _ := newWorkspace(t, r)
	ctx := context.Background()
	_, err := ws.Services().Canvas.SetBlock(ctx, "valuePropositions", "Fresh bread daily")
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := ws.Export(ctx, &out, app.ExportRequest{Artifact: view.ArtifactCanvas, Format: export.FormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, "business-model-canvas.md", res.FileName)
	assert.Contains(t, out.String(), "Fresh bread daily")
	assert.Contains(t, out.String(), "Value Propositions")
	assert.Zero(t, r.calls)
}

func TestExport_PDFPagesFollowRasterHeight(t *testing.T) {
	ws, _ := newWorkspace(t, &solidRasterizer{w: 210, h: 600})

	var out bytes.Buffer
	res, err := ws.Export(context.Background(), &out, app.ExportRequest{Artifact: view.ArtifactSWOT, Format: export.FormatPDF})
	require.NoError(t, err)
	assert.Equal(t, "swot-analysis.pdf", res.FileName)
	assert.Equal(t, 3, res.Pages)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")))
}

func TestExport_MarketFileNameFromDefinition(t *testing.T) {
	ws, _ := newWorkspace(t, &solidRasterizer{w: 20, h: 20})
	ctx := context.Background()
	_, err := ws.Services().Market.SetField(ctx, "marketDefinition", "Artisan Bakeries in Lisbon")
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := ws.Export(ctx, &out, app.ExportRequest{Artifact: view.ArtifactMarket, Format: export.FormatPNG})
	require.NoError(t, err)
	assert.Equal(t, "artisan-bakeries-in-lisbon-market-research.png", res.FileName)
}

func TestExport_NativeDeckSkipsRasterizer(t *testing.T) {
	r := &solidRasterizer{w: 10, h: 10}
	ws, _ := newWorkspace(t, r)

	var out bytes.Buffer
	res, err := ws.Export(context.Background(), &out, app.ExportRequest{
		Artifact: view.ArtifactDeck,
		Format:   export.FormatPPTX,
		DeckMode: export.DeckNative,
	})
	require.NoError(t, err)
	assert.Equal(t, "pitch-deck.pptx", res.FileName)
	assert.Equal(t, domain.DeckSize, res.Pages)
	assert.Zero(t, r.calls)
}

func TestResolveLogo(t *testing.T) {
	assets := domain.Assets{{ID: "asset-1", DataURL: testutil.PNGDataURL(2, 2)}}

	url, ok := app.ResolveLogo(assets, "asset-1")
	assert.True(t, ok)
	assert.Contains(t, url, "data:image/png")

	_, ok = app.ResolveLogo(assets, "missing")
	assert.False(t, ok)
}
