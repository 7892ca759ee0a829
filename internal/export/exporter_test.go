package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
)

// fakeRasterizer returns one solid image per matching selector call and
// records the documents it was handed.
type fakeRasterizer struct {
	mu      sync.Mutex
	images  []image.Image
	err     error
	docs    []string
	block   chan struct{}
	started chan struct{}
}

func (f *fakeRasterizer) Capture(ctx context.Context, document, selector string, _ export.RasterOptions) ([]image.Image, error) {
	f.mu.Lock()
	f.docs = append(f.docs, document)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.images, f.err
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

const page = `<!doctype html><html><head><title>t</title></head><body>
<div id="canvas-content" class="grid">
  <textarea class="block-text" placeholder="Who are your key partners?"></textarea>
  <textarea class="block-text" placeholder="unused">Supplier A
Supplier B</textarea>
  <details><summary>More</summary><p>hidden</p></details>
</div>
</body></html>`

func mustDoc(t *testing.T, s string) *export.Document {
	t.Helper()
	doc, err := export.ParseDocumentString(s)
	require.NoError(t, err)
	return doc
}

func TestExport_MissingRegionLeavesDocumentUntouched(t *testing.T) {
	doc := mustDoc(t, page)
	before, err := doc.HTML()
	require.NoError(t, err)

	ex := export.NewExporter(&fakeRasterizer{images: []image.Image{solid(10, 10, color.White)}})
	_, err = ex.Export(context.Background(), io.Discard, export.Request{
		Document: doc, RegionID: "nope", Format: export.FormatPNG,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, export.ErrRegionNotFound))
	assert.Contains(t, err.Error(), `element with ID "nope" not found`)

	after, err := doc.HTML()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExport_ElementCountUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		raster  *fakeRasterizer
		wantErr error
	}{
		{"success", &fakeRasterizer{images: []image.Image{solid(20, 10, color.White)}}, nil},
		{"rasterizer failure", &fakeRasterizer{err: errors.New("chrome crashed")}, nil},
		{"empty raster", &fakeRasterizer{images: []image.Image{image.NewRGBA(image.Rectangle{})}}, export.ErrEmptyRaster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, page)
			before := doc.ElementCount()

			_, err := export.NewExporter(tt.raster).Export(context.Background(), io.Discard, export.Request{
				Document: doc, RegionID: "canvas-content", Format: export.FormatPNG,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, before, doc.ElementCount())
		})
	}
}

func TestExport_CloneReplacesTextareas(t *testing.T) {
	r := &fakeRasterizer{images: []image.Image{solid(20, 10, color.White)}}
	doc := mustDoc(t, page)

	var out bytes.Buffer
	res, err := export.NewExporter(r).Export(context.Background(), &out, export.Request{
		Document: doc, RegionID: "canvas-content", Format: export.FormatPNG,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, int64(out.Len()), res.Bytes)
	_, _, err = image.Decode(&out)
	require.NoError(t, err)

	require.Len(t, r.docs, 1)
	captured := r.docs[0]
	assert.Contains(t, captured, "data-export-capture")
	assert.Contains(t, captured, "left: -9999px")
	// The live region keeps its textareas; the clone has divs instead.
	assert.Equal(t, 2, strings.Count(captured, "<textarea"))
	assert.Contains(t, captured, `<div class="block-text" style="white-space: pre-wrap; word-break: break-word; min-height: auto; height: auto; overflow: visible; opacity: 0.5;">Who are your key partners?</div>`)
	assert.Contains(t, captured, "Supplier A\nSupplier B</div>")
	assert.Contains(t, captured, "<details open=\"\">")
}

func TestExport_PDFPaginates(t *testing.T) {
	// 210 wide means 297 per page; 700 tall spans three pages.
	r := &fakeRasterizer{images: []image.Image{solid(210, 700, color.Black)}}
	res, err := export.NewExporter(r).Export(context.Background(), io.Discard, export.Request{
		Document: mustDoc(t, page), RegionID: "canvas-content", Format: export.FormatPDF,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Pages)
}

func TestExport_Markdown(t *testing.T) {
	var out bytes.Buffer
	_, err := export.NewExporter(&fakeRasterizer{}).Export(context.Background(), &out, export.Request{
		Document: mustDoc(t, page), RegionID: "canvas-content", Format: export.FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Who are your key partners?")
	assert.Contains(t, out.String(), "Supplier A")
}

func TestExport_PPTXOnlyForDeck(t *testing.T) {
	_, err := export.NewExporter(&fakeRasterizer{}).Export(context.Background(), io.Discard, export.Request{
		Document: mustDoc(t, page), RegionID: "canvas-content", Format: export.FormatPPTX,
	})
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

const deckPage = `<html><body><div id="pitch-deck-content" data-pitch-deck-preview>
<section data-slide-preview data-slide="1"><h2>Acme</h2></section>
<section data-slide-preview data-slide="2"><h2>Problem</h2></section>
<section data-slide-preview data-slide="3"></section>
</div></body></html>`

func TestExport_DeckRasterSkipsEmptySlides(t *testing.T) {
	r := &fakeRasterizer{images: []image.Image{
		solid(160, 90, color.White),
		solid(160, 90, color.White),
		image.NewRGBA(image.Rectangle{}),
	}}
	var out bytes.Buffer
	res, err := export.NewExporter(r).Export(context.Background(), &out, export.Request{
		Document: mustDoc(t, deckPage), RegionID: "pitch-deck-content", Format: export.FormatPPTX,
		Deck: &export.DeckSource{Mode: export.DeckRaster, Slides: domain.DefaultDeck()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)

	zr, err := zip.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/slides/slide2.xml"])
	assert.False(t, names["ppt/slides/slide3.xml"])
	assert.True(t, names["ppt/media/image2.png"])
}

func TestExport_DeckWithoutVisibleSlides(t *testing.T) {
	r := &fakeRasterizer{images: []image.Image{image.NewRGBA(image.Rectangle{})}}
	_, err := export.NewExporter(r).Export(context.Background(), io.Discard, export.Request{
		Document: mustDoc(t, deckPage), RegionID: "pitch-deck-content", Format: export.FormatPDF,
		Deck: &export.DeckSource{Mode: export.DeckRaster},
	})
	assert.ErrorIs(t, err, export.ErrNoSlides)
}

func TestExport_InProgress(t *testing.T) {
	r := &fakeRasterizer{
		images:  []image.Image{solid(10, 10, color.White)},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	ex := export.NewExporter(r)
	req := export.Request{Document: mustDoc(t, page), RegionID: "canvas-content", Format: export.FormatPNG}

	done := make(chan error, 1)
	go func() {
		_, err := ex.Export(context.Background(), io.Discard, req)
		done <- err
	}()
	<-r.started

	_, err := ex.Export(context.Background(), io.Discard, export.Request{
		Document: mustDoc(t, page), RegionID: "canvas-content", Format: export.FormatPNG,
	})
	assert.ErrorIs(t, err, export.ErrExportInProgress)

	close(r.block)
	require.NoError(t, <-done)
}

func TestMarketBaseName(t *testing.T) {
	assert.Equal(t, "market-research-report", export.MarketBaseName(""))
	assert.Equal(t, "market-research-report", export.MarketBaseName("  "))
	assert.Equal(t, "market-research-report", export.MarketBaseName("!!!"))
	assert.Equal(t, "b2b-saas-for-dentists-market-research", export.MarketBaseName("B2B SaaS for Dentists!"))
	long := strings.Repeat("a", 60)
	assert.Equal(t, strings.Repeat("a", 50)+"-market-research", export.MarketBaseName(long))
	assert.Equal(t, "market-research-report.pdf", export.FileName(export.MarketBaseName(""), export.FormatPDF))
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("Markdown")
	require.NoError(t, err)
	assert.Equal(t, export.FormatMarkdown, f)

	_, err = export.ParseFormat("docx")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
