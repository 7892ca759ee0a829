package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync/atomic"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"

	"github.com/alexanderramin/planforge/internal/domain"
)

// slideSelector matches the per-slide regions inside the capture clone.
const slideSelector = captureSelector + " [data-slide-preview]"

// DeckSource carries what a deck export needs beyond the document.
type DeckSource struct {
	Mode   DeckMode
	Slides []domain.Slide
	Logo   string // data URL, may be empty
}

// Request describes one export.
type Request struct {
	Document   *Document
	RegionID   string
	Format     Format
	Background color.Color
	// Deck is set for pitch deck exports.
	Deck *DeckSource
}

// Result reports what was written.
type Result struct {
	Pages int
	Bytes int64
}

// Exporter turns document regions into files. One exporter runs one export
// at a time; a concurrent call fails with ErrExportInProgress.
type Exporter struct {
	raster Rasterizer
	scale  float64
	width  int
	md     *converter.Converter
	now    func() time.Time
	busy   atomic.Bool
}

type Option func(*Exporter)

// WithScale sets the capture pixel ratio.
func WithScale(s float64) Option {
	return func(e *Exporter) {
		if s > 0 {
			e.scale = s
		}
	}
}

// WithViewportWidth sets the CSS width documents are laid out at.
func WithViewportWidth(w int) Option {
	return func(e *Exporter) {
		if w > 0 {
			e.width = w
		}
	}
}

// WithClock overrides the time stamped into presentation metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func NewExporter(r Rasterizer, opts ...Option) *Exporter {
	e := &Exporter{
		raster: r,
		scale:  DefaultScale,
		width:  DefaultViewportWidth,
		md:     newMarkdownConverter(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export writes req's region in the requested format to w. The document is
// returned to its original shape whether or not the export succeeds.
func (e *Exporter) Export(ctx context.Context, w io.Writer, req Request) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.busy.Store(false)

	if req.Background == nil {
		req.Background = color.White
	}
	cw := &countingWriter{w: w}
	res := &Result{}

	// Native decks are built from the slide data alone.
	if req.Deck != nil && req.Format == FormatPPTX && req.Deck.Mode == DeckNative {
		slides := nativeSlides(req.Deck.Slides, req.Deck.Logo)
		if err := writePPTX(cw, deckTitle(req.Deck.Slides), slides, e.now()); err != nil {
			return nil, err
		}
		res.Pages, res.Bytes = len(slides), cw.n
		return res, nil
	}

	if req.Document == nil {
		return nil, fmt.Errorf("%w: no document", ErrRegionNotFound)
	}
	region := req.Document.FindByID(req.RegionID)
	if region == nil {
		return nil, fmt.Errorf("%w: element with ID %q not found", ErrRegionNotFound, req.RegionID)
	}
	if req.Format == FormatPPTX && req.Deck == nil {
		return nil, fmt.Errorf("%w: pptx is only available for the pitch deck", ErrUnsupportedFormat)
	}

	err := req.Document.withAttachedClone(region, func(clone *html.Node) error {
		if req.Format == FormatMarkdown {
			res.Pages = 1
			return writeMarkdown(cw, e.md, clone)
		}
		doc, err := req.Document.HTML()
		if err != nil {
			return err
		}
		opts := RasterOptions{Scale: e.scale, Background: req.Background, ViewportWidth: e.width}
		if req.Deck != nil && req.Format != FormatPNG {
			n, err := e.exportSlides(ctx, cw, doc, req, opts)
			res.Pages = n
			return err
		}
		n, err := e.exportRegion(ctx, cw, doc, req, opts)
		res.Pages = n
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Bytes = cw.n
	return res, nil
}

// exportRegion captures the whole clone as one raster.
func (e *Exporter) exportRegion(ctx context.Context, w io.Writer, doc string, req Request, opts RasterOptions) (int, error) {
	imgs, err := e.raster.Capture(ctx, doc, captureSelector, opts)
	if err != nil {
		return 0, fmt.Errorf("capturing %q: %w", req.RegionID, err)
	}
	if len(imgs) == 0 || isEmpty(imgs[0]) {
		return 0, ErrEmptyRaster
	}
	img := imgs[0]
	switch req.Format {
	case FormatPNG:
		return 1, encodePNG(w, img)
	case FormatPDF:
		pages := Paginate(img, req.Background)
		return len(pages), encodePDF(w, pages, portraitImport)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}
}

// exportSlides captures each slide separately. Slides with no height are
// skipped.
func (e *Exporter) exportSlides(ctx context.Context, w io.Writer, doc string, req Request, opts RasterOptions) (int, error) {
	imgs, err := e.raster.Capture(ctx, doc, slideSelector, opts)
	if err != nil {
		return 0, fmt.Errorf("capturing slides: %w", err)
	}
	var slides []image.Image
	for _, img := range imgs {
		if !isEmpty(img) {
			slides = append(slides, img)
		}
	}
	if len(slides) == 0 {
		return 0, ErrNoSlides
	}
	switch req.Format {
	case FormatPDF:
		return len(slides), encodePDF(w, slides, landscapeImport)
	case FormatPPTX:
		parts, err := rasterSlides(slides)
		if err != nil {
			return 0, err
		}
		return len(parts), writePPTX(w, deckTitle(req.Deck.Slides), parts, e.now())
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}
}

func deckTitle(slides []domain.Slide) string {
	if len(slides) > 0 && slides[0].Title != "" {
		return slides[0].Title
	}
	return "Pitch Deck"
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
