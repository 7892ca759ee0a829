package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodConfig configures the headless Chrome used for captures.
type RodConfig struct {
	// Bin is the Chrome binary. Empty lets the launcher find or download one.
	Bin string
	// RemoteURL connects to an already running Chrome instead of launching.
	RemoteURL string
	Logger    *slog.Logger
}

// RodRasterizer captures elements with headless Chrome. The browser is
// started on first use and reused until Close.
type RodRasterizer struct {
	cfg     RodConfig
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

func NewRodRasterizer(cfg RodConfig) *RodRasterizer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &RodRasterizer{cfg: cfg}
}

func (r *RodRasterizer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	wsURL := r.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		if r.cfg.Bin != "" {
			l = l.Bin(r.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("rasterizer: launch: %w", err)
		}
		wsURL = u
		r.lnch = l
		r.cfg.Logger.Debug("rasterizer: launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		r.killLocked()
		return nil, fmt.Errorf("rasterizer: connect: %w", err)
	}
	r.browser = b
	return b, nil
}

// Close shuts the browser down. A later Capture starts a new one.
func (r *RodRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLocked()
	return err
}

func (r *RodRasterizer) killLocked() {
	if r.lnch != nil {
		r.lnch.Kill()
		r.lnch.Cleanup()
		r.lnch = nil
	}
}

// revealCapture moves the capture clone on-screen above the live content so
// clipped screenshots see it.
const revealCapture = `(bg) => {
	const c = document.querySelector('[data-export-capture]');
	if (c) {
		c.style.left = '0px';
		c.style.zIndex = '2147483647';
		c.style.background = bg;
	}
}`

const measureElement = `() => {
	const r = this.getBoundingClientRect();
	return {x: r.left + window.scrollX, y: r.top + window.scrollY, w: r.width, h: r.height};
}`

func (r *RodRasterizer) Capture(ctx context.Context, document, selector string, opts RasterOptions) ([]image.Image, error) {
	opts = opts.withDefaults()
	b, err := r.connect()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("rasterizer: open page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            800,
		DeviceScaleFactor: opts.Scale,
	}); err != nil {
		return nil, fmt.Errorf("rasterizer: viewport: %w", err)
	}
	bg := color.RGBAModel.Convert(opts.Background).(color.RGBA)
	alpha := 1.0
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: int(bg.R), G: int(bg.G), B: int(bg.B), A: &alpha},
	}).Call(page); err != nil {
		return nil, fmt.Errorf("rasterizer: background: %w", err)
	}
	if err := page.SetDocumentContent(document); err != nil {
		return nil, fmt.Errorf("rasterizer: load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("rasterizer: wait load: %w", err)
	}
	if _, err := page.Eval(revealCapture, fmt.Sprintf("rgb(%d,%d,%d)", bg.R, bg.G, bg.B)); err != nil {
		return nil, fmt.Errorf("rasterizer: reveal: %w", err)
	}

	els, err := page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: query %q: %w", selector, err)
	}
	out := make([]image.Image, 0, len(els))
	for _, el := range els {
		img, err := captureElement(page, el)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

func captureElement(page *rod.Page, el *rod.Element) (image.Image, error) {
	res, err := el.Eval(measureElement)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: measure: %w", err)
	}
	x := res.Value.Get("x").Num()
	y := res.Value.Get("y").Num()
	w := res.Value.Get("w").Num()
	h := res.Value.Get("h").Num()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}

	bin, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:                proto.PageCaptureScreenshotFormatPng,
		Clip:                  &proto.PageViewport{X: x, Y: y, Width: w, Height: h, Scale: 1},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterizer: screenshot: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(bin))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: decode screenshot: %w", err)
	}
	return img, nil
}
