package export

import (
	"image"
	"image/color"
	"image/draw"
)

// A4 portrait in millimetres.
const (
	a4WidthMM  = 210
	a4HeightMM = 297
)

// PageHeight returns the raster height of one A4 portrait page for a raster
// of the given width.
func PageHeight(rasterWidth int) int {
	return rasterWidth * a4HeightMM / a4WidthMM
}

// PageCount returns how many A4 pages a raster of the given size spans.
func PageCount(rasterWidth, rasterHeight int) int {
	ph := PageHeight(rasterWidth)
	if ph <= 0 || rasterHeight <= 0 {
		return 0
	}
	return (rasterHeight + ph - 1) / ph
}

// Paginate slices a tall raster into A4-proportioned windows. Page i shows
// the raster from y = i*pageHeight; the last page is padded with bg.
func Paginate(src image.Image, bg color.Color) []image.Image {
	b := src.Bounds()
	w := b.Dx()
	ph := PageHeight(w)
	n := PageCount(w, b.Dy())
	pages := make([]image.Image, 0, n)
	for i := range n {
		page := image.NewRGBA(image.Rect(0, 0, w, ph))
		draw.Draw(page, page.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
		from := image.Pt(b.Min.X, b.Min.Y+i*ph)
		draw.Draw(page, page.Bounds(), src, from, draw.Over)
		pages = append(pages, page)
	}
	return pages
}
