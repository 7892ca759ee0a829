package export

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageMath(t *testing.T) {
	assert.Equal(t, 297, PageHeight(210))
	assert.Equal(t, 594, PageHeight(420))

	assert.Equal(t, 0, PageCount(210, 0))
	assert.Equal(t, 1, PageCount(210, 1))
	assert.Equal(t, 1, PageCount(210, 297))
	assert.Equal(t, 2, PageCount(210, 298))
	assert.Equal(t, 3, PageCount(210, 891))
}

func TestPaginate_WindowsAndPadding(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	bg := color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}

	// Top page red, remainder blue, 400 rows total.
	src := image.NewRGBA(image.Rect(0, 0, 210, 400))
	draw.Draw(src, image.Rect(0, 0, 210, 297), &image.Uniform{C: red}, image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(0, 297, 210, 400), &image.Uniform{C: blue}, image.Point{}, draw.Src)

	pages := Paginate(src, bg)
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.Equal(t, image.Rect(0, 0, 210, 297), p.Bounds())
	}
	assert.Equal(t, red, color.RGBAModel.Convert(pages[0].At(5, 296)))
	assert.Equal(t, blue, color.RGBAModel.Convert(pages[1].At(5, 0)))
	assert.Equal(t, blue, color.RGBAModel.Convert(pages[1].At(5, 102)))
	// Past the end of the raster the page is padded.
	assert.Equal(t, bg, color.RGBAModel.Convert(pages[1].At(5, 103)))
	assert.Equal(t, bg, color.RGBAModel.Convert(pages[1].At(5, 296)))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#0a0a0a")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 10, B: 10, A: 255}, c)

	_, err = ParseHexColor("#fff")
	assert.Error(t, err)
}
