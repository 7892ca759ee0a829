package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"image"
	_ "image/gif" // logo formats accepted by the asset library
	_ "image/jpeg"
	"io"
	"math"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alexanderramin/planforge/internal/domain"
)

// DeckMode selects how slides are written to a presentation.
type DeckMode string

const (
	// DeckRaster embeds one captured picture per slide.
	DeckRaster DeckMode = "raster"
	// DeckNative rebuilds each slide from text and image shapes.
	DeckNative DeckMode = "native"
)

func ParseDeckMode(s string) (DeckMode, error) {
	switch DeckMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeckRaster:
		return DeckRaster, nil
	case DeckNative:
		return DeckNative, nil
	default:
		return "", fmt.Errorf("unknown deck mode %q (want raster or native)", s)
	}
}

// Presentation metadata and palette.
const (
	deckAuthor     = "Planforge - Business Planning Made Simple"
	deckCompany    = "Planforge"
	deckBrand      = "Planforge"
	deckBackground = "F9FAFB"
	deckText       = "1F2937"
	deckSubtle     = "6B7280"

	// 16:9 slide, 10in x 5.625in.
	emuPerInch  = 914400
	slideWidth  = 10 * emuPerInch
	slideHeight = 5625 * emuPerInch / 1000
)

var stripPolicy = bluemonday.StrictPolicy()

// plainText removes any markup pasted into slide text.
func plainText(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

type rect struct{ x, y, w, h int64 }

// pct places a box by percentages of the slide.
func pct(x, y, w, h float64) rect {
	return rect{
		x: int64(math.Round(x * slideWidth / 100)),
		y: int64(math.Round(y * slideHeight / 100)),
		w: int64(math.Round(w * slideWidth / 100)),
		h: int64(math.Round(h * slideHeight / 100)),
	}
}

type textStyle struct {
	size   int // points
	bold   bool
	color  string
	alpha  int // percent, 0 means opaque
	align  string
	anchor string
	bullet bool
}

type pptxImage struct {
	data []byte
	ext  string
}

type slidePart struct {
	shapes []string
	images []pptxImage
	nextID int
}

func newSlidePart() *slidePart { return &slidePart{nextID: 2} }

func (s *slidePart) text(box rect, paras []string, st textStyle) {
	id := s.nextID
	s.nextID++
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	b.WriteString(`<p:spPr>`)
	writeXfrm(&b, box)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	anchor := st.anchor
	if anchor == "" {
		anchor = "t"
	}
	fmt.Fprintf(&b, `<p:txBody><a:bodyPr wrap="square" rtlCol="0" anchor="%s"><a:normAutofit/></a:bodyPr><a:lstStyle/>`, anchor)
	for _, p := range paras {
		b.WriteString(`<a:p>`)
		align := st.align
		if align == "" {
			align = "l"
		}
		if st.bullet {
			fmt.Fprintf(&b, `<a:pPr marL="285750" indent="-285750" algn="%s"><a:buFont typeface="Arial"/><a:buChar char="%s"/></a:pPr>`, align, "•")
		} else {
			fmt.Fprintf(&b, `<a:pPr algn="%s"/>`, align)
		}
		fmt.Fprintf(&b, `<a:r><a:rPr lang="en-US" sz="%d" dirty="0"`, st.size*100)
		if st.bold {
			b.WriteString(` b="1"`)
		}
		fmt.Fprintf(&b, `><a:solidFill><a:srgbClr val="%s">`, st.color)
		if st.alpha > 0 {
			fmt.Fprintf(&b, `<a:alpha val="%d"/>`, st.alpha*1000)
		}
		b.WriteString(`</a:srgbClr></a:solidFill></a:rPr><a:t>`)
		b.WriteString(escapeXML(p))
		b.WriteString(`</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	s.shapes = append(s.shapes, b.String())
}

func (s *slidePart) picture(box rect, img pptxImage) {
	id := s.nextID
	s.nextID++
	s.images = append(s.images, img)
	// rId1 is the layout; images follow.
	rel := fmt.Sprintf("rId%d", len(s.images)+1)
	var b strings.Builder
	fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(&b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr>`, rel)
	writeXfrm(&b, box)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
	s.shapes = append(s.shapes, b.String())
}

func writeXfrm(b *strings.Builder, r rect) {
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.x, r.y, r.w, r.h)
}

func escapeXML(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// logoImage decodes a logo data URL. ok is false when there is no usable logo.
func logoImage(dataURL string) (img pptxImage, w, h int, ok bool) {
	if dataURL == "" {
		return pptxImage{}, 0, 0, false
	}
	_, data, err := domain.DecodeDataURL(dataURL)
	if err != nil {
		return pptxImage{}, 0, 0, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return pptxImage{}, 0, 0, false
	}
	return pptxImage{data: data, ext: format}, cfg.Width, cfg.Height, true
}

// nativeSlides lays the deck out as editable shapes.
func nativeSlides(slides []domain.Slide, logoURL string) []*slidePart {
	logo, lw, lh, hasLogo := logoImage(logoURL)
	out := make([]*slidePart, 0, len(slides))
	for i, sl := range slides {
		s := newSlidePart()
		title := plainText(sl.Title)
		content := plainText(sl.Content)
		switch domain.KindOf(i, sl) {
		case domain.SlideTitle:
			titleY, tagY := 25.0, 47.0
			if hasLogo {
				s.picture(logoBox(lw, lh), logo)
				titleY, tagY = 30, 52
			}
			s.text(pct(10, titleY, 80, 20), []string{domain.CoalesceStr(title, "Your Company Name")},
				textStyle{size: 44, bold: true, color: deckText, align: "ctr", anchor: "ctr"})
			if content != "" {
				s.text(pct(10, tagY, 80, 15), []string{content},
					textStyle{size: 24, color: deckSubtle, align: "ctr", anchor: "ctr"})
			}
		case domain.SlideContact:
			s.text(pct(10, 10, 80, 15), []string{title},
				textStyle{size: 36, bold: true, color: deckText, align: "ctr"})
			for j, line := range domain.ContentLines(content) {
				s.text(pct(20, 30+8*float64(j), 60, 8), []string{line},
					textStyle{size: 18, color: deckText, align: "ctr"})
			}
		default:
			s.text(pct(8, 8, 84, 12), []string{title},
				textStyle{size: 32, bold: true, color: deckText, align: "l"})
			if strings.TrimSpace(content) != "" {
				if bullets, ok := domain.Bullets(content); ok {
					s.text(pct(8, 25, 84, 60), bullets,
						textStyle{size: 18, color: deckText, bullet: true})
				} else {
					s.text(pct(8, 25, 84, 60), []string{content},
						textStyle{size: 18, color: deckText, align: "l", anchor: "t"})
				}
			}
		}
		s.text(pct(2, 92, 20, 5), []string{deckBrand}, textStyle{size: 10, color: deckSubtle, alpha: 50})
		s.text(pct(92, 92, 6, 5), []string{fmt.Sprint(i + 1)}, textStyle{size: 10, color: deckSubtle, align: "r"})
		out = append(out, s)
	}
	return out
}

// logoBox fits the logo into a 1.5in square at 40%,12%.
func logoBox(w, h int) rect {
	const side = emuPerInch * 3 / 2
	box := pct(40, 12, 0, 0)
	box.w, box.h = side, side*int64(h)/int64(w)
	if box.h > side {
		box.h = side
		box.w = side * int64(w) / int64(h)
	}
	return box
}

// rasterSlides embeds each capture as a full-slide picture, fitted and
// centred.
func rasterSlides(captures []image.Image) ([]*slidePart, error) {
	out := make([]*slidePart, 0, len(captures))
	for _, img := range captures {
		var buf bytes.Buffer
		if err := encodePNG(&buf, img); err != nil {
			return nil, err
		}
		s := newSlidePart()
		s.picture(fitBox(img.Bounds().Dx(), img.Bounds().Dy()), pptxImage{data: buf.Bytes(), ext: "png"})
		out = append(out, s)
	}
	return out, nil
}

func fitBox(w, h int) rect {
	r := rect{w: slideWidth, h: slideWidth * int64(h) / int64(w)}
	if r.h > slideHeight {
		r.h = slideHeight
		r.w = slideHeight * int64(w) / int64(h)
	}
	r.x = (slideWidth - r.w) / 2
	r.y = (slideHeight - r.h) / 2
	return r
}

// writePPTX packages slides as an OOXML presentation.
func writePPTX(w io.Writer, title string, slides []*slidePart, created time.Time) error {
	zw := zip.NewWriter(w)
	add := func(name, body string) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(f, body)
		return err
	}
	addBytes := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	}

	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes(len(slides))},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", coreProps(title, created)},
		{"docProps/app.xml", appProps(len(slides))},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, p := range parts {
		if err := add(p.name, p.body); err != nil {
			return fmt.Errorf("%w: pptx %s: %v", ErrEncode, p.name, err)
		}
	}

	media := 0
	for i, s := range slides {
		n := i + 1
		var rels strings.Builder
		rels.WriteString(xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		rels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
		for j, img := range s.images {
			media++
			name := fmt.Sprintf("image%d.%s", media, img.ext)
			if err := addBytes("ppt/media/"+name, img.data); err != nil {
				return fmt.Errorf("%w: pptx media: %v", ErrEncode, err)
			}
			fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, j+2, name)
		}
		rels.WriteString(`</Relationships>`)
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)); err != nil {
			return fmt.Errorf("%w: pptx slide %d: %v", ErrEncode, n, err)
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels.String()); err != nil {
			return fmt.Errorf("%w: pptx slide %d rels: %v", ErrEncode, n, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: pptx: %v", ErrEncode, err)
	}
	return nil
}
