package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Page import descriptions for pdfcpu. Portrait windows already have A4
// proportions so they fill the page; deck slides are fitted and centred.
const (
	portraitImport  = "f:A4, pos:full"
	landscapeImport = "f:A4L, pos:c, sc:1.0 rel"
)

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: png: %v", ErrEncode, err)
	}
	return nil
}

// encodePDF writes one page per image using the given pdfcpu import
// description.
func encodePDF(w io.Writer, images []image.Image, desc string) error {
	readers := make([]io.Reader, 0, len(images))
	for _, img := range images {
		var buf bytes.Buffer
		if err := encodePNG(&buf, img); err != nil {
			return err
		}
		readers = append(readers, &buf)
	}
	imp, err := api.Import(desc, types.POINTS)
	if err != nil {
		return fmt.Errorf("%w: pdf layout: %v", ErrEncode, err)
	}
	conf := model.NewDefaultConfiguration()
	if err := api.ImportImages(nil, w, readers, imp, conf); err != nil {
		return fmt.Errorf("%w: pdf: %v", ErrEncode, err)
	}
	return nil
}
