package export

import "errors"

var (
	// ErrRegionNotFound is returned when the requested element id is not in
	// the document. The document is left untouched.
	ErrRegionNotFound = errors.New("export region not found")

	// ErrEmptyRaster is returned when a capture produced a zero-height image.
	ErrEmptyRaster = errors.New("capture produced an empty image")

	// ErrEncode wraps failures while writing an output file format.
	ErrEncode = errors.New("encoding export")

	// ErrExportInProgress is returned when an exporter is already busy.
	ErrExportInProgress = errors.New("an export is already in progress")

	// ErrNoSlides is returned when a deck export finds nothing to capture.
	ErrNoSlides = errors.New("no slides to export")

	// ErrUnsupportedFormat is returned for a format the artifact cannot produce.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
