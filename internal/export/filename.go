package export

import (
	"fmt"
	"regexp"
	"strings"
)

// Format is an export output format.
type Format string

const (
	FormatPNG      Format = "png"
	FormatPDF      Format = "pdf"
	FormatPPTX     Format = "pptx"
	FormatMarkdown Format = "md"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF, FormatPPTX, FormatMarkdown:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// FileName joins a base name and the format extension.
func FileName(base string, f Format) string {
	return base + "." + string(f)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

const marketFallback = "market-research-report"

// MarketBaseName derives the market research file name from the first 50
// characters of the market definition.
func MarketBaseName(definition string) string {
	if strings.TrimSpace(definition) == "" {
		return marketFallback
	}
	r := []rune(definition)
	if len(r) > 50 {
		r = r[:50]
	}
	slug := nonSlug.ReplaceAllString(strings.ToLower(string(r)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return marketFallback
	}
	return slug + "-market-research"
}
