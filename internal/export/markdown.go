package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// writeMarkdown converts a prepared clone to Markdown.
func writeMarkdown(w io.Writer, conv *converter.Converter, clone *html.Node) error {
	var src bytes.Buffer
	if err := html.Render(&src, clone); err != nil {
		return fmt.Errorf("%w: markdown source: %v", ErrEncode, err)
	}
	md, err := conv.ConvertString(src.String())
	if err != nil {
		return fmt.Errorf("%w: markdown: %v", ErrEncode, err)
	}
	if _, err := io.WriteString(w, md+"\n"); err != nil {
		return fmt.Errorf("%w: markdown: %v", ErrEncode, err)
	}
	return nil
}
