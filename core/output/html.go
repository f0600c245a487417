package output

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"subscription-audit/core/types"
)

// HTMLFormatter renders the markdown report as a standalone HTML page
type HTMLFormatter struct {
	markdown *MarkdownFormatter
}

// NewHTMLFormatter creates an HTML formatter
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{markdown: NewMarkdownFormatter()}
}

// Format returns FormatHTML
func (f *HTMLFormatter) Format() Format {
	return FormatHTML
}

// ContentType returns the HTML MIME type
func (f *HTMLFormatter) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the report as HTML
func (f *HTMLFormatter) Render(w io.Writer, report *types.Report) error {
	var md bytes.Buffer
	if err := f.markdown.Render(&md, report); err != nil {
		return err
	}

	// parsers are single use; MathJax would read "$ 1.00 | $ 2.00" as inline math
	p := parser.NewWithExtensions(parser.CommonExtensions &^ parser.MathJax)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: reportTitle,
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
	})

	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer))
	return err
}
