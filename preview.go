package d2png

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrPreviewRender indicates the HTML preview conversion failed.
var ErrPreviewRender = errors.New("HTML preview rendering failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document so a processed chapter can be opened directly in a browser.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// HTMLPreviewer renders processed chapter markdown to standalone HTML for
// inspection without a full book build. Remaining code blocks keep syntax
// highlighting; rendered diagram images (file or data URI) display as-is.
type HTMLPreviewer struct {
	md goldmark.Markdown
}

// NewHTMLPreviewer creates an HTMLPreviewer with GFM extensions and syntax
// highlighting.
func NewHTMLPreviewer() *HTMLPreviewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)
	return &HTMLPreviewer{md: md}
}

// Render converts processed chapter markdown to a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (p *HTMLPreviewer) Render(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreviewRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
