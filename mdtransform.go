package flashcard

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==, converted after goldmark so the raw HTML
	// renderer stays disabled for everything else.
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

// cardRenderer converts card Markdown into sanitized HTML fragments. Cards
// carry untrusted user content, so everything goldmark emits passes through
// a bluemonday policy before reaching a template.
type cardRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// newCardRenderer creates a cardRenderer with GFM extensions and syntax
// highlighting via CSS classes.
func newCardRenderer() *cardRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes keep fragments small and themeable
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe() intentionally NOT used; ==highlight== is
			// converted after goldmark instead.
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	policy.AllowElements("mark")
	policy.AllowAttrs("type", "checked", "disabled").OnElements("input") // GFM task lists

	return &cardRenderer{md: md, policy: policy}
}

// Render converts one card side from Markdown to a sanitized HTML fragment.
// Empty content renders to an empty fragment, which keeps blank card backs
// and PDF padding cards cheap.
func (r *cardRenderer) Render(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}

	prepared := preprocessMarkdown(content)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(prepared), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	fragment := convertHighlights(buf.String())
	return r.policy.Sanitize(fragment), nil
}

// preprocessMarkdown applies transformations before CommonMark conversion.
func preprocessMarkdown(content string) string {
	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to <mark>text</mark>.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, "<mark>$1</mark>")
}
