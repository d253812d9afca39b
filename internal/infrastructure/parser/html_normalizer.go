package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ESGRiskScanner/internal/ports"
)

// HTMLNormalizer extracts readable text from article bodies that arrive as HTML.
type HTMLNormalizer struct {
	// bodySelectors are tried in order; the first one with text wins.
	bodySelectors []string
}

var _ ports.ContentNormalizer = (*HTMLNormalizer)(nil)

// NewHTMLNormalizer prefers <article> text, then paragraphs, then the whole body.
func NewHTMLNormalizer() *HTMLNormalizer {
	return &HTMLNormalizer{bodySelectors: []string{"article p", "article", "p"}}
}

// Normalize returns plain text with collapsed whitespace. Content without
// markup only has its whitespace collapsed.
func (n *HTMLNormalizer) Normalize(content string) (string, error) {
	if !looksLikeHTML(content) {
		return collapse(content), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	for _, sel := range n.bodySelectors {
		if text := joinText(doc.Find(sel)); text != "" {
			return text, nil
		}
	}

	return collapse(doc.Text()), nil
}

func joinText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func looksLikeHTML(content string) bool {
	i := strings.IndexByte(content, '<')
	if i < 0 {
		return false
	}
	return strings.IndexByte(content[i:], '>') > 0
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
