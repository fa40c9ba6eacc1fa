// ABOUTME: HTML utilities for stripping tags and building plain-text excerpts
// ABOUTME: Uses goquery so entities and nested markup are handled by a real parser

package html

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes HTML tags, decodes entities and collapses whitespace
func StripHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return collapseWhitespace(markup)
	}

	doc.Find("script, style, noscript").Remove()
	return collapseWhitespace(doc.Text())
}

// Truncate shortens s to at most max runes, appending "..." when cut
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// Excerpt returns the plain-text form of markup cut to max runes
func Excerpt(markup string, max int) string {
	return Truncate(StripHTML(markup), max)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
