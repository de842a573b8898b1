// Package content holds text helpers shared by the blog and listing
// handlers: slug generation and markdown rendering.
package content

import (
	"bytes"
	stdhtml "html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// UGC policy strips scripts, styles and event handlers but keeps links,
	// images and tables.
	policy = bluemonday.UGCPolicy()
)

// Slugify lowercases s, folds accented letters to their base letter and
// collapses every run of non alphanumeric characters into a single dash.
// Letters outside Latin scripts are kept.
func Slugify(s string) string {
	// decompose, drop combining marks, recompose: "é" becomes "e"
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err == nil {
		s = folded
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Excerpt returns the first n runes of the plain text of src, cut on a word
// boundary.
func Excerpt(src string, n int) string {
	text := strings.Join(strings.Fields(stripMarkdown(src)), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	cut := string(r[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

func stripMarkdown(src string) string {
	html, err := RenderMarkdown(src)
	if err != nil {
		return src
	}
	return stdhtml.UnescapeString(bluemonday.StrictPolicy().Sanitize(html))
}
