package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":                   "hello-world",
		"  3 Bed / 2 Bath -- Downtown ": "3-bed-2-bath-downtown",
		"Crème brûlée Condo":            "creme-brulee-condo",
		"Café Lofts":                    "cafe-lofts",
		"Zürich Straße 5":               "zurich-straße-5",
		"東京 タワー":                        "東京-タワー",
		"already-a-slug":                "already-a-slug",
		"!!!":                           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Title\n\nSome *text* and a [link](https://example.com).")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<em>text</em>")
	assert.Contains(t, html, `href="https://example.com"`)
}

func TestRenderMarkdown_Sanitizes(t *testing.T) {
	html, err := RenderMarkdown("hi <script>alert(1)</script> <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "onerror")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 20))
	got := Excerpt("The quick brown fox jumps over the lazy dog", 16)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, "The quick brown…", got)
	assert.Equal(t, "Bold words", Excerpt("**Bold** words", 50))
}

func TestExcerpt_Unescapes(t *testing.T) {
	assert.Equal(t, "Don't miss it & more", Excerpt("Don't miss it & more", 100))
}
