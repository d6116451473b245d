package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	html := ParseMarkdown("Weekly **coding** sessions.\n\n- Hackathons\n- Talks", StaticMarkdown)
	t.Log(html)
	assert.Contains(t, html, "<strong>coding</strong>")
	assert.Equal(t, 2, strings.Count(html, "<li>"))
}

func TestStripMarkup(t *testing.T) {
	items := []struct {
		name     string
		markup   string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"paragraph", "<p>Results are out</p>", "Results are out"},
		{"nested", "<p><strong>Big</strong> <em>news</em></p>", "Big news"},
		{"entities", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		{"empty editor", "<p><br></p>", ""},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			assert.Equal(t, item.expected, StripMarkup(item.markup))
		})
	}
}

func TestSanitizeArticleHTML(t *testing.T) {
	clean := SanitizeArticleHTML(`<p class="ql-align-center">Hi<img src="x.png" onerror="alert(1)"></p><script>steal()</script>`)
	assert.Contains(t, clean, `class="ql-align-center"`)
	assert.NotContains(t, clean, "onerror")
	assert.NotContains(t, clean, "<script")

	assert.NotContains(t, SanitizeArticleHTML(`<p class="evil">x</p>`), "evil")
}

func TestIsBlankMarkup(t *testing.T) {
	assert.True(t, IsBlankMarkup(""))
	assert.True(t, IsBlankMarkup("   "))
	assert.True(t, IsBlankMarkup("<p><br></p>"))
	assert.False(t, IsBlankMarkup("<p>x</p>"))
}
