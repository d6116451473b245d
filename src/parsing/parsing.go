package parsing

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Used for the static text we ship ourselves (club blurbs and the like).
// Untrusted content never goes through here.
var StaticMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
)

func ParseMarkdown(source string, md goldmark.Markdown) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		panic(err)
	}

	return buf.String()
}

var stripTagsPolicy = bluemonday.StripTagsPolicy()

// StripMarkup removes every tag from rich-text markup and decodes entities,
// leaving the text a reader would see.
func StripMarkup(markup string) string {
	return html.UnescapeString(stripTagsPolicy.Sanitize(markup))
}

var articlePolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Alignment, indentation and sizes from the rich-text editor.
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(ql-[a-z0-9-]+\s?)+$`)).Globally()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// SanitizeArticleHTML makes backend-provided article content safe to embed in
// a page. The backend stores whatever the editor sent.
func SanitizeArticleHTML(content string) string {
	return articlePolicy.Sanitize(content)
}

// IsBlankMarkup reports whether rich-text markup has no visible content. The
// editor leaves "<p><br></p>" behind when everything is deleted.
func IsBlankMarkup(markup string) bool {
	trimmed := strings.TrimSpace(markup)
	return trimmed == "" || trimmed == "<p><br></p>"
}
