package templates

import (
	"bytes"
	"html/template"
	"io/fs"
	"regexp"
	"strings"
	"testing"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"github.com/teacat/noire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplatesParse(t *testing.T) {
	templates, errs := getTemplatesFromFS(embeddedTemplateFs)
	assert.Empty(t, errs)
	for _, name := range []string{
		"home.html", "listing.html", "detail.html", "clubs.html", "404.html", "error.html",
		"admin_login.html", "admin_dashboard.html", "admin_editor.html", "admin_delete.html",
	} {
		assert.Contains(t, templates, name)
	}
}

func TestEveryPortalFuncIsUsed(t *testing.T) {
	var sources strings.Builder
	err := fs.WalkDir(embeddedTemplateFs, "src", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		contents, err := fs.ReadFile(embeddedTemplateFs, path)
		sources.Write(contents)
		return err
	})
	require.Nil(t, err)

	for name := range PortalTemplateFuncs {
		used := regexp.MustCompile(`[{(|=]\s*` + name + `\b`).MatchString(sources.String())
		assert.True(t, used, "template func %s is never called", name)
	}
}

func TestPublicFS(t *testing.T) {
	f, err := PublicFS().Open("portal.css")
	require.Nil(t, err)
	f.Close()
}

func TestCategoryColor(t *testing.T) {
	colorFn := PortalTemplateFuncs["categorycolor"].(func(string) noire.Color)
	css := PortalTemplateFuncs["color2css"].(func(noire.Color) template.CSS)
	assert.Contains(t, strings.ToLower(string(css(colorFn("cs")))), "b91c1c")
	assert.NotEqual(t, css(colorFn("cs")), css(colorFn("alumni")))
}

func TestRelativeDate(t *testing.T) {
	rel := PortalTemplateFuncs["relativedate"].(func(time.Time) string)
	assert.Equal(t, "Less than a minute ago", rel(time.Now()))
	assert.Equal(t, "1 hour ago", rel(time.Now().Add(-90*time.Minute)))
	assert.Equal(t, "3 days ago", rel(time.Now().Add(-3*Dayish-time.Hour)))
}

func TestCSRFToken(t *testing.T) {
	csrf := PortalTemplateFuncs["csrftoken"].(func(*Session) template.HTML)
	assert.Equal(t, template.HTML(""), csrf(nil))
	assert.Contains(t, string(csrf(&Session{CSRFToken: "abc"})), `name="csrf_token" value="abc"`)
}

func TestNewsCardRendering(t *testing.T) {
	a := models.ArticleSummary{
		Slug:     "annual-tech-fest",
		Title:    "Annual <Tech> Fest",
		Excerpt:  "Three days of talks.",
		Category: models.CategoryClub,
		ClubName: "kriti-club",
		Author:   "CS Department",
		CreatedAt: time.Date(2024, time.January, 26, 10, 0, 0, 0, time.UTC),
	}
	card := ArticleToTemplate(&a)
	assert.Equal(t, "Kriti Club", card.ClubName)
	assert.Nil(t, card.Image)

	var buf bytes.Buffer
	err := GetTemplate("listing.html").ExecuteTemplate(&buf, "news_card.html", card)
	require.Nil(t, err)
	html := buf.String()
	assert.Contains(t, html, "Annual &lt;Tech&gt; Fest")
	assert.Contains(t, html, "/news/annual-tech-fest")
	assert.Contains(t, html, "/club/kriti-club")
	assert.Contains(t, html, "26/1/2024")
	assert.Contains(t, html, "Club Activities")
}

func TestArticleDetailIsSanitized(t *testing.T) {
	a := &models.Article{Content: `<p onclick="steal()">Hello</p><script>alert(1)</script>`}
	a.Slug = "x"
	a.Category = models.CategoryCS
	detail := ArticleDetailToTemplate(a)
	assert.NotContains(t, string(detail.Content), "script")
	assert.NotContains(t, string(detail.Content), "onclick")
	assert.Contains(t, string(detail.Content), "Hello")
}

func TestClubToTemplate(t *testing.T) {
	club := ClubToTemplate(models.ClubBySlug("disha-club"))
	assert.Contains(t, string(club.About), "<strong>one-on-one career counselling</strong>")
	assert.Equal(t, "Disha Club", club.Name)
}
