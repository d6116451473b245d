package portalurl

import (
	"net/url"
	"regexp"
	"testing"

	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"github.com/stretchr/testify/assert"
)

func TestUrl(t *testing.T) {
	defer func() {
		SetGlobalBaseUrl(config.Config.BaseUrl)
	}()
	SetGlobalBaseUrl("http://news.dsvv.test/")

	t.Run("no query", func(t *testing.T) {
		assert.Equal(t, "http://news.dsvv.test/news/foo", Url("/news/foo", nil))
	})
	t.Run("yes query", func(t *testing.T) {
		result := Url("/news", []Q{{"search", "ai & ml"}, {"page", "2"}})
		assert.Equal(t, "http://news.dsvv.test/news?page=2&search=ai+%26+ml", result)
	})
	t.Run("raw query", func(t *testing.T) {
		assert.Equal(t, "http://news.dsvv.test/news?page=1", UrlWithRawQuery("/news", "page=1"))
		assert.Equal(t, "http://news.dsvv.test/news", UrlWithRawQuery("/news", ""))
	})
}

func TestHomepage(t *testing.T) {
	AssertRegexMatch(t, BuildHomepage(), RegexHomepage, nil)
	AssertRegexMatch(t, BuildHealth(), RegexHealth, nil)
}

func TestNews(t *testing.T) {
	AssertRegexMatch(t, BuildNewsListing(), RegexNewsListing, nil)
	AssertRegexMatch(t, BuildNewsFilter(), RegexNewsFilter, nil)
	AssertRegexMatch(t, BuildNewsDetail("hackathon-2024"), RegexNewsDetail, map[string]string{"slug": "hackathon-2024"})
	AssertRegexMatch(t, BuildCategory("alumni"), RegexCategory, map[string]string{"category": "alumni"})
	AssertRegexMatch(t, BuildClub("kriti-club"), RegexClub, map[string]string{"club": "kriti-club"})
	AssertRegexMatch(t, BuildClubs(), RegexClubs, nil)
	assert.Panics(t, func() { BuildNewsDetail("") })
	assert.NotRegexp(t, RegexNewsDetail, "/news/a/b")
	assert.NotRegexp(t, RegexNewsFilter, BuildNewsDetail("filter"))
}

func TestLocation(t *testing.T) {
	loc := filters.ParseLocation("/category/cs", "search=lab&page=3")
	full := BuildLocation(loc)
	AssertRegexMatch(t, full, RegexCategory, map[string]string{"category": "cs"})

	parsed, err := url.Parse(full)
	assert.Nil(t, err)
	assert.Equal(t, "page=3&search=lab", parsed.RawQuery)

	moved, err := url.Parse(BuildFilterChange(loc, filters.FieldCategory, "alumni"))
	assert.Nil(t, err)
	assert.Equal(t, "/news", moved.Path)
	assert.Equal(t, "category=alumni&page=1&search=lab", moved.RawQuery)
}

func TestAdmin(t *testing.T) {
	AssertRegexMatch(t, BuildAdminLogin(), RegexAdminLogin, nil)
	AssertRegexMatch(t, BuildAdminLogout(), RegexAdminLogout, nil)
	AssertRegexMatch(t, BuildAdminDashboard(), RegexAdminDashboard, nil)
	AssertRegexMatch(t, BuildAdminDashboardTab(TabMedia), RegexAdminDashboard, nil)
	assert.Equal(t, BuildAdminDashboard(), BuildAdminDashboardTab(TabDashboard))
	AssertRegexMatch(t, BuildAdminNewsNew(), RegexAdminNewsNew, nil)
	AssertRegexMatch(t, BuildAdminNewsEdit("65a1f"), RegexAdminNewsEdit, map[string]string{"id": "65a1f"})
	AssertRegexMatch(t, BuildAdminNewsSave(), RegexAdminNewsSave, nil)
	AssertRegexMatch(t, BuildAdminNewsDelete("65a1f"), RegexAdminNewsDelete, map[string]string{"id": "65a1f"})
	AssertRegexMatch(t, BuildAdminImagesUpload(), RegexAdminImagesUpload, nil)
	AssertRegexMatch(t, BuildAdminImagesRemove(), RegexAdminImagesRemove, nil)
}

func TestPublic(t *testing.T) {
	AssertRegexMatch(t, BuildPublic("test"), RegexPublic, nil)
	AssertRegexMatch(t, BuildPublic("/test/"), RegexPublic, nil)
	AssertRegexMatch(t, BuildPublic("/css/portal.css"), RegexPublic, nil)
	assert.Panics(t, func() { BuildPublic("") })
	assert.Panics(t, func() { BuildPublic("/") })
	assert.Panics(t, func() { BuildPublic("/thing//image.png") })
}

func AssertRegexMatch(t *testing.T, fullUrl string, regex *regexp.Regexp, paramsToVerify map[string]string) {
	t.Helper()
	parsed, err := url.Parse(fullUrl)
	ok := assert.Nilf(t, err, "Full url could not be parsed: %s", fullUrl)
	if !ok {
		return
	}

	requestPath := parsed.Path
	if len(requestPath) == 0 {
		requestPath = "/"
	}
	match := regex.FindStringSubmatch(requestPath)
	if !assert.NotNilf(t, match, "Url did not match regex: [%s] vs [%s]", requestPath, regex.String()) {
		return
	}

	for i, name := range regex.SubexpNames() {
		expected, ok := paramsToVerify[name]
		if ok {
			assert.Equalf(t, expected, match[i], "Param mismatch for [%s]", name)
			delete(paramsToVerify, name)
		}
	}
	for name := range paramsToVerify {
		assert.Failf(t, "Expected match group not found", "%s", name)
	}
}
