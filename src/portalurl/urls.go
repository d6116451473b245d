package portalurl

import (
	"net/url"
	"regexp"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

var RegexHomepage = regexp.MustCompile("^/$")

func BuildHomepage() string {
	return Url("/", nil)
}

var RegexHealth = regexp.MustCompile("^/health$")

func BuildHealth() string {
	return Url("/health", nil)
}

/*
* News
 */

var RegexNewsListing = regexp.MustCompile("^/news$")

func BuildNewsListing() string {
	return Url(filters.ListingPath, nil)
}

// BuildLocation turns a listing location into a url. Every link on the
// listing page goes through here so they all share one query encoding.
func BuildLocation(loc filters.Location) string {
	return UrlWithRawQuery(loc.Path, loc.Filters.Encode())
}

// BuildFilterChange is the link that applies one filter change to loc.
func BuildFilterChange(loc filters.Location, field filters.Field, value string) string {
	return BuildLocation(loc.With(field, value))
}

// The filter form posts here with the current location and the change. It
// lives outside /news/ so no article slug can shadow it.
var RegexNewsFilter = regexp.MustCompile("^/news-filter$")

func BuildNewsFilter() string {
	return Url("/news-filter", nil)
}

var RegexNewsDetail = regexp.MustCompile(`^/news/(?P<slug>[^/]+)$`)

func BuildNewsDetail(slug string) string {
	if slug == "" {
		panic(oops.New(nil, "attempted to build a news url with no slug"))
	}
	return Url("/news/"+url.PathEscape(slug), nil)
}

var RegexCategory = regexp.MustCompile(`^/category/(?P<category>[^/]+)$`)

func BuildCategory(category string) string {
	return Url("/category/"+url.PathEscape(category), nil)
}

var RegexClub = regexp.MustCompile(`^/club/(?P<club>[^/]+)$`)

func BuildClub(club string) string {
	return Url("/club/"+url.PathEscape(club), nil)
}

var RegexClubs = regexp.MustCompile("^/clubs$")

func BuildClubs() string {
	return Url("/clubs", nil)
}

/*
* Admin
 */

var RegexAdminLogin = regexp.MustCompile("^/admin/login$")

func BuildAdminLogin() string {
	return Url("/admin/login", nil)
}

var RegexAdminLogout = regexp.MustCompile("^/admin/logout$")

func BuildAdminLogout() string {
	return Url("/admin/logout", nil)
}

const (
	TabDashboard = "dashboard"
	TabNews      = "news"
	TabMedia     = "media"
)

// Anything else under /admin.
var RegexAdminAny = regexp.MustCompile("^/admin")

var RegexAdminDashboard = regexp.MustCompile("^/admin/dashboard$")

func BuildAdminDashboard() string {
	return Url("/admin/dashboard", nil)
}

func BuildAdminDashboardTab(tab string) string {
	if tab == "" || tab == TabDashboard {
		return BuildAdminDashboard()
	}
	return Url("/admin/dashboard", []Q{{"tab", tab}})
}

var RegexAdminNewsNew = regexp.MustCompile("^/admin/news/new$")

func BuildAdminNewsNew() string {
	return Url("/admin/news/new", nil)
}

var RegexAdminNewsEdit = regexp.MustCompile(`^/admin/news/(?P<id>[^/]+)/edit$`)

func BuildAdminNewsEdit(id string) string {
	return Url("/admin/news/"+url.PathEscape(id)+"/edit", nil)
}

var RegexAdminNewsSave = regexp.MustCompile("^/admin/news/save$")

func BuildAdminNewsSave() string {
	return Url("/admin/news/save", nil)
}

var RegexAdminNewsDelete = regexp.MustCompile(`^/admin/news/(?P<id>[^/]+)/delete$`)

func BuildAdminNewsDelete(id string) string {
	return Url("/admin/news/"+url.PathEscape(id)+"/delete", nil)
}

var RegexAdminImagesUpload = regexp.MustCompile("^/admin/images/upload$")

func BuildAdminImagesUpload() string {
	return Url("/admin/images/upload", nil)
}

var RegexAdminImagesRemove = regexp.MustCompile("^/admin/images/remove$")

func BuildAdminImagesRemove() string {
	return Url("/admin/images/remove", nil)
}

/*
* Assets
 */

var RegexPublic = regexp.MustCompile("^" + StaticPath + "/.+$")

func BuildPublic(filepath string) string {
	filepath = strings.Trim(filepath, "/")
	if len(strings.TrimSpace(filepath)) == 0 {
		panic(oops.New(nil, "attempted to build a /public url with no path"))
	}
	var builder strings.Builder
	builder.WriteString(StaticPath)
	for _, part := range strings.Split(filepath, "/") {
		part = strings.TrimSpace(part)
		if len(part) == 0 {
			panic(oops.New(nil, "attempted to build a /public url with blank path segments: %s", filepath))
		}
		builder.WriteByte('/')
		builder.WriteString(part)
	}
	return Url(builder.String(), nil)
}

var RegexCatchAll = regexp.MustCompile("^")
