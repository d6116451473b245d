package website

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsdetail"
	"git.dsvv.ac.in/cs/newsportal/src/newsquery"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/parsing"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

const (
	ListingFailedMessage = "We couldn't load the news right now. Please try again in a moment."
	NewsNotFoundHeading  = "News Not Found"

	wordsPerMinute = 200
)

type ListingTemplateData struct {
	templates.BaseData

	Heading string

	FilterUrl string
	Path      string
	RawQuery  string
	Filters   filters.FilterSet

	CategoryOptions []templates.SelectOption
	ClubOptions     []templates.SelectOption
	Chips           []templates.FilterChip

	News       []templates.ArticleCard
	Pagination templates.Pagination
}

// NewsListing serves /news, /category/{category} and /club/{club}. All three
// are the same listing; the path only pre-selects a filter.
func NewsListing(c *RequestContext) ResponseData {
	var res ResponseData

	executor := newsquery.NewExecutor(c.API)
	var result newsquery.Result
	var fetchErr error
	sync := filters.NewSynchronizer(func(f filters.FilterSet) {
		result, fetchErr = executor.Fetch(c, f)
	})
	loc := sync.Navigate(listingPath(c.Req.URL.Path), c.Req.URL.RawQuery)

	heading := listingHeading(loc.Filters)
	baseData := getBaseData(c, heading, nil)
	baseData.CanonicalLink = portalurl.BuildLocation(loc)
	if fetchErr != nil {
		res.Errors = append(res.Errors, oops.New(fetchErr, "failed to fetch news listing"))
		baseData.AddImmediateNotice("failure", ListingFailedMessage)
	}

	res.MustWriteTemplate("listing.html", ListingTemplateData{
		BaseData: baseData,
		Heading:  heading,

		FilterUrl: portalurl.BuildNewsFilter(),
		Path:      loc.Path,
		RawQuery:  loc.Filters.Encode(),
		Filters:   loc.Filters,

		CategoryOptions: templates.CategoryOptions(loc.Filters.Category, true),
		ClubOptions:     templates.ClubOptions(loc.Filters.Club, "All Clubs"),
		Chips:           filterChips(loc),

		News:       templates.ArticlesToTemplate(result.Items),
		Pagination: buildPagination(loc, result.Pagination),
	}, c.Perf)
	return res
}

func listingPath(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return filters.ListingPath
	}
	return path
}

func listingHeading(f filters.FilterSet) string {
	switch {
	case f.Category != "":
		return strings.ToUpper(f.Category) + " News"
	case f.Club != "":
		return models.ClubDisplayName(f.Club) + " Activities"
	default:
		return "All News"
	}
}

func filterChips(loc filters.Location) []templates.FilterChip {
	var chips []templates.FilterChip
	f := loc.Filters
	if f.Category != "" {
		chips = append(chips, templates.FilterChip{
			Label:    "Category",
			Value:    models.Category(f.Category).Label(),
			Class:    "category",
			ClearUrl: portalurl.BuildFilterChange(loc, filters.FieldCategory, ""),
		})
	}
	if f.Club != "" {
		chips = append(chips, templates.FilterChip{
			Label:    "Club",
			Value:    models.ClubDisplayName(f.Club),
			Class:    "club",
			ClearUrl: portalurl.BuildFilterChange(loc, filters.FieldClub, ""),
		})
	}
	if f.Search != "" {
		chips = append(chips, templates.FilterChip{
			Label:    "Search",
			Value:    f.Search,
			Class:    "search",
			ClearUrl: portalurl.BuildFilterChange(loc, filters.FieldSearch, ""),
		})
	}
	return chips
}

// NewsFilter applies one filter change submitted from a listing page and
// redirects to the resulting location. Only listing paths are accepted as
// the starting point, so this can't be used to redirect elsewhere.
func NewsFilter(c *RequestContext) ResponseData {
	q := c.Req.URL.Query()

	field, ok := filters.ParseField(q.Get("field"))
	if !ok {
		return c.Redirect(portalurl.BuildNewsListing(), http.StatusSeeOther)
	}

	path := listingPath(q.Get("path"))
	if !isListingPath(path) {
		c.Logger.Warn().Str("path", path).Msg("filter change from a non-listing path")
		path = filters.ListingPath
	}

	loc := filters.ParseLocation(path, q.Get("query"))
	return c.Redirect(portalurl.BuildLocation(loc.With(field, strings.TrimSpace(q.Get("value")))), http.StatusSeeOther)
}

func isListingPath(path string) bool {
	return portalurl.RegexNewsListing.MatchString(path) ||
		portalurl.RegexCategory.MatchString(path) ||
		portalurl.RegexClub.MatchString(path)
}

type DetailTemplateData struct {
	templates.BaseData

	Article        templates.Article
	Related        []templates.ArticleCard
	ReadingMinutes int
}

func NewsDetail(c *RequestContext) ResponseData {
	slug := c.PathParams["slug"]

	view := newsdetail.NewView(newsdetail.NewResolver(c.API))
	detail, _, err := view.Load(c, slug)
	if err != nil {
		if errors.Is(err, newsdetail.ErrNotFound) {
			return notFound(c, NewsNotFoundHeading, NewsNotFoundHeading)
		}
		return c.ErrorResponse(http.StatusBadGateway, oops.New(err, "failed to load article %s", slug))
	}

	article := detail.Article
	baseData := getBaseData(c, article.Title, articleBreadcrumbs(article))
	baseData.CanonicalLink = portalurl.BuildNewsDetail(article.Slug)

	var res ResponseData
	res.MustWriteTemplate("detail.html", DetailTemplateData{
		BaseData:       baseData,
		Article:        templates.ArticleDetailToTemplate(article),
		Related:        templates.ArticlesToTemplate(detail.Related),
		ReadingMinutes: readingMinutes(article.Content),
	}, c.Perf)
	return res
}

// Home › <category> News › <club> › <title>
func articleBreadcrumbs(a *models.Article) []templates.Breadcrumb {
	crumbs := []templates.Breadcrumb{{Name: "Home", Url: portalurl.BuildHomepage()}}
	if a.Category != "" {
		crumbs = append(crumbs, templates.Breadcrumb{
			Name: capitalize(string(a.Category)) + " News",
			Url:  portalurl.BuildCategory(string(a.Category)),
		})
	}
	if a.ClubName != "" {
		crumbs = append(crumbs, templates.Breadcrumb{
			Name: models.ClubDisplayName(a.ClubName),
			Url:  portalurl.BuildClub(a.ClubName),
		})
	}
	return append(crumbs, templates.Breadcrumb{Name: a.Title})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func readingMinutes(content string) int {
	words := len(strings.Fields(parsing.StripMarkup(content)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

type ClubsTemplateData struct {
	templates.BaseData
	Clubs []templates.Club
}

func ClubsIndex(c *RequestContext) ResponseData {
	clubs := make([]templates.Club, 0, len(models.Clubs))
	for i := range models.Clubs {
		clubs = append(clubs, templates.ClubToTemplate(&models.Clubs[i]))
	}

	var res ResponseData
	res.MustWriteTemplate("clubs.html", ClubsTemplateData{
		BaseData: getBaseData(c, "Student Clubs", []templates.Breadcrumb{{Name: "Clubs"}}),
		Clubs:    clubs,
	}, c.Perf)
	return res
}
