package website

import (
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

// Categories linked from the main navigation, in menu order.
var navCategories = []models.Category{models.CategoryCS, models.CategoryAlumni, models.CategoryClub}

// If you pass breadcrumbs, the Home breadcrumb is prepended when missing. Pass
// nil for no breadcrumbs at all.
func getBaseData(c *RequestContext, title string, breadcrumbs []templates.Breadcrumb) templates.BaseData {
	var templateSession *templates.Session
	if c.Session.IsAuthenticated() {
		templateSession = &templates.Session{CSRFToken: c.Session.CSRFToken()}
	}

	if len(breadcrumbs) > 0 {
		homeUrl := portalurl.BuildHomepage()
		if breadcrumbs[0].Url != homeUrl {
			breadcrumbs = append([]templates.Breadcrumb{{Name: "Home", Url: homeUrl}}, breadcrumbs...)
		}
	}

	var categoryLinks []templates.NavLink
	for _, cat := range navCategories {
		categoryLinks = append(categoryLinks, templates.NavLink{Name: cat.Label(), Url: portalurl.BuildCategory(string(cat))})
	}
	var footerCategories []templates.NavLink
	for _, cat := range models.AllCategories {
		footerCategories = append(footerCategories, templates.NavLink{Name: cat.Label(), Url: portalurl.BuildCategory(string(cat))})
	}

	return templates.BaseData{
		Title:       title,
		Breadcrumbs: breadcrumbs,
		Notices:     getNoticesFromCookie(c),

		CurrentUrl: c.FullUrl(),
		Today:      time.Now(),

		User:    templates.UserToTemplate(c.CurrentUser),
		Session: templateSession,

		Header: templates.Header{
			HomepageUrl:   portalurl.BuildHomepage(),
			NewsUrl:       portalurl.BuildNewsListing(),
			CategoryLinks: categoryLinks,
			ClubsUrl:      portalurl.BuildClubs(),
			AdminUrl:      portalurl.BuildAdminDashboard(),
			LogoutUrl:     portalurl.BuildAdminLogout(),
			SearchUrl:     portalurl.BuildNewsListing(),
		},
		Footer: templates.Footer{
			HomepageUrl: portalurl.BuildHomepage(),
			NewsUrl:     portalurl.BuildNewsListing(),
			ClubsUrl:    portalurl.BuildClubs(),
			AdminUrl:    portalurl.BuildAdminDashboard(),
			Categories:  footerCategories,
		},
	}
}
