package website

import (
	"net/http"

	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

// NewWebsiteRoutes builds the portal. api is the unauthenticated backend
// client; each request gets a copy bound to its own session.
func NewWebsiteRoutes(api *newsapi.Client, featured FeaturedSource) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			trackRequestPerf,
			logContextErrorsMiddleware,
			storeNoticesInCookieMiddleware,
			panicCatcherMiddleware,
			loadSession(api, featured),
		},
	}

	staticFiles := http.StripPrefix(portalurl.StaticPath, http.FileServer(http.FS(templates.PublicFS())))
	routes.GET(portalurl.RegexPublic, func(c *RequestContext) ResponseData {
		var res ResponseData
		staticFiles.ServeHTTP(&res, c.Req)
		return res
	})
	routes.GET(portalurl.RegexHealth, Health)

	routes.GET(portalurl.RegexHomepage, Index)
	routes.GET(portalurl.RegexNewsListing, NewsListing)
	routes.GET(portalurl.RegexNewsFilter, NewsFilter)
	routes.GET(portalurl.RegexNewsDetail, NewsDetail)
	routes.GET(portalurl.RegexCategory, NewsListing)
	routes.GET(portalurl.RegexClub, NewsListing)
	routes.GET(portalurl.RegexClubs, ClubsIndex)

	anonymous := routes.WithMiddleware(redirectIfAuthenticated)
	anonymous.GET(portalurl.RegexAdminLogin, LoginPage)
	anonymous.POST(portalurl.RegexAdminLogin, Login)
	routes.AnyMethod(portalurl.RegexAdminLogout, Logout)

	adminRoutes := routes.WithMiddleware(needsAuth)
	adminActions := adminRoutes.WithMiddleware(csrfMiddleware)
	adminRoutes.GET(portalurl.RegexAdminDashboard, AdminDashboard)
	adminRoutes.GET(portalurl.RegexAdminNewsNew, AdminNewsNew)
	adminRoutes.GET(portalurl.RegexAdminNewsEdit, AdminNewsEdit)
	adminActions.POST(portalurl.RegexAdminNewsSave, AdminNewsSave)
	adminActions.POST(portalurl.RegexAdminImagesUpload, AdminImagesUpload)
	adminActions.POST(portalurl.RegexAdminImagesRemove, AdminImagesRemove)
	adminRoutes.GET(portalurl.RegexAdminNewsDelete, AdminNewsDeleteConfirm)
	adminActions.POST(portalurl.RegexAdminNewsDelete, AdminNewsDelete)
	adminRoutes.AnyMethod(portalurl.RegexAdminAny, func(c *RequestContext) ResponseData {
		return c.Redirect(portalurl.BuildAdminDashboard(), http.StatusSeeOther)
	})

	routes.AnyMethod(portalurl.RegexCatchAll, FourOhFour)

	return router
}
