package website

import (
	"fmt"
	"net/http"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/auth"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/perf"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
)

const SessionExpiredMessage = "Your session has expired. Please log in again."

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(*error)
				var err error
				if ok {
					err = *maybeError
				} else {
					err = oops.New(nil, fmt.Sprintf("Recovered from panic with value: %v", recovered))
				}
				res = c.ErrorResponse(http.StatusInternalServerError, err)
			}
		}()

		return h(c)
	}
}

func trackRequestPerf(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		c.Perf = perf.MakeNewRequestPerf(c.Route, c.Req.Method, c.Req.URL.Path)
		defer func() {
			c.Perf.EndRequest()
			log := c.Logger.Debug()
			blockStack := make([]time.Time, 0)
			blocks := c.Perf.Snapshot()
			for i, block := range blocks {
				for len(blockStack) > 0 && block.End.After(blockStack[len(blockStack)-1]) {
					blockStack = blockStack[:len(blockStack)-1]
				}
				log.Str(fmt.Sprintf("[%4.d] At %9.2fms", i, c.Perf.MsFromStart(&block)), fmt.Sprintf("%*.s[%s] %s (%.4fms)", len(blockStack)*2, "", block.Category, block.Description, block.DurationMs()))
				blockStack = append(blockStack, block.End)
			}
			log.Msg(fmt.Sprintf("Served [%s] %s in %.4fms", c.Req.Method, c.Req.URL.Path, c.Perf.TotalMs()))
		}()

		return h(c)
	}
}

// loadSession opens the session cookie and binds the backend client to it.
// If anything during the request got a 401 from the backend, the session is
// dropped and the browser goes to the login page.
func loadSession(api *newsapi.Client, featured FeaturedSource) Middleware {
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			c.Session = auth.SessionFromRequest(c.Req)
			c.CurrentUser = c.Session.User()
			c.API = api.WithSession(c.Session)
			c.Featured = featured

			res := h(c)

			if c.Session.Invalidated() {
				c.Logger.Info().Msg("session rejected by the backend; logging out")
				errs := res.Errors
				res = c.Redirect(portalurl.BuildAdminLogin(), http.StatusSeeOther)
				res.SetCookie(auth.DeleteSessionCookie)
				res.AddFutureNotice("warn", SessionExpiredMessage)
				res.Errors = errs
			}
			return res
		}
	}
}

func needsAuth(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if !c.Session.IsAuthenticated() {
			return c.Redirect(portalurl.BuildAdminLogin(), http.StatusSeeOther)
		}

		return h(c)
	}
}

func redirectIfAuthenticated(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.Session.IsAuthenticated() {
			return c.Redirect(portalurl.BuildAdminDashboard(), http.StatusSeeOther)
		}

		return h(c)
	}
}

func csrfMiddleware(h Handler) Handler {
	// CSRF mitigation per the OWASP cheat sheet:
	// https://cheatsheetseries.owasp.org/cheatsheets/Cross-Site_Request_Forgery_Prevention_Cheat_Sheet.html
	return func(c *RequestContext) ResponseData {
		c.Req.ParseMultipartForm(MaxUploadBytes)
		csrfToken := c.Req.Form.Get(auth.CSRFFieldName)
		if csrfToken == "" || csrfToken != c.Session.CSRFToken() {
			log := c.Logger.Warn()
			if c.CurrentUser != nil {
				log = log.Str("user", c.CurrentUser.Email)
			}
			log.Msg("user failed CSRF validation - potential attack?")

			res := c.Redirect(portalurl.BuildAdminLogin(), http.StatusSeeOther)
			res.SetCookie(auth.DeleteSessionCookie)
			return res
		}

		return h(c)
	}
}

func logContextErrors(c *RequestContext, errs ...error) {
	for _, err := range errs {
		c.Logger.Error().Timestamp().Stack().Str("Requested", c.FullUrl()).Err(err).Msg("error occurred during request")
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}
