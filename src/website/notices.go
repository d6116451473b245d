package website

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

const NoticesCookieName = "dsvv_notices"

// Upper bound on the serialized notices, to keep the cookie small.
const maxNoticesSize = 1024

var noticeClasses = map[string]bool{
	"success": true,
	"failure": true,
	"warn":    true,
}

func getNoticesFromCookie(c *RequestContext) []templates.Notice {
	cookie, err := c.Req.Cookie(NoticesCookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			c.Logger.Warn().Err(err).Msg("failed to get notices cookie")
		}
		return nil
	}
	return deserializeNoticesFromCookie(cookie.Value)
}

func storeNoticesInCookie(c *RequestContext, res *ResponseData) {
	serialized := serializeNoticesForCookie(c, res.FutureNotices)
	if serialized != "" {
		noticesCookie := http.Cookie{
			Name:     NoticesCookieName,
			Value:    serialized,
			Path:     "/",
			Domain:   config.Config.Auth.CookieDomain,
			Expires:  time.Now().Add(time.Minute * 5),
			Secure:   config.Config.Auth.CookieSecure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		res.SetCookie(&noticesCookie)
	} else if !(res.StatusCode >= 300 && res.StatusCode < 400) {
		// Redirects keep the notices for the page they lead to.
		noticesCookie := http.Cookie{
			Name:   NoticesCookieName,
			Path:   "/",
			Domain: config.Config.Auth.CookieDomain,
			MaxAge: -1,
		}
		res.SetCookie(&noticesCookie)
	}
}

// Notices are joined as class|content pairs separated by tabs, then query
// escaped, since tabs and most HTML are not valid in a cookie value.
func serializeNoticesForCookie(c *RequestContext, notices []FutureNotice) string {
	var builder strings.Builder
	size := 0
	for i, notice := range notices {
		// Tabs separate notices.
		content := strings.ReplaceAll(notice.Content, "\t", " ")
		sizeIncrease := len(notice.Class) + len(content) + 1
		if i != 0 {
			sizeIncrease += 1
		}
		if size+sizeIncrease > maxNoticesSize {
			c.Logger.Warn().Interface("Notices", notices).Msg("Notices too big for cookie")
			break
		}

		if i != 0 {
			builder.WriteString("\t")
		}
		builder.WriteString(notice.Class)
		builder.WriteString("|")
		builder.WriteString(content)

		size += sizeIncrease
	}
	if builder.Len() == 0 {
		return ""
	}
	return url.QueryEscape(builder.String())
}

// The cookie is not signed, so its content is escaped like any other text
// and unknown classes are dropped.
func deserializeNoticesFromCookie(cookieVal string) []templates.Notice {
	unescaped, err := url.QueryUnescape(cookieVal)
	if err != nil {
		return nil
	}

	var result []templates.Notice
	for _, notice := range strings.Split(unescaped, "\t") {
		class, content, ok := strings.Cut(notice, "|")
		if ok && noticeClasses[class] {
			result = append(result, templates.Notice{
				Class:   class,
				Content: template.HTML(template.HTMLEscapeString(content)),
			})
		}
	}
	return result
}

func storeNoticesInCookieMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		storeNoticesInCookie(c, &res)
		return res
	}
}
