package website

import (
	"fmt"
	"net/http"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

type notFoundData struct {
	templates.BaseData
	Heading string
	Wanted  string
}

func FourOhFour(c *RequestContext) ResponseData {
	return notFound(c, "Page not found", "")
}

// notFound renders the not-found view with its own heading, as the article
// page does for a missing slug.
func notFound(c *RequestContext, title string, heading string) ResponseData {
	var res ResponseData
	res.StatusCode = http.StatusNotFound

	if c.Req.Header["Accept"] != nil && strings.Contains(c.Req.Header["Accept"][0], "text/html") {
		res.MustWriteTemplate("404.html", notFoundData{
			BaseData: getBaseData(c, title, nil),
			Heading:  heading,
			Wanted:   c.Req.URL.Path,
		}, c.Perf)
	} else {
		res.Write([]byte("Not Found"))
	}
	return res
}

// A SafeError wraps another error with a message that is safe to show to a
// user. The wrapped error is what gets logged.
type SafeError struct {
	Wrapped error
	Msg     string
}

func NewSafeError(err error, msg string, args ...interface{}) error {
	return &SafeError{
		Wrapped: err,
		Msg:     fmt.Sprintf(msg, args...),
	}
}

func (s *SafeError) Error() string {
	return s.Msg
}

func (s *SafeError) Unwrap() error {
	return s.Wrapped
}
