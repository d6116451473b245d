package website

import (
	"errors"
	"net/http"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/auth"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

const (
	LoginFailedMessage  = "Login failed. Please try again."
	LoginMissingMessage = "Please enter your email and password."
	LoggedOutMessage    = "You have been logged out."
)

type LoginPageData struct {
	templates.BaseData
	Error     string
	Email     string
	SubmitUrl string
}

func renderLogin(c *RequestContext, status int, email string, errMsg string) ResponseData {
	res := ResponseData{StatusCode: status}
	res.MustWriteTemplate("admin_login.html", LoginPageData{
		BaseData:  getBaseData(c, "Admin Login", nil),
		Error:     errMsg,
		Email:     email,
		SubmitUrl: portalurl.BuildAdminLogin(),
	}, c.Perf)
	return res
}

func LoginPage(c *RequestContext) ResponseData {
	return renderLogin(c, http.StatusOK, "", "")
}

func Login(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	email := strings.TrimSpace(form.Get("email"))
	password := form.Get("password")
	if email == "" || password == "" {
		return renderLogin(c, http.StatusBadRequest, email, LoginMissingMessage)
	}

	// Log in without whatever session the browser had.
	loginRes, err := c.API.WithSession(nil).Login(c, newsapi.Credentials{Email: email, Password: password})
	if err != nil {
		var apiErr *newsapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			msg := apiErr.Message
			if msg == "" {
				msg = LoginFailedMessage
			}
			c.Logger.Info().Str("email", email).Int("status", apiErr.Status).Msg("login rejected")
			return renderLogin(c, http.StatusUnauthorized, email, msg)
		}
		res := renderLogin(c, http.StatusBadGateway, email, LoginFailedMessage)
		res.Errors = append(res.Errors, oops.New(err, "failed to log in"))
		return res
	}

	session := auth.NewSession(loginRes.Token, loginRes.User)
	cookie, err := auth.NewSessionCookie(session)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create session cookie"))
	}

	c.Logger.Info().Str("email", email).Msg("admin logged in")
	res := c.Redirect(portalurl.BuildAdminDashboard(), http.StatusSeeOther)
	res.SetCookie(cookie)
	return res
}

// Logout drops the session cookie, which holds both the token and the user.
func Logout(c *RequestContext) ResponseData {
	res := c.Redirect(portalurl.BuildAdminLogin(), http.StatusSeeOther)
	res.SetCookie(auth.DeleteSessionCookie)
	if c.Session.IsAuthenticated() {
		res.AddFutureNotice("success", LoggedOutMessage)
	}
	return res
}
