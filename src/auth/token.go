package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const SessionCookieName = "DSVVNewsSession"

const sessionDuration = time.Hour * 24 * 7

var ErrBadCookie = errors.New("session cookie could not be opened")

type cookiePayload struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user,omitempty"`
	CSRFToken string       `json:"csrf"`
}

func cookieKey(secret string) *[32]byte {
	key := blake2b.Sum256([]byte(secret))
	return &key
}

// Seal encrypts the session so the backend token never reaches the browser
// in readable form.
func Seal(secret string, s *Session) (string, error) {
	s.mu.RLock()
	payload := cookiePayload{
		Token:     s.token,
		User:      s.user,
		CSRFToken: s.csrfToken,
	}
	s.mu.RUnlock()

	plain, err := json.Marshal(payload)
	if err != nil {
		return "", oops.New(err, "failed to marshal session")
	}

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", oops.New(err, "failed to read nonce")
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, cookieKey(secret))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func Open(secret string, value string) (*Session, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(sealed) < 24 {
		return nil, ErrBadCookie
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, cookieKey(secret))
	if !ok {
		return nil, ErrBadCookie
	}

	var payload cookiePayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		return nil, oops.New(ErrBadCookie, "failed to unmarshal session: %v", err)
	}
	if payload.Token == "" {
		return nil, ErrBadCookie
	}

	return &Session{
		token:     payload.Token,
		user:      payload.User,
		csrfToken: payload.CSRFToken,
	}, nil
}

func NewSessionCookie(s *Session) (*http.Cookie, error) {
	value, err := Seal(config.Config.Auth.CookieSecret, s)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:  SessionCookieName,
		Value: value,
		Path:  "/",

		Domain:  config.Config.Auth.CookieDomain,
		Expires: time.Now().Add(sessionDuration),

		Secure:   config.Config.Auth.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

var DeleteSessionCookie = &http.Cookie{
	Name:   SessionCookieName,
	Path:   "/",
	Domain: config.Config.Auth.CookieDomain,
	MaxAge: -1,
}

// SessionFromRequest returns the session carried by the request's cookie, or
// nil if there is none or it can't be opened.
func SessionFromRequest(req *http.Request) *Session {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	s, err := Open(config.Config.Auth.CookieSecret, cookie.Value)
	if err != nil {
		return nil
	}
	return s
}
