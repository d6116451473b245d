package auth

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"sync"

	"git.dsvv.ac.in/cs/newsportal/src/models"
)

const CSRFFieldName = "csrf_token"

// A Session is one browser's sign-in to the news backend. The backend token
// is read once per outgoing request. Only the login flow and the 401 handling
// in the API client change it.
type Session struct {
	mu          sync.RWMutex
	token       string
	user        *models.User
	csrfToken   string
	invalidated bool
}

func NewSession(token string, user *models.User) *Session {
	return &Session{
		token:     token,
		user:      user,
		csrfToken: makeCSRFToken(),
	}
}

func makeCSRFToken() string {
	idBytes := make([]byte, 30)
	_, err := io.ReadFull(rand.Reader, idBytes)
	if err != nil {
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(idBytes)
}

// Token returns the bearer token, or "" if the session is anonymous or has
// been invalidated.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.invalidated {
		return ""
	}
	return s.token
}

func (s *Session) User() *models.User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.invalidated {
		return nil
	}
	return s.user
}

func (s *Session) CSRFToken() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrfToken
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetCredentials stores the result of a successful login.
func (s *Session) SetCredentials(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.invalidated = false
	if s.csrfToken == "" {
		s.csrfToken = makeCSRFToken()
	}
}

// Invalidate drops the credentials after the backend rejected them.
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.invalidated = true
}

func (s *Session) Invalidated() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invalidated
}
