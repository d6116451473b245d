package devapi

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type devUser struct {
	models.User
	PasswordHash []byte
}

type storedImage struct {
	models.Image
	Data        []byte
	ContentType string
}

// Store is the in-memory state of the fake backend.
type Store struct {
	mu       sync.Mutex
	articles []*models.Article
	users    map[string]*devUser
	tokens   map[string]*models.User
	images   map[string]*storedImage
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  map[string]*devUser{},
		tokens: map[string]*models.User{},
		images: map[string]*storedImage{},
		now:    time.Now,
	}
}

func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func (s *Store) AddUser(name, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := &devUser{
		User: models.User{
			ID:    newObjectID(),
			Name:  name,
			Email: strings.ToLower(email),
			Role:  role,
		},
		PasswordHash: hash,
	}
	s.users[u.Email] = u
	user := u.User
	return &user, nil
}

func (s *Store) HasUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[strings.ToLower(email)]
	return ok
}

// Login checks the password and issues a new token.
func (s *Store) Login(email, password string) (string, *models.User, bool) {
	s.mu.Lock()
	u, ok := s.users[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		return "", nil, false
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", nil, false
	}
	return s.IssueToken(&u.User), &u.User, true
}

func (s *Store) IssueToken(user *models.User) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = user
	return token
}

func (s *Store) UserForToken(token string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

// RevokeTokens forgets every issued token, so the next authenticated call gets a 401.
func (s *Store) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]*models.User{}
}

type ListQuery struct {
	Category      string
	Club          string
	Search        string
	Page          int
	Limit         int
	IncludeDrafts bool
}

func (s *Store) List(q ListQuery) ([]models.ArticleSummary, models.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(q.Search)
	var matched []models.ArticleSummary
	for _, a := range s.articles {
		if !a.IsPublished && !q.IncludeDrafts {
			continue
		}
		if q.Category != "" && string(a.Category) != q.Category {
			continue
		}
		if q.Club != "" && a.ClubName != q.Club {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Excerpt), search) &&
			!strings.Contains(strings.ToLower(a.Content), search) {
			continue
		}
		matched = append(matched, a.ArticleSummary)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	pages := (len(matched) + limit - 1) / limit
	pagination := models.Pagination{
		Page:  page,
		Limit: limit,
		Total: len(matched),
		Pages: pages,
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.ArticleSummary{}, pagination
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination
}

func (s *Store) BySlug(slug string) *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			copied := *a
			return &copied
		}
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "news"
	}
	return slug
}

// uniqueSlug must be called with the lock held.
func (s *Store) uniqueSlug(title string, exceptID string) string {
	base := slugify(title)
	slug := base
	for n := 2; ; n++ {
		taken := false
		for _, a := range s.articles {
			if a.Slug == slug && a.ID != exceptID {
				taken = true
				break
			}
		}
		if !taken {
			return slug
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

func (s *Store) Create(a models.Article) *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a.ID = newObjectID()
	a.Slug = s.uniqueSlug(a.Title, "")
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.IsPublished && a.PublishedAt.IsZero() {
		a.PublishedAt = a.CreatedAt
	}
	stored := a
	s.articles = append(s.articles, &stored)
	s.sortLocked()

	copied := stored
	return &copied
}

func (s *Store) Update(id string, a models.Article) *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.articles {
		if existing.ID != id {
			continue
		}
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		a.PublishedAt = existing.PublishedAt
		if a.Title != existing.Title {
			a.Slug = s.uniqueSlug(a.Title, id)
		} else {
			a.Slug = existing.Slug
		}
		if a.IsPublished && a.PublishedAt.IsZero() {
			a.PublishedAt = s.now()
		}
		*existing = a
		copied := *existing
		return &copied
	}
	return nil
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.articles {
		if a.ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) sortLocked() {
	sort.SliceStable(s.articles, func(i, j int) bool {
		return s.articles[i].CreatedAt.After(s.articles[j].CreatedAt)
	})
}

func (s *Store) PutImage(contentType string, data []byte) models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	publicID := "news-portal/" + newObjectID()
	img := &storedImage{
		Image: models.Image{
			PublicID: publicID,
		},
		Data:        data,
		ContentType: contentType,
	}
	s.images[publicID] = img
	return img.Image
}

func (s *Store) Image(publicID string) *storedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.images[publicID]
}

func (s *Store) DeleteImage(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[publicID]; !ok {
		return false
	}
	delete(s.images, publicID)
	return true
}
