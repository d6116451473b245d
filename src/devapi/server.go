package devapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxUploadSize = 10 * 1024 * 1024

// Server is a stand-in for the news backend, for local development and tests.
// It speaks the same JSON as the real thing under /api.
type Server struct {
	Store *Store
	mux   *chi.Mux
}

func NewServer(store *Store) *Server {
	s := &Server{Store: store}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)

	mux.Get("/uploads/*", s.serveUpload)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/news", s.listNews)
		r.Get("/news/category/{category}", s.listByCategory)
		r.Get("/news/club/{club}", s.listByClub)
		r.Get("/news/{slug}", s.getBySlug)

		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/me", s.me)
			r.Post("/news", s.createNews)
			r.Put("/news/{id}", s.updateNews)
			r.Delete("/news/{id}", s.deleteNews)
			r.Post("/upload/image", s.uploadImage)
			r.Post("/upload/images", s.uploadImages)
			r.Delete("/upload/image/*", s.deleteImage)
		})
	})

	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("failed to write fake backend response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

type userContextKey struct{}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.Store.UserForToken(bearerToken(r))
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	news, pagination := s.Store.List(ListQuery{
		Category:      q.Get("category"),
		Club:          q.Get("club"),
		Search:        q.Get("search"),
		Page:          intParam(r, "page", 1),
		Limit:         intParam(r, "limit", 10),
		IncludeDrafts: s.Store.UserForToken(bearerToken(r)) != nil,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"news":       news,
		"pagination": pagination,
	})
}

func (s *Server) listByCategory(w http.ResponseWriter, r *http.Request) {
	news, _ := s.Store.List(ListQuery{
		Category: chi.URLParam(r, "category"),
		Limit:    intParam(r, "limit", 10),
	})
	writeJSON(w, http.StatusOK, map[string]any{"news": news})
}

func (s *Server) listByClub(w http.ResponseWriter, r *http.Request) {
	news, _ := s.Store.List(ListQuery{
		Category: string(models.CategoryClub),
		Club:     chi.URLParam(r, "club"),
		Limit:    intParam(r, "limit", 10),
	})
	writeJSON(w, http.StatusOK, map[string]any{"news": news})
}

func (s *Server) getBySlug(w http.ResponseWriter, r *http.Request) {
	slug, _ := url.PathUnescape(chi.URLParam(r, "slug"))
	article := s.Store.BySlug(slug)
	if article == nil {
		writeError(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

type loginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, user, ok := s.Store.Login(req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var errs []fieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, fieldError{Msg: "Name is required", Param: "name"})
	}
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, fieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, fieldError{Msg: "Password must be at least 6 characters", Param: "password"})
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Validation failed", "errors": errs})
		return
	}
	if s.Store.HasUser(req.Email) {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}

	user, err := s.Store.AddUser(req.Name, req.Email, req.Password, "editor")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": s.Store.IssueToken(user), "user": user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(userContextKey{}).(*models.User)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type newsBody struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Excerpt     string          `json:"excerpt"`
	Category    models.Category `json:"category"`
	ClubName    string          `json:"clubName"`
	Author      string          `json:"author"`
	IsPublished bool            `json:"isPublished"`
	Tags        []string        `json:"tags"`
	Images      []models.Image  `json:"images"`
}

func (b newsBody) validate() []fieldError {
	var errs []fieldError
	if len(strings.TrimSpace(b.Title)) < 5 {
		errs = append(errs, fieldError{Msg: "Title must be at least 5 characters", Param: "title"})
	}
	if strings.TrimSpace(b.Content) == "" {
		errs = append(errs, fieldError{Msg: "Content is required", Param: "content"})
	}
	if len([]rune(b.Excerpt)) > 300 {
		errs = append(errs, fieldError{Msg: "Excerpt cannot be more than 300 characters", Param: "excerpt"})
	}
	if _, ok := models.ParseCategory(string(b.Category)); !ok {
		errs = append(errs, fieldError{Msg: "Invalid category", Param: "category"})
	}
	for _, img := range b.Images {
		if img.URL == "" || img.PublicID == "" {
			errs = append(errs, fieldError{Msg: "Images need a url and public_id", Param: "images"})
			break
		}
	}
	return errs
}

func (b newsBody) article() models.Article {
	a := models.Article{Content: b.Content}
	a.Title = b.Title
	a.Excerpt = b.Excerpt
	a.Category = b.Category
	a.ClubName = b.ClubName
	a.Author = b.Author
	a.IsPublished = b.IsPublished
	a.Tags = b.Tags
	a.Images = b.Images
	return a
}

func (s *Server) decodeNews(w http.ResponseWriter, r *http.Request) (newsBody, bool) {
	var body newsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return body, false
	}
	if errs := body.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Validation failed", "errors": errs})
		return body, false
	}
	return body, true
}

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeNews(w, r)
	if !ok {
		return
	}
	created := s.Store.Create(body.article())
	writeJSON(w, http.StatusCreated, map[string]any{"message": "News created successfully", "news": created})
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeNews(w, r)
	if !ok {
		return
	}
	updated := s.Store.Update(chi.URLParam(r, "id"), body.article())
	if updated == nil {
		writeError(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "News updated successfully", "news": updated})
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	if !s.Store.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "News deleted successfully"})
}

func uploadUrl(r *http.Request, publicID string) string {
	return "http://" + r.Host + "/uploads/" + publicID
}

func (s *Server) storeFiles(w http.ResponseWriter, r *http.Request, field string) ([]models.Image, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return nil, false
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return nil, false
	}

	var images []models.Image
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid upload")
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid upload")
			return nil, false
		}
		contentType := http.DetectContentType(data)
		if !strings.HasPrefix(contentType, "image/") {
			writeError(w, http.StatusBadRequest, "Only image files are allowed")
			return nil, false
		}
		img := s.Store.PutImage(contentType, data)
		img.URL = uploadUrl(r, img.PublicID)
		images = append(images, img)
	}
	return images, true
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	images, ok := s.storeFiles(w, r, "image")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Image uploaded successfully", "image": images[0]})
}

func (s *Server) uploadImages(w http.ResponseWriter, r *http.Request) {
	images, ok := s.storeFiles(w, r, "images")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Images uploaded successfully", "images": images})
}

func (s *Server) deleteImage(w http.ResponseWriter, r *http.Request) {
	publicID, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || !s.Store.DeleteImage(publicID) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Image deleted successfully"})
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	img := s.Store.Image(chi.URLParam(r, "*"))
	if img == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Write(img.Data)
}
