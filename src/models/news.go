package models

import "time"

type Category string

const (
	CategoryCS     Category = "cs"
	CategoryAlumni Category = "alumni"
	CategoryClub   Category = "club"
	CategoryCampus Category = "campus"
	CategoryEvents Category = "events"
)

var AllCategories = []Category{
	CategoryCS,
	CategoryAlumni,
	CategoryClub,
	CategoryCampus,
	CategoryEvents,
}

var categoryLabels = map[Category]string{
	CategoryCS:     "CS Department",
	CategoryAlumni: "Alumni Speaks",
	CategoryClub:   "Club Activities",
	CategoryCampus: "Campus News",
	CategoryEvents: "Events",
}

func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Caption  string `json:"caption"`
}

type ArticleSummary struct {
	ID          string    `json:"_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Category    Category  `json:"category"`
	ClubName    string    `json:"clubName,omitempty"`
	Author      string    `json:"author"`
	IsPublished bool      `json:"isPublished"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	Images      []Image   `json:"images"`
	Tags        []string  `json:"tags"`
}

type Article struct {
	ArticleSummary
	Content string `json:"content"`
}

// Date is the date shown to readers: publication if there is one, otherwise creation.
func (a *ArticleSummary) Date() time.Time {
	if !a.PublishedAt.IsZero() {
		return a.PublishedAt
	}
	return a.CreatedAt
}

func (a *ArticleSummary) CoverImage() *Image {
	if len(a.Images) == 0 {
		return nil
	}
	return &a.Images[0]
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
