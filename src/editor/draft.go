package editor

import (
	"strings"
	"unicode/utf8"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/parsing"
)

const (
	DefaultAuthor   = "CS Department"
	DefaultCategory = models.CategoryCS

	MinTitleLength   = 5
	MinContentLength = 10
	MaxExcerptLength = 300

	// Length of an excerpt derived from the content, before the ellipsis.
	DerivedExcerptLength = 150
	Ellipsis             = "…"
)

// A Draft is an article as it is being written in the admin editor. Tags are
// kept as the comma-separated text the admin typed.
type Draft struct {
	Title       string
	Content     string
	Excerpt     string
	Category    models.Category
	ClubName    *string
	Author      string
	IsPublished bool
	Tags        string
	Images      []models.Image
}

func NewDraft() Draft {
	return Draft{
		Category: DefaultCategory,
		Author:   DefaultAuthor,
		Images:   []models.Image{},
	}
}

// DraftFromArticle fills a draft for editing an existing article.
func DraftFromArticle(a *models.Article) Draft {
	d := Draft{
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		Category:    a.Category,
		Author:      a.Author,
		IsPublished: a.IsPublished,
		Tags:        strings.Join(a.Tags, ", "),
		Images:      append([]models.Image{}, a.Images...),
	}
	if a.ClubName != "" {
		club := a.ClubName
		d.ClubName = &club
	}
	return d
}

func (d *Draft) SetClub(slug string) {
	if slug == "" {
		d.ClubName = nil
		return
	}
	d.ClubName = &slug
}

func (d *Draft) Club() string {
	if d.ClubName == nil {
		return ""
	}
	return *d.ClubName
}

// SetContent replaces the content and, if the admin hasn't written an
// excerpt yet, derives one from it.
func (d *Draft) SetContent(content string) {
	d.Content = content
	if d.Excerpt == "" {
		d.Excerpt = DeriveExcerpt(content)
	}
}

func DeriveExcerpt(content string) string {
	plain := parsing.StripMarkup(content)
	if utf8.RuneCountInString(plain) < DerivedExcerptLength {
		return plain
	}
	return string([]rune(plain)[:DerivedExcerptLength]) + Ellipsis
}

// Validate returns every problem with the draft, in form order. An empty
// result means the draft can be submitted.
func (d *Draft) Validate() []string {
	var errs []string

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs = append(errs, "Title is required")
	} else if utf8.RuneCountInString(title) < MinTitleLength {
		errs = append(errs, "Title must be at least 5 characters long")
	}

	if strings.TrimSpace(d.Content) == "" || parsing.IsBlankMarkup(d.Content) {
		errs = append(errs, "Content is required")
	} else if utf8.RuneCountInString(parsing.StripMarkup(d.Content)) < MinContentLength {
		errs = append(errs, "Content must be at least 10 characters long")
	}

	excerpt := strings.TrimSpace(d.Excerpt)
	if excerpt == "" {
		errs = append(errs, "Excerpt is required")
	} else if utf8.RuneCountInString(excerpt) > MaxExcerptLength {
		errs = append(errs, "Excerpt cannot exceed 300 characters")
	}

	if d.Category == models.CategoryClub && d.Club() == "" {
		errs = append(errs, "Club must be selected for club category news")
	}

	return errs
}

// SplitTags turns "a, b,,a" into [a b]: trimmed, no empties, first
// occurrence wins.
func SplitTags(s string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// Payload shapes the draft into what the backend accepts. Images without a
// public id get a generated one.
func (d *Draft) Payload(ids *ImageIDs) newsapi.NewsPayload {
	p := newsapi.NewsPayload{
		Title:       strings.TrimSpace(d.Title),
		Content:     strings.TrimSpace(d.Content),
		Excerpt:     strings.TrimSpace(d.Excerpt),
		Category:    d.Category,
		Author:      strings.TrimSpace(d.Author),
		IsPublished: d.IsPublished,
		Tags:        SplitTags(d.Tags),
		Images:      make([]models.Image, 0, len(d.Images)),
	}
	if d.Category == models.CategoryClub && d.Club() != "" {
		p.ClubName = d.Club()
	}
	for _, img := range d.Images {
		if img.PublicID == "" {
			img.PublicID = ids.Next()
		}
		p.Images = append(p.Images, models.Image{
			URL:      img.URL,
			PublicID: img.PublicID,
			Caption:  img.Caption,
		})
	}
	return p
}
