package filters

import (
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Number of articles on one page of the listing.
const ListingPageSize = 12

const (
	categoryPathPrefix = "/category/"
	clubPathPrefix     = "/club/"
	ListingPath        = "/news"
)

// A FilterSet is what the news listing is currently narrowed down to.
// Category and Club can come either from the path (/category/cs, /club/x) or
// from the query string; the path always wins.
type FilterSet struct {
	Category string
	Club     string
	Search   string
	Page     int

	CategoryFromPath bool
	ClubFromPath     bool
}

type Field int

const (
	FieldCategory Field = iota
	FieldClub
	FieldSearch
	FieldPage
)

func (f Field) String() string {
	switch f {
	case FieldCategory:
		return "category"
	case FieldClub:
		return "club"
	case FieldSearch:
		return "search"
	case FieldPage:
		return "page"
	}
	return "unknown"
}

func ParseField(s string) (Field, bool) {
	for _, f := range []Field{FieldCategory, FieldClub, FieldSearch, FieldPage} {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

func pathValue(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	value := strings.Trim(path[len(prefix):], "/")
	return value, value != ""
}

// Parse derives the filters for a location. It never fails: anything
// unparseable falls back to "no filter" and page 1.
func Parse(path string, rawQuery string) FilterSet {
	// ParseQuery keeps every pair it could parse, even when it errors.
	query, _ := url.ParseQuery(rawQuery)

	var f FilterSet
	if category, ok := pathValue(path, categoryPathPrefix); ok {
		f.Category = category
		f.CategoryFromPath = true
	} else {
		f.Category = query.Get("category")
	}
	if club, ok := pathValue(path, clubPathPrefix); ok {
		f.Club = club
		f.ClubFromPath = true
	} else {
		f.Club = query.Get("club")
	}
	f.Search = strings.TrimSpace(query.Get("search"))
	f.Page = parsePage(query.Get("page"))

	return f
}

func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Query returns the true query-string fields: everything except what the
// path already says. Empty fields are left out. Page is always present.
func (f FilterSet) Query() url.Values {
	q := url.Values{}
	if f.Category != "" && !f.CategoryFromPath {
		q.Set("category", f.Category)
	}
	if f.Club != "" && !f.ClubFromPath {
		q.Set("club", f.Club)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	q.Set("page", strconv.Itoa(f.PageOrFirst()))
	return q
}

func (f FilterSet) Encode() string {
	return f.Query().Encode()
}

func (f FilterSet) PageOrFirst() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

// IsFiltered reports whether anything narrows the listing besides the page.
func (f FilterSet) IsFiltered() bool {
	return f.Category != "" || f.Club != "" || f.Search != ""
}

// With returns the filters after changing one field. Every change except an
// explicit page change sends the reader back to page 1. Setting a field to ""
// clears it.
func (f FilterSet) With(field Field, value string) FilterSet {
	switch field {
	case FieldCategory:
		f.Category = value
		f.CategoryFromPath = false
		f.Page = 1
	case FieldClub:
		f.Club = value
		f.ClubFromPath = false
		f.Page = 1
	case FieldSearch:
		f.Search = strings.TrimSpace(value)
		f.Page = 1
	case FieldPage:
		f.Page = parsePage(value)
	}
	return f
}

// A Location is a path plus the filters parsed from it.
type Location struct {
	Path    string
	Filters FilterSet
}

func ParseLocation(path string, rawQuery string) Location {
	if path == "" {
		path = ListingPath
	}
	return Location{
		Path:    path,
		Filters: Parse(path, rawQuery),
	}
}

// With applies a filter change. The path is kept, unless the change replaces
// a value that came from the path, in which case the reader moves to the
// general listing with the other filters carried over in the query string.
func (l Location) With(field Field, value string) Location {
	if l.Path == "" {
		l.Path = ListingPath
	}
	old := l.Filters
	next := l.Filters.With(field, value)

	movedOffPath := (field == FieldCategory && old.CategoryFromPath && value != old.Category) ||
		(field == FieldClub && old.ClubFromPath && value != old.Club)
	if !movedOffPath {
		// Leaving a path-derived value unchanged keeps it path-derived.
		next.CategoryFromPath = old.CategoryFromPath && next.Category == old.Category
		next.ClubFromPath = old.ClubFromPath && next.Club == old.Club
		return Location{Path: l.Path, Filters: next}
	}

	next.CategoryFromPath = false
	next.ClubFromPath = false
	return Location{Path: ListingPath, Filters: next}
}

func (l Location) String() string {
	if q := l.Filters.Encode(); q != "" {
		return l.Path + "?" + q
	}
	return l.Path
}

// Synchronizer keeps one listing's filters and results in step: every
// navigation or filter change recomputes the filters and asks for a refetch.
type Synchronizer struct {
	mu      sync.Mutex
	current Location
	refetch func(FilterSet)
}

func NewSynchronizer(refetch func(FilterSet)) *Synchronizer {
	return &Synchronizer{refetch: refetch}
}

// Navigate is called when the reader arrives at a location.
func (s *Synchronizer) Navigate(path string, rawQuery string) Location {
	loc := ParseLocation(path, rawQuery)
	s.mu.Lock()
	s.current = loc
	s.mu.Unlock()

	s.refetch(loc.Filters)
	return loc
}

// Set changes one filter and returns the location to show in the address bar.
func (s *Synchronizer) Set(field Field, value string) Location {
	s.mu.Lock()
	loc := s.current.With(field, value)
	s.current = loc
	s.mu.Unlock()

	s.refetch(loc.Filters)
	return loc
}

func (s *Synchronizer) Current() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
