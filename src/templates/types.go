package templates

import (
	"html/template"
	"time"
)

type BaseData struct {
	Title         string
	CanonicalLink string
	BodyClasses   []string
	Breadcrumbs   []Breadcrumb
	Notices       []Notice

	CurrentUrl string
	Today      time.Time

	User    *User
	Session *Session

	Header Header
	Footer Footer
}

func (bd *BaseData) AddImmediateNotice(class, content string) {
	bd.Notices = append(bd.Notices, Notice{
		Class:   class,
		Content: template.HTML(template.HTMLEscapeString(content)),
	})
}

type Header struct {
	HomepageUrl    string
	NewsUrl        string
	CategoryLinks  []NavLink
	ClubsUrl       string
	AdminUrl       string
	LogoutUrl      string
	SearchUrl      string
}

type NavLink struct {
	Name string
	Url  string
}

type Footer struct {
	HomepageUrl string
	NewsUrl     string
	ClubsUrl    string
	AdminUrl    string
	Categories  []NavLink
}

// Classes are "success", "failure" and "warn"; see public/portal.css.
type Notice struct {
	Content template.HTML
	Class   string
}

type Session struct {
	CSRFToken string
}

type User struct {
	Name  string
	Email string
	Role  string
}

type Breadcrumb struct {
	Name, Url string
}

type Image struct {
	Url      string
	PublicID string
	Caption  string
}

// ArticleCard is an article as it appears in lists and grids.
type ArticleCard struct {
	ID      string
	Slug    string
	Title   string
	Url     string
	Excerpt string

	Category      string
	CategoryLabel string
	CategoryUrl   string
	ClubName      string
	ClubUrl       string

	Author      string
	Date        time.Time
	CreatedAt   time.Time
	IsPublished bool
	Tags        []string

	Image  *Image
	Images []Image

	// Admin only.
	EditUrl   string
	DeleteUrl string
}

type Article struct {
	ArticleCard
	Content template.HTML
}

type PageLink struct {
	Number  int
	Url     string
	Current bool
}

type Pagination struct {
	Current int
	Total   int

	PreviousUrl string
	NextUrl     string
	Pages       []PageLink
}

type FilterChip struct {
	Label    string
	Value    string
	Class    string
	ClearUrl string
}

type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

type Club struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	Members     string
	Activities  []string
	About       template.HTML
	Url         string
}

type DashboardStats struct {
	Total     int
	Published int
	Drafts    int
	ThisMonth int
}

type DashboardTab struct {
	Name   string
	Label  string
	Url    string
	Active bool
}

// EditorForm is the state of the admin article form.
type EditorForm struct {
	ID          string
	Title       string
	Content     string
	Excerpt     string
	Category    string
	ClubName    string
	Author      string
	IsPublished bool
	Tags        string
	Images      []Image
	ImagesJSON  string

	Categories []SelectOption
	Clubs      []SelectOption
	Errors     []string

	SaveUrl   string
	UploadUrl string
	RemoveUrl string
	CancelUrl string
}
