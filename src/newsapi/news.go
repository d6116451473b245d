package newsapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"git.dsvv.ac.in/cs/newsportal/src/models"
)

// ListParams are the filters for GET /news. Empty fields are left out of the
// query string entirely.
type ListParams struct {
	Category string
	Club     string
	Search   string
	Page     int
	Limit    int
}

func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Club != "" {
		q.Set("club", p.Club)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

type NewsPage struct {
	News       []models.ArticleSummary `json:"news"`
	Pagination models.Pagination       `json:"pagination"`
}

// NewsPayload is the body of create and update requests.
type NewsPayload struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Excerpt     string          `json:"excerpt"`
	Category    models.Category `json:"category"`
	ClubName    string          `json:"clubName,omitempty"`
	Author      string          `json:"author"`
	IsPublished bool            `json:"isPublished"`
	Tags        []string        `json:"tags"`
	Images      []models.Image  `json:"images"`
}

func (c *Client) ListNews(ctx context.Context, params ListParams) (*NewsPage, error) {
	var page NewsPage
	err := c.doJSON(ctx, "List News", http.MethodGet, "/news", params.Query(), nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := c.doJSON(ctx, "Get News By Slug", http.MethodGet, "/news/"+url.PathEscape(slug), nil, nil, &article)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) ListByCategory(ctx context.Context, category string, limit int) ([]models.ArticleSummary, error) {
	var res NewsPage
	err := c.doJSON(ctx, "List News By Category", http.MethodGet, "/news/category/"+url.PathEscape(category), limitQuery(limit), nil, &res)
	if err != nil {
		return nil, err
	}
	return res.News, nil
}

func (c *Client) ListByClub(ctx context.Context, club string, limit int) ([]models.ArticleSummary, error) {
	var res NewsPage
	err := c.doJSON(ctx, "List News By Club", http.MethodGet, "/news/club/"+url.PathEscape(club), limitQuery(limit), nil, &res)
	if err != nil {
		return nil, err
	}
	return res.News, nil
}

// The backend answers mutations either with the article itself or wrapped
// in {"news": ...}.
type articleEnvelope struct {
	News *models.Article `json:"news"`
	models.Article
}

func (e *articleEnvelope) article() *models.Article {
	if e.News != nil {
		return e.News
	}
	return &e.Article
}

func (c *Client) CreateNews(ctx context.Context, payload NewsPayload) (*models.Article, error) {
	var res articleEnvelope
	err := c.doJSON(ctx, "Create News", http.MethodPost, "/news", nil, payload, &res)
	if err != nil {
		return nil, err
	}
	return res.article(), nil
}

func (c *Client) UpdateNews(ctx context.Context, id string, payload NewsPayload) (*models.Article, error) {
	var res articleEnvelope
	err := c.doJSON(ctx, "Update News", http.MethodPut, "/news/"+url.PathEscape(id), nil, payload, &res)
	if err != nil {
		return nil, err
	}
	return res.article(), nil
}

func (c *Client) DeleteNews(ctx context.Context, id string) error {
	return c.doJSON(ctx, "Delete News", http.MethodDelete, "/news/"+url.PathEscape(id), nil, nil, nil)
}
