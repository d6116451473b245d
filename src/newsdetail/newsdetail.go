package newsdetail

import (
	"context"
	"errors"
	"sync"

	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

// How many articles of the same club or category we ask for. The article
// itself is usually among them, so readers tend to see one fewer.
const RelatedLimit = 4

var ErrNotFound = errors.New("article not found")

type Backend interface {
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]models.ArticleSummary, error)
	ListByClub(ctx context.Context, club string, limit int) ([]models.ArticleSummary, error)
}

type Detail struct {
	Article *models.Article
	Related []models.ArticleSummary
}

type Resolver struct {
	api Backend
}

func NewResolver(api Backend) *Resolver {
	return &Resolver{api: api}
}

// Resolve fetches the article for slug and then a few others like it: from
// the same club for club news, otherwise from the same category. Failing to
// fetch related articles is not an error.
func (r *Resolver) Resolve(ctx context.Context, slug string) (Detail, error) {
	if slug == "" {
		return Detail{}, ErrNotFound
	}

	article, err := r.api.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, newsapi.ErrNotFound) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, oops.New(err, "failed to fetch article %s", slug)
	}

	return Detail{
		Article: article,
		Related: r.related(ctx, article),
	}, nil
}

func (r *Resolver) related(ctx context.Context, article *models.Article) []models.ArticleSummary {
	if article.ClubName != "" {
		items, err := r.api.ListByClub(ctx, article.ClubName, RelatedLimit)
		if err != nil {
			logging.ExtractLogger(ctx).Warn().Err(err).Str("slug", article.Slug).Msg("failed to fetch club news")
		} else if related := excludeSelf(items, article.Slug); len(related) > 0 {
			return related
		}
	}

	items, err := r.api.ListByCategory(ctx, string(article.Category), RelatedLimit)
	if err != nil {
		logging.ExtractLogger(ctx).Warn().Err(err).Str("slug", article.Slug).Msg("failed to fetch related news")
		return []models.ArticleSummary{}
	}
	return excludeSelf(items, article.Slug)
}

func excludeSelf(items []models.ArticleSummary, slug string) []models.ArticleSummary {
	related := make([]models.ArticleSummary, 0, len(items))
	for _, item := range items {
		if item.Slug == slug {
			continue
		}
		related = append(related, item)
		if len(related) == RelatedLimit {
			break
		}
	}
	return related
}

// A View is the detail page state for one reader: the slug being shown and
// what has been resolved for it. Loading a new slug clears the old article
// right away, and only the response to the latest Load is kept.
type View struct {
	resolver *Resolver

	mu         sync.Mutex
	generation uint64
	slug       string
	loading    bool
	detail     Detail
	err        error
}

func NewView(resolver *Resolver) *View {
	return &View{resolver: resolver}
}

// Load resolves slug and applies the result unless another Load started in
// the meantime, even one for the same slug. The returned bool is false for
// such a discarded result.
func (v *View) Load(ctx context.Context, slug string) (Detail, bool, error) {
	v.mu.Lock()
	v.generation++
	generation := v.generation
	if slug != v.slug {
		v.detail = Detail{}
		v.err = nil
	}
	v.slug = slug
	v.loading = true
	v.mu.Unlock()

	detail, err := v.resolver.Resolve(ctx, slug)

	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		return Detail{}, false, err
	}
	v.loading = false
	v.detail = detail
	v.err = err
	return detail, true, err
}

// State returns the slug on screen, whether it is still loading, and what was
// resolved for it so far.
func (v *View) State() (string, bool, Detail, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slug, v.loading, v.detail, v.err
}
