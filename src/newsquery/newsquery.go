package newsquery

import (
	"context"
	"errors"
	"sync"

	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
)

var ErrSuperseded = errors.New("a newer news query was issued")

// Backend is the part of the news API the queries need. *newsapi.Client
// satisfies it.
type Backend interface {
	ListNews(ctx context.Context, params newsapi.ListParams) (*newsapi.NewsPage, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]models.ArticleSummary, error)
}

type Result struct {
	Items      []models.ArticleSummary
	Pagination models.Pagination
}

// ParamsFor maps listing filters onto backend query parameters. Page and
// limit are always sent; everything else only when set.
func ParamsFor(f filters.FilterSet) newsapi.ListParams {
	return newsapi.ListParams{
		Category: f.Category,
		Club:     f.Club,
		Search:   f.Search,
		Page:     f.PageOrFirst(),
		Limit:    filters.ListingPageSize,
	}
}

// An Executor runs listing queries and holds on to the most recent result.
// Each Fetch is stamped with a generation; only the newest generation may
// replace what is displayed, so a slow old response can never overwrite a
// fast new one.
type Executor struct {
	api Backend

	mu         sync.Mutex
	generation uint64
	current    filters.FilterSet
	loading    bool
	result     Result
}

func NewExecutor(api Backend) *Executor {
	return &Executor{api: api}
}

// Fetch queries the backend for f. On failure the previous result is kept
// and returned alongside the error. If another Fetch was issued while this
// one was in flight, the response is dropped and ErrSuperseded returned.
func (e *Executor) Fetch(ctx context.Context, f filters.FilterSet) (Result, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.current = f
	e.loading = true
	e.mu.Unlock()

	page, err := e.api.ListNews(ctx, ParamsFor(f))

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation || e.current != f {
		logging.ExtractLogger(ctx).Debug().Uint64("generation", gen).Msg("dropping superseded news response")
		return Result{}, ErrSuperseded
	}
	e.loading = false

	if err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("failed to fetch news")
		return e.result, err
	}

	e.result = Result{
		Items:      page.News,
		Pagination: page.Pagination,
	}
	if e.result.Items == nil {
		e.result.Items = []models.ArticleSummary{}
	}
	return e.result, nil
}

func (e *Executor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Current returns the displayed result and the filters of the newest query.
func (e *Executor) Current() (Result, filters.FilterSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.current
}
