package newsquery

import (
	"context"
	"sync"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/jobs"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

const FeaturedLimit = 6

// Featured holds the newest articles for the strip at the top of the home
// page. It is refreshed in the background rather than on every request.
type Featured struct {
	api Backend

	mu        sync.RWMutex
	items     []models.ArticleSummary
	refreshed time.Time
}

func NewFeatured(api Backend) *Featured {
	return &Featured{api: api}
}

func (f *Featured) Refresh(ctx context.Context) error {
	page, err := f.api.ListNews(ctx, newsapi.ListParams{Limit: FeaturedLimit})
	if err != nil {
		return oops.New(err, "failed to refresh featured news")
	}

	items := page.News
	if len(items) > FeaturedLimit {
		items = items[:FeaturedLimit]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.refreshed = time.Now()
	return nil
}

// Items returns the last successfully fetched articles. Stale data is kept
// when a refresh fails.
func (f *Featured) Items() []models.ArticleSummary {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.items
}

func (f *Featured) Refreshed() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.refreshed
}

// StartRefreshing keeps f up to date until the returned job is canceled.
func (f *Featured) StartRefreshing(interval time.Duration) *jobs.Job {
	return jobs.Periodic("featured news", interval, f.Refresh)
}
