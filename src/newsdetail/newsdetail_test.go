package newsdetail

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/devapi"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDevResolver(t *testing.T) (*devapi.Store, *Resolver) {
	t.Helper()
	store := devapi.NewStore()
	require.Nil(t, devapi.Seed(store, 30))
	srv := httptest.NewServer(devapi.NewServer(store))
	t.Cleanup(srv.Close)
	return store, NewResolver(newsapi.New(srv.URL+"/api", srv.Client()))
}

func TestResolve(t *testing.T) {
	store, r := newDevResolver(t)
	items, _ := store.List(devapi.ListQuery{Category: "alumni", Limit: 1})
	require.Len(t, items, 1)
	slug := items[0].Slug

	detail, err := r.Resolve(context.Background(), slug)
	require.Nil(t, err)
	assert.Equal(t, slug, detail.Article.Slug)
	assert.NotEmpty(t, detail.Article.Content)

	assert.LessOrEqual(t, len(detail.Related), RelatedLimit)
	assert.NotEmpty(t, detail.Related)
	for _, rel := range detail.Related {
		assert.NotEqual(t, slug, rel.Slug)
		assert.Equal(t, models.CategoryAlumni, rel.Category)
	}
}

func TestResolveNotFound(t *testing.T) {
	_, r := newDevResolver(t)

	_, err := r.Resolve(context.Background(), "no-such-article")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeBackend struct {
	mu         sync.Mutex
	club       string
	related    []models.ArticleSummary
	relatedErr error
	clubNews   []models.ArticleSummary
	clubErr    error
	gates      map[string]chan struct{}
}

func (b *fakeBackend) gate(slug string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gates == nil {
		b.gates = map[string]chan struct{}{}
	}
	g, ok := b.gates[slug]
	if !ok {
		g = make(chan struct{})
		b.gates[slug] = g
	}
	return g
}

func (b *fakeBackend) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	<-b.gate(slug)
	a := &models.Article{Content: "<p>body</p>"}
	a.Slug = slug
	a.Category = models.CategoryCS
	if b.club != "" {
		a.Category = models.CategoryClub
		a.ClubName = b.club
	}
	return a, nil
}

func (b *fakeBackend) ListByCategory(ctx context.Context, category string, limit int) ([]models.ArticleSummary, error) {
	return b.related, b.relatedErr
}

func (b *fakeBackend) ListByClub(ctx context.Context, club string, limit int) ([]models.ArticleSummary, error) {
	return b.clubNews, b.clubErr
}

func relatedSlugs(d Detail) []string {
	var slugs []string
	for _, rel := range d.Related {
		slugs = append(slugs, rel.Slug)
	}
	return slugs
}

func TestRelatedExcludesSelf(t *testing.T) {
	b := &fakeBackend{related: []models.ArticleSummary{
		{Slug: "a"}, {Slug: "self"}, {Slug: "b"}, {Slug: "c"},
	}}
	close(b.gate("self"))

	detail, err := NewResolver(b).Resolve(context.Background(), "self")
	require.Nil(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, relatedSlugs(detail))
}

func TestRelatedCappedAtLimit(t *testing.T) {
	b := &fakeBackend{related: []models.ArticleSummary{
		{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"}, {Slug: "e"},
	}}
	close(b.gate("self"))

	detail, err := NewResolver(b).Resolve(context.Background(), "self")
	require.Nil(t, err)
	assert.Len(t, detail.Related, RelatedLimit)
}

func TestRelatedClubNews(t *testing.T) {
	b := &fakeBackend{
		club:     "udyam-club",
		related:  []models.ArticleSummary{{Slug: "campus-1"}},
		clubNews: []models.ArticleSummary{{Slug: "self"}, {Slug: "udyam-1"}, {Slug: "udyam-2"}},
	}
	close(b.gate("self"))

	detail, err := NewResolver(b).Resolve(context.Background(), "self")
	require.Nil(t, err)
	assert.Equal(t, []string{"udyam-1", "udyam-2"}, relatedSlugs(detail))
}

func TestRelatedClubFallsBackToCategory(t *testing.T) {
	for name, b := range map[string]*fakeBackend{
		"only itself": {clubNews: []models.ArticleSummary{{Slug: "self"}}},
		"club failed": {clubErr: errors.New("timeout")},
	} {
		t.Run(name, func(t *testing.T) {
			b.club = "udyam-club"
			b.related = []models.ArticleSummary{{Slug: "self"}, {Slug: "other-club"}}
			close(b.gate("self"))

			detail, err := NewResolver(b).Resolve(context.Background(), "self")
			require.Nil(t, err)
			assert.Equal(t, []string{"other-club"}, relatedSlugs(detail))
		})
	}
}

func TestResolveClubArticle(t *testing.T) {
	store, r := newDevResolver(t)
	items, _ := store.List(devapi.ListQuery{Category: "club", Limit: 1})
	require.Len(t, items, 1)

	// Each seeded club has a single article, so related news come from the
	// club category at large.
	detail, err := r.Resolve(context.Background(), items[0].Slug)
	require.Nil(t, err)
	assert.NotEmpty(t, detail.Related)
	for _, rel := range detail.Related {
		assert.NotEqual(t, items[0].Slug, rel.Slug)
		assert.Equal(t, models.CategoryClub, rel.Category)
	}
}

func TestRelatedFailureDegrades(t *testing.T) {
	b := &fakeBackend{relatedErr: errors.New("timeout")}
	close(b.gate("self"))

	detail, err := NewResolver(b).Resolve(context.Background(), "self")
	require.Nil(t, err)
	assert.Equal(t, "self", detail.Article.Slug)
	assert.Empty(t, detail.Related)
}

func TestViewDiscardsOldSlug(t *testing.T) {
	b := &fakeBackend{}
	v := NewView(NewResolver(b))

	type loaded struct {
		detail  Detail
		applied bool
	}
	first := make(chan loaded, 1)
	go func() {
		d, applied, _ := v.Load(context.Background(), "old")
		first <- loaded{d, applied}
	}()
	require.Eventually(t, func() bool {
		slug, loading, _, _ := v.State()
		return slug == "old" && loading
	}, time.Second, time.Millisecond)

	second := make(chan loaded, 1)
	go func() {
		d, applied, _ := v.Load(context.Background(), "new")
		second <- loaded{d, applied}
	}()
	require.Eventually(t, func() bool {
		slug, _, detail, _ := v.State()
		return slug == "new" && detail.Article == nil
	}, time.Second, time.Millisecond)

	close(b.gate("new"))
	got := <-second
	assert.True(t, got.applied)
	assert.Equal(t, "new", got.detail.Article.Slug)

	close(b.gate("old"))
	got = <-first
	assert.False(t, got.applied)

	slug, loading, detail, err := v.State()
	assert.Equal(t, "new", slug)
	assert.False(t, loading)
	assert.Nil(t, err)
	assert.Equal(t, "new", detail.Article.Slug)
}

// callGatedBackend holds every GetBySlug call until the test releases it,
// so two calls for the same slug can finish in any order.
type callGatedBackend struct {
	mu    sync.Mutex
	gates []chan struct{}
}

func (b *callGatedBackend) started() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.gates)
}

func (b *callGatedBackend) release(call int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	close(b.gates[call])
}

func (b *callGatedBackend) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	g := make(chan struct{})
	b.mu.Lock()
	b.gates = append(b.gates, g)
	b.mu.Unlock()
	<-g
	a := &models.Article{}
	a.Slug = slug
	a.Category = models.CategoryCS
	return a, nil
}

func (b *callGatedBackend) ListByCategory(ctx context.Context, category string, limit int) ([]models.ArticleSummary, error) {
	return nil, nil
}

func (b *callGatedBackend) ListByClub(ctx context.Context, club string, limit int) ([]models.ArticleSummary, error) {
	return nil, nil
}

func TestViewKeepsOnlyLatestLoadOfSameSlug(t *testing.T) {
	b := &callGatedBackend{}
	v := NewView(NewResolver(b))

	applied := make([]chan bool, 3)
	for i, slug := range []string{"a", "b", "a"} {
		applied[i] = make(chan bool, 1)
		go func() {
			_, ok, _ := v.Load(context.Background(), slug)
			applied[i] <- ok
		}()
		require.Eventually(t, func() bool { return b.started() == i+1 }, time.Second, time.Millisecond)
	}

	// The first request for "a" answers while the second one is in flight.
	b.release(0)
	assert.False(t, <-applied[0])
	slug, loading, detail, _ := v.State()
	assert.Equal(t, "a", slug)
	assert.True(t, loading)
	assert.Nil(t, detail.Article)

	b.release(1)
	assert.False(t, <-applied[1])
	_, loading, _, _ = v.State()
	assert.True(t, loading)

	b.release(2)
	assert.True(t, <-applied[2])
	slug, loading, detail, err := v.State()
	assert.Equal(t, "a", slug)
	assert.False(t, loading)
	assert.Nil(t, err)
	assert.Equal(t, "a", detail.Article.Slug)
}
