package filters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	items := []struct {
		name     string
		path     string
		query    string
		expected FilterSet
	}{
		{"empty", "/news", "", FilterSet{Page: 1}},
		{"all from query", "/news", "category=cs&club=kriti-club&search=fest&page=3",
			FilterSet{Category: "cs", Club: "kriti-club", Search: "fest", Page: 3}},
		{"category path wins", "/category/alumni", "category=cs&page=2",
			FilterSet{Category: "alumni", CategoryFromPath: true, Page: 2}},
		{"club path wins", "/club/seva-club", "club=kriti-club",
			FilterSet{Club: "seva-club", ClubFromPath: true, Page: 1}},
		{"club path keeps query category", "/club/seva-club", "category=club",
			FilterSet{Category: "club", Club: "seva-club", ClubFromPath: true, Page: 1}},
		{"trailing slash", "/category/cs/", "", FilterSet{Category: "cs", CategoryFromPath: true, Page: 1}},
		{"bare prefix is not a filter", "/category/", "category=events", FilterSet{Category: "events", Page: 1}},
		{"non-numeric page", "/news", "page=pizza", FilterSet{Page: 1}},
		{"zero page", "/news", "page=0", FilterSet{Page: 1}},
		{"negative page", "/news", "page=-4", FilterSet{Page: 1}},
		{"partly broken query", "/news", "search=ok&%zz&page=2", FilterSet{Search: "ok", Page: 2}},
		{"search is trimmed", "/news", "search=%20%20lab%20", FilterSet{Search: "lab", Page: 1}},
		{"blank search", "/news", "search=%20%20&page=2", FilterSet{Page: 2}},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			assert.Equal(t, item.expected, Parse(item.path, item.query))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	sets := []FilterSet{
		{Page: 1},
		{Category: "cs", Page: 4},
		{Club: "udyam-club", Search: "startup & pitch", Page: 2},
		{Category: "club", Club: "kriti-club", Search: "ärt", Page: 9},
	}
	for _, f := range sets {
		assert.Equal(t, f, Parse("/news", f.Encode()))
	}
}

func TestEncodeLeavesOutPathFields(t *testing.T) {
	f := Parse("/category/cs", "search=ai")
	assert.Equal(t, "page=1&search=ai", f.Encode())

	f = Parse("/club/seva-club", "category=club")
	q, err := url.ParseQuery(f.Encode())
	require.Nil(t, err)
	assert.Equal(t, url.Values{"category": {"club"}, "page": {"1"}}, q)
}

func TestWithResetsPage(t *testing.T) {
	f := FilterSet{Category: "cs", Search: "lab", Page: 5}

	assert.Equal(t, 1, f.With(FieldCategory, "alumni").Page)
	assert.Equal(t, 1, f.With(FieldClub, "kriti-club").Page)
	assert.Equal(t, 1, f.With(FieldSearch, "hackathon").Page)
	assert.Equal(t, 1, f.With(FieldSearch, "").Page)
	assert.Equal(t, 7, f.With(FieldPage, "7").Page)
	assert.Equal(t, 1, f.With(FieldPage, "nope").Page)

	// The original is untouched.
	assert.Equal(t, 5, f.Page)
}

func TestClearingRemovesKey(t *testing.T) {
	loc := ParseLocation("/news", "category=cs&search=lab&page=2")
	cleared := loc.With(FieldSearch, "")
	assert.Equal(t, "/news?category=cs&page=1", cleared.String())
	cleared = cleared.With(FieldCategory, "")
	assert.Equal(t, "/news?page=1", cleared.String())
}

func TestLocationWith(t *testing.T) {
	t.Run("keeps the path", func(t *testing.T) {
		loc := ParseLocation("/category/cs", "page=3")
		next := loc.With(FieldSearch, "robotics")
		assert.Equal(t, "/category/cs?page=1&search=robotics", next.String())
		assert.True(t, next.Filters.CategoryFromPath)
	})
	t.Run("page change keeps other filters", func(t *testing.T) {
		loc := ParseLocation("/club/kriti-club", "search=art")
		assert.Equal(t, "/club/kriti-club?page=2&search=art", loc.With(FieldPage, "2").String())
	})
	t.Run("changing a path value moves to the listing", func(t *testing.T) {
		loc := ParseLocation("/category/cs", "search=ai&page=2")
		next := loc.With(FieldCategory, "alumni")
		assert.Equal(t, "/news?category=alumni&page=1&search=ai", next.String())
		assert.Equal(t, FilterSet{Category: "alumni", Search: "ai", Page: 1}, Parse(next.Path, next.Filters.Encode()))
	})
	t.Run("clearing a path value moves to the listing", func(t *testing.T) {
		loc := ParseLocation("/club/seva-club", "")
		assert.Equal(t, "/news?page=1", loc.With(FieldClub, "").String())
	})
	t.Run("setting the same path value stays put", func(t *testing.T) {
		loc := ParseLocation("/category/cs", "page=4")
		assert.Equal(t, "/category/cs?page=1", loc.With(FieldCategory, "cs").String())
	})
}

func TestSynchronizer(t *testing.T) {
	var fetched []FilterSet
	s := NewSynchronizer(func(f FilterSet) {
		fetched = append(fetched, f)
	})

	loc := s.Navigate("/category/cs", "page=2")
	assert.Equal(t, 2, loc.Filters.Page)

	loc = s.Set(FieldSearch, "ai")
	assert.Equal(t, "/category/cs?page=1&search=ai", loc.String())

	loc = s.Set(FieldPage, "3")
	assert.Equal(t, "/category/cs?page=3&search=ai", loc.String())
	assert.Equal(t, loc, s.Current())

	require.Len(t, fetched, 3)
	assert.Equal(t, FilterSet{Category: "cs", CategoryFromPath: true, Page: 2}, fetched[0])
	assert.Equal(t, FilterSet{Category: "cs", CategoryFromPath: true, Search: "ai", Page: 1}, fetched[1])
	assert.Equal(t, FilterSet{Category: "cs", CategoryFromPath: true, Search: "ai", Page: 3}, fetched[2])
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("club")
	assert.True(t, ok)
	assert.Equal(t, FieldClub, f)
	_, ok = ParseField("color")
	assert.False(t, ok)
}
