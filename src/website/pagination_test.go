package website

import (
	"testing"

	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	items := []struct {
		name             string
		page, pages      int
		numbers          []int
		hasPrev, hasNext bool
	}{
		{"single page", 1, 1, []int{1}, false, false},
		{"no results", 1, 0, []int{1}, false, false},
		{"first of many", 1, 9, []int{1, 2, 3, 4, 5}, false, true},
		{"middle", 5, 9, []int{3, 4, 5, 6, 7}, true, true},
		{"near end", 8, 9, []int{5, 6, 7, 8, 9}, true, true},
		{"last", 9, 9, []int{5, 6, 7, 8, 9}, true, false},
		{"few pages", 2, 3, []int{1, 2, 3}, true, true},
	}

	loc := filters.ParseLocation("/news", "category=cs")
	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			p := buildPagination(loc, models.Pagination{Page: item.page, Pages: item.pages, Limit: filters.ListingPageSize})

			var numbers []int
			for _, link := range p.Pages {
				numbers = append(numbers, link.Number)
				assert.Equal(t, link.Number == item.page, link.Current)
			}
			assert.Equal(t, item.numbers, numbers)
			assert.Equal(t, item.hasPrev, p.PreviousUrl != "")
			assert.Equal(t, item.hasNext, p.NextUrl != "")
		})
	}
}

func TestPaginationKeepsFilters(t *testing.T) {
	loc := filters.ParseLocation("/category/cs", "search=fest&page=2")
	p := buildPagination(loc, models.Pagination{Page: 2, Pages: 3})

	assert.Contains(t, p.NextUrl, "/category/cs?")
	assert.Contains(t, p.NextUrl, "page=3")
	assert.Contains(t, p.NextUrl, "search=fest")
	assert.NotContains(t, p.NextUrl, "category=")
	assert.Contains(t, p.PreviousUrl, "page=1")
}
