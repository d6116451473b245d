package website

import (
	"strconv"

	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
	"git.dsvv.ac.in/cs/newsportal/src/utils"
)

// How many numbered page links to show at once.
const paginationWindow = 5

// buildPagination links every page through loc, so the other filters survive
// page changes.
func buildPagination(loc filters.Location, p models.Pagination) templates.Pagination {
	current := utils.IntMax(p.Page, 1)
	total := utils.IntMax(p.Pages, current)

	pageUrl := func(page int) string {
		return portalurl.BuildFilterChange(loc, filters.FieldPage, strconv.Itoa(page))
	}

	result := templates.Pagination{
		Current: current,
		Total:   total,
	}
	if current > 1 {
		result.PreviousUrl = pageUrl(current - 1)
	}
	if current < total {
		result.NextUrl = pageUrl(current + 1)
	}

	first := utils.IntClamp(1, current-paginationWindow/2, total-paginationWindow+1)
	for page := first; page <= total && page < first+paginationWindow; page++ {
		result.Pages = append(result.Pages, templates.PageLink{
			Number:  page,
			Url:     pageUrl(page),
			Current: page == current,
		})
	}

	return result
}
