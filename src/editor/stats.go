package editor

import (
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
)

type Stats struct {
	Total     int
	Published int
	Drafts    int
	ThisMonth int
}

// ComputeStats summarizes the admin's article list. "This month" is by
// creation date, in now's location.
func ComputeStats(items []models.ArticleSummary, now time.Time) Stats {
	var s Stats
	year, month, _ := now.Date()
	for _, item := range items {
		s.Total++
		if item.IsPublished {
			s.Published++
		} else {
			s.Drafts++
		}
		y, m, _ := item.CreatedAt.In(now.Location()).Date()
		if y == year && m == month {
			s.ThisMonth++
		}
	}
	return s
}

// Images lists every image attached to any of items, for the media tab.
func Images(items []models.ArticleSummary) []models.Image {
	var images []models.Image
	for _, item := range items {
		images = append(images, item.Images...)
	}
	return images
}
