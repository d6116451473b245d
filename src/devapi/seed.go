package devapi

import (
	"fmt"
	"strings"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	lorem "github.com/HandmadeNetwork/golorem"
)

const (
	DevAdminEmail    = "admin@dsvv.ac.in"
	DevAdminPassword = "dsvv-admin"
)

// Seed fills the store with an admin account and numArticles articles spread
// over every category, the newest first. Every fifth article is a draft.
func Seed(store *Store, numArticles int) error {
	if _, err := store.AddUser("CS Department", DevAdminEmail, DevAdminPassword, "admin"); err != nil {
		return err
	}

	now := store.now()
	for i := 0; i < numArticles; i++ {
		category := models.AllCategories[i%len(models.AllCategories)]
		var clubName string
		if category == models.CategoryClub {
			clubName = models.Clubs[(i/len(models.AllCategories))%len(models.Clubs)].Slug
		}

		var content strings.Builder
		for p := 0; p < 3; p++ {
			content.WriteString("<p>")
			content.WriteString(lorem.Paragraph(2, 4))
			content.WriteString("</p>")
		}

		title := strings.TrimSuffix(lorem.Sentence(4, 8), ".")
		created := now.Add(-time.Duration(i) * 26 * time.Hour)
		a := models.Article{Content: content.String()}
		a.Title = title
		a.Excerpt = lorem.Sentence(12, 20)
		a.Category = category
		a.ClubName = clubName
		a.Author = "CS Department"
		a.IsPublished = i%5 != 4
		a.CreatedAt = created
		if a.IsPublished {
			a.PublishedAt = created
		}
		a.Tags = []string{lorem.Word(4, 8), lorem.Word(4, 8)}
		a.Images = []models.Image{{
			URL:      fmt.Sprintf("https://picsum.photos/seed/dsvv-%d/800/450", i),
			PublicID: fmt.Sprintf("seed/%d", i),
		}}
		store.Create(a)
	}
	return nil
}
