package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubDirectory(t *testing.T) {
	require.Len(t, Clubs, 11)
	assert.Equal(t, "disha-club", Clubs[0].Slug)
	assert.Equal(t, "seva-club", Clubs[10].Slug)

	seen := map[string]bool{}
	for _, club := range Clubs {
		assert.False(t, seen[club.Slug], "duplicate slug %s", club.Slug)
		seen[club.Slug] = true
		assert.NotEmpty(t, club.Name)
		assert.NotEmpty(t, club.About)
		assert.Len(t, club.Activities, 4, club.Slug)
	}

	assert.Equal(t, "Srijan Shilpi", ClubDisplayName("srijan-shilpi"))
	assert.Equal(t, "robotics club", ClubDisplayName("robotics-club"))
	assert.Nil(t, ClubBySlug("nope"))
}

func TestCategories(t *testing.T) {
	c, ok := ParseCategory("alumni")
	assert.True(t, ok)
	assert.Equal(t, "Alumni Speaks", c.Label())

	_, ok = ParseCategory("sports")
	assert.False(t, ok)
	assert.Equal(t, "sports", Category("sports").Label())
}

func TestArticleDecoding(t *testing.T) {
	var article Article
	err := json.Unmarshal([]byte(`{
		"_id": "66a1",
		"slug": "hackathon-results",
		"title": "Hackathon results",
		"content": "<p>We won</p>",
		"category": "club",
		"clubName": "udyam-club",
		"createdAt": "2024-03-02T10:00:00Z",
		"images": [{"url": "https://cdn.example/a.jpg", "public_id": "news/a"}]
	}`), &article)
	require.Nil(t, err)

	assert.Equal(t, "66a1", article.ID)
	assert.Equal(t, CategoryClub, article.Category)
	assert.Equal(t, "<p>We won</p>", article.Content)
	assert.True(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC).Equal(article.Date()))
	require.NotNil(t, article.CoverImage())
	assert.Equal(t, "news/a", article.CoverImage().PublicID)
}
