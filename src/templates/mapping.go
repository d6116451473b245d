package templates

import (
	"html/template"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/parsing"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
)

func ArticleToTemplate(a *models.ArticleSummary) ArticleCard {
	card := ArticleCard{
		ID:      a.ID,
		Slug:    a.Slug,
		Title:   a.Title,
		Excerpt: a.Excerpt,

		Category:      string(a.Category),
		CategoryLabel: a.Category.Label(),

		Author:      a.Author,
		Date:        a.Date(),
		CreatedAt:   a.CreatedAt,
		IsPublished: a.IsPublished,
		Tags:        a.Tags,
	}
	if a.Slug != "" {
		card.Url = portalurl.BuildNewsDetail(a.Slug)
	}
	if a.Category != "" {
		card.CategoryUrl = portalurl.BuildCategory(string(a.Category))
	}
	if a.ClubName != "" {
		card.ClubName = models.ClubDisplayName(a.ClubName)
		card.ClubUrl = portalurl.BuildClub(a.ClubName)
	}
	for _, img := range a.Images {
		card.Images = append(card.Images, ImageToTemplate(img))
	}
	if len(card.Images) > 0 {
		card.Image = &card.Images[0]
	}
	return card
}

func ArticlesToTemplate(items []models.ArticleSummary) []ArticleCard {
	cards := make([]ArticleCard, 0, len(items))
	for i := range items {
		cards = append(cards, ArticleToTemplate(&items[i]))
	}
	return cards
}

// AdminArticlesToTemplate is ArticlesToTemplate plus edit and delete links.
func AdminArticlesToTemplate(items []models.ArticleSummary) []ArticleCard {
	cards := ArticlesToTemplate(items)
	for i := range cards {
		cards[i].EditUrl = portalurl.BuildAdminNewsEdit(cards[i].ID)
		cards[i].DeleteUrl = portalurl.BuildAdminNewsDelete(cards[i].ID)
	}
	return cards
}

// ArticleDetailToTemplate includes the article body, sanitized.
func ArticleDetailToTemplate(a *models.Article) Article {
	return Article{
		ArticleCard: ArticleToTemplate(&a.ArticleSummary),
		Content:     template.HTML(parsing.SanitizeArticleHTML(a.Content)),
	}
}

func ImageToTemplate(img models.Image) Image {
	return Image{
		Url:      img.URL,
		PublicID: img.PublicID,
		Caption:  img.Caption,
	}
}

func ClubToTemplate(c *models.Club) Club {
	return Club{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Members:     c.Members,
		Activities:  c.Activities,
		About:       template.HTML(parsing.ParseMarkdown(c.About, parsing.StaticMarkdown)),
		Url:         portalurl.BuildClub(c.Slug),
	}
}

func UserToTemplate(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func CategoryOptions(selected string, includeAll bool) []SelectOption {
	var options []SelectOption
	if includeAll {
		options = append(options, SelectOption{Value: "", Label: "All Categories", Selected: selected == ""})
	}
	for _, c := range models.AllCategories {
		options = append(options, SelectOption{
			Value:    string(c),
			Label:    c.Label(),
			Selected: string(c) == selected,
		})
	}
	return options
}

func ClubOptions(selected string, emptyLabel string) []SelectOption {
	options := []SelectOption{{Value: "", Label: emptyLabel, Selected: selected == ""}}
	for _, c := range models.Clubs {
		options = append(options, SelectOption{
			Value:    c.Slug,
			Label:    c.Name,
			Selected: c.Slug == selected,
		})
	}
	return options
}
