package newsquery

import (
	"context"

	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"golang.org/x/sync/errgroup"
)

const (
	HomeCSLimit     = 8
	HomeAlumniLimit = 4
	HomeClubLimit   = 6
)

type Home struct {
	CS     []models.ArticleSummary
	Alumni []models.ArticleSummary
	Club   []models.ArticleSummary
}

func emptyHome() Home {
	return Home{
		CS:     []models.ArticleSummary{},
		Alumni: []models.ArticleSummary{},
		Club:   []models.ArticleSummary{},
	}
}

// FetchHome loads the three home page sections concurrently. If any of them
// fails, every section comes back empty; the home page never errors.
func FetchHome(ctx context.Context, api Backend) Home {
	var home Home
	g, gctx := errgroup.WithContext(ctx)

	section := func(dst *[]models.ArticleSummary, category models.Category, limit int) {
		g.Go(func() error {
			items, err := api.ListByCategory(gctx, string(category), limit)
			if err != nil {
				return err
			}
			*dst = items
			return nil
		})
	}
	section(&home.CS, models.CategoryCS, HomeCSLimit)
	section(&home.Alumni, models.CategoryAlumni, HomeAlumniLimit)
	section(&home.Club, models.CategoryClub, HomeClubLimit)

	if err := g.Wait(); err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("failed to fetch home page news")
		return emptyHome()
	}

	if home.CS == nil {
		home.CS = []models.ArticleSummary{}
	}
	if home.Alumni == nil {
		home.Alumni = []models.ArticleSummary{}
	}
	if home.Club == nil {
		home.Club = []models.ArticleSummary{}
	}
	return home
}
