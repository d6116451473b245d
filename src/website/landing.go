package website

import (
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsquery"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

type LandingTemplateData struct {
	templates.BaseData

	Featured []templates.ArticleCard
	CS       []templates.ArticleCard
	Alumni   []templates.ArticleCard
	Club     []templates.ArticleCard
	Clubs    []templates.Club

	CSUrl       string
	AlumniUrl   string
	ClubNewsUrl string
	ClubsUrl    string
}

func Index(c *RequestContext) ResponseData {
	home := newsquery.FetchHome(c, c.API)

	var featured []models.ArticleSummary
	if c.Featured != nil {
		featured = c.Featured.Items()
	}

	clubs := make([]templates.Club, 0, len(models.Clubs))
	for i := range models.Clubs {
		clubs = append(clubs, templates.ClubToTemplate(&models.Clubs[i]))
	}

	var res ResponseData
	res.MustWriteTemplate("home.html", LandingTemplateData{
		BaseData: getBaseData(c, "", nil),

		Featured: templates.ArticlesToTemplate(featured),
		CS:       templates.ArticlesToTemplate(home.CS),
		Alumni:   templates.ArticlesToTemplate(home.Alumni),
		Club:     templates.ArticlesToTemplate(home.Club),
		Clubs:    clubs,

		CSUrl:       portalurl.BuildCategory(string(models.CategoryCS)),
		AlumniUrl:   portalurl.BuildCategory(string(models.CategoryAlumni)),
		ClubNewsUrl: portalurl.BuildCategory(string(models.CategoryClub)),
		ClubsUrl:    portalurl.BuildClubs(),
	}, c.Perf)
	return res
}

func Health(c *RequestContext) ResponseData {
	var res ResponseData
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.Write([]byte("ok\n"))
	return res
}
