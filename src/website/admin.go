package website

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/editor"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/templates"
)

// Largest multipart body the editor form may post, uploads included.
const MaxUploadBytes = 32 * 1024 * 1024

const (
	ListFailedMessage   = "Could not load news. Please try again."
	UploadFailedMessage = "Error uploading images"
	NoFilesMessage      = "Please choose at least one image to upload."
)

var dashboardTabs = []struct {
	Name  string
	Label string
}{
	{portalurl.TabDashboard, "Dashboard"},
	{portalurl.TabNews, "Manage News"},
	{portalurl.TabMedia, "Media Library"},
}

type DashboardTemplateData struct {
	templates.BaseData

	Tab    string
	Tabs   []templates.DashboardTab
	Stats  templates.DashboardStats
	News   []templates.ArticleCard
	Images []templates.Image

	NewUrl      string
	NewsTabUrl  string
	MediaTabUrl string
}

func AdminDashboard(c *RequestContext) ResponseData {
	var res ResponseData

	tab := c.Req.URL.Query().Get("tab")
	switch tab {
	case portalurl.TabNews, portalurl.TabMedia:
	default:
		tab = portalurl.TabDashboard
	}

	// Confirms the token is still good. A 401 here logs the admin out.
	user, err := c.API.Me(c)
	if err != nil {
		if errors.Is(err, newsapi.ErrUnauthorized) {
			return c.Redirect(portalurl.BuildAdminLogin(), http.StatusSeeOther)
		}
		res.Errors = append(res.Errors, oops.New(err, "failed to fetch current user"))
	} else {
		c.CurrentUser = user
	}

	baseData := getBaseData(c, "Admin Dashboard", nil)

	ed := editor.New(c.API)
	if err := ed.Refetch(c); err != nil {
		res.Errors = append(res.Errors, err)
		baseData.AddImmediateNotice("failure", ListFailedMessage)
	}
	items := ed.List()
	stats := editor.ComputeStats(items, time.Now())

	var tabs []templates.DashboardTab
	for _, t := range dashboardTabs {
		tabs = append(tabs, templates.DashboardTab{
			Name:   t.Name,
			Label:  t.Label,
			Url:    portalurl.BuildAdminDashboardTab(t.Name),
			Active: t.Name == tab,
		})
	}

	var images []templates.Image
	for _, img := range editor.Images(items) {
		images = append(images, templates.ImageToTemplate(img))
	}

	res.MustWriteTemplate("admin_dashboard.html", DashboardTemplateData{
		BaseData: baseData,

		Tab:  tab,
		Tabs: tabs,
		Stats: templates.DashboardStats{
			Total:     stats.Total,
			Published: stats.Published,
			Drafts:    stats.Drafts,
			ThisMonth: stats.ThisMonth,
		},
		News:   templates.AdminArticlesToTemplate(items),
		Images: images,

		NewUrl:      portalurl.BuildAdminNewsNew(),
		NewsTabUrl:  portalurl.BuildAdminDashboardTab(portalurl.TabNews),
		MediaTabUrl: portalurl.BuildAdminDashboardTab(portalurl.TabMedia),
	}, c.Perf)
	return res
}

type EditorTemplateData struct {
	templates.BaseData
	Form templates.EditorForm
}

func renderEditor(c *RequestContext, status int, ed *editor.Editor, extraErrors ...string) ResponseData {
	id := ed.EditingID()
	draft := ed.Draft()

	images := make([]templates.Image, 0, len(draft.Images))
	for _, img := range draft.Images {
		images = append(images, templates.ImageToTemplate(img))
	}
	imagesJSON, err := json.Marshal(draft.Images)
	if err != nil {
		panic(oops.New(err, "failed to marshal draft images"))
	}

	title := "Add News"
	if id != "" {
		title = "Edit News"
	}

	res := ResponseData{StatusCode: status}
	res.MustWriteTemplate("admin_editor.html", EditorTemplateData{
		BaseData: getBaseData(c, title, nil),
		Form: templates.EditorForm{
			ID:          id,
			Title:       draft.Title,
			Content:     draft.Content,
			Excerpt:     draft.Excerpt,
			Category:    string(draft.Category),
			ClubName:    draft.Club(),
			Author:      draft.Author,
			IsPublished: draft.IsPublished,
			Tags:        draft.Tags,
			Images:      images,
			ImagesJSON:  string(imagesJSON),

			Categories: templates.CategoryOptions(string(draft.Category), false),
			Clubs:      templates.ClubOptions(draft.Club(), "Select Club"),
			Errors:     append(ed.Errors(), extraErrors...),

			SaveUrl:   portalurl.BuildAdminNewsSave(),
			UploadUrl: portalurl.BuildAdminImagesUpload(),
			RemoveUrl: portalurl.BuildAdminImagesRemove(),
			CancelUrl: portalurl.BuildAdminDashboardTab(portalurl.TabNews),
		},
	}, c.Perf)
	return res
}

func AdminNewsNew(c *RequestContext) ResponseData {
	ed := editor.New(c.API)
	ed.OpenNew()
	return renderEditor(c, http.StatusOK, ed)
}

func AdminNewsEdit(c *RequestContext) ResponseData {
	ed := editor.New(c.API)
	article, err := findArticle(c, ed, c.PathParams["id"])
	if err != nil {
		if errors.Is(err, newsapi.ErrNotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusBadGateway, err)
	}

	ed.OpenExisting(article)
	return renderEditor(c, http.StatusOK, ed)
}

// findArticle looks an article up by id. The backend only fetches single
// articles by slug, so the id is found in the admin list first.
func findArticle(c *RequestContext, ed *editor.Editor, id string) (*models.Article, error) {
	if err := ed.Refetch(c); err != nil {
		return nil, err
	}
	for _, item := range ed.List() {
		if item.ID == id {
			article, err := c.API.GetBySlug(c, item.Slug)
			if err != nil {
				return nil, oops.New(err, "failed to fetch article %s", id)
			}
			return article, nil
		}
	}
	return nil, oops.New(newsapi.ErrNotFound, "no article with id %s", id)
}

// draftFromForm rebuilds the editor's draft from a posted form, all but the
// content.
func draftFromForm(form url.Values) (editor.Draft, error) {
	d := editor.NewDraft()
	d.Title = form.Get("title")
	d.Excerpt = strings.TrimSpace(form.Get("excerpt"))
	if category := form.Get("category"); category != "" {
		d.Category = models.Category(category)
	}
	d.SetClub(form.Get("clubName"))
	d.Author = form.Get("author")
	d.IsPublished = form.Get("isPublished") == "true"
	d.Tags = form.Get("tags")

	if raw := form.Get("images"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &d.Images); err != nil {
			return d, oops.New(err, "failed to parse draft images")
		}
	}
	return d, nil
}

// resumeEditor opens an editor on the draft carried by the posted form. The
// content arrives through the form's text area like any other edit.
func resumeEditor(c *RequestContext) (*editor.Editor, error) {
	draft, err := draftFromForm(c.Req.Form)
	if err != nil {
		return nil, err
	}
	ed := editor.New(c.API)
	if err := ed.Resume(c.Req.Form.Get("id"), draft); err != nil {
		return nil, err
	}
	content := editor.NewTextArea("")
	ed.Bind(content)
	content.Set(c.Req.Form.Get("content"))
	return ed, nil
}

func AdminNewsSave(c *RequestContext) ResponseData {
	ed, err := resumeEditor(c)
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "the editor form was malformed"))
	}

	_, notice, err := ed.Submit(c)
	if err != nil {
		var validationErr *editor.ValidationError
		if errors.As(err, &validationErr) {
			return renderEditor(c, http.StatusBadRequest, ed)
		}
		res := renderEditor(c, http.StatusBadGateway, ed)
		res.Errors = append(res.Errors, err)
		return res
	}

	res := c.Redirect(portalurl.BuildAdminDashboardTab(portalurl.TabNews), http.StatusSeeOther)
	res.AddFutureNotice("success", notice)
	return res
}

func AdminImagesUpload(c *RequestContext) ResponseData {
	ed, err := resumeEditor(c)
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "the editor form was malformed"))
	}

	var files []*multipart.FileHeader
	if c.Req.MultipartForm != nil {
		files = c.Req.MultipartForm.File["files"]
	}
	if len(files) == 0 {
		return renderEditor(c, http.StatusBadRequest, ed, NoFilesMessage)
	}

	uploads := make([]newsapi.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return renderEditor(c, http.StatusBadRequest, ed, UploadFailedMessage)
		}
		defer f.Close()
		uploads = append(uploads, newsapi.Upload{Filename: fh.Filename, Body: f})
	}

	if err := ed.Upload(c, uploads); err != nil {
		res := renderEditor(c, http.StatusBadGateway, ed, UploadFailedMessage)
		res.Errors = append(res.Errors, err)
		return res
	}
	return renderEditor(c, http.StatusOK, ed)
}

func AdminImagesRemove(c *RequestContext) ResponseData {
	ed, err := resumeEditor(c)
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "the editor form was malformed"))
	}

	index, err := strconv.Atoi(c.Req.Form.Get("remove"))
	if err != nil {
		return renderEditor(c, http.StatusBadRequest, ed)
	}
	if err := ed.RemoveImage(c, index); err != nil {
		res := renderEditor(c, http.StatusBadRequest, ed)
		res.Errors = append(res.Errors, err)
		return res
	}
	return renderEditor(c, http.StatusOK, ed)
}

type DeleteTemplateData struct {
	templates.BaseData
	Article   templates.ArticleCard
	SubmitUrl string
	CancelUrl string
}

func AdminNewsDeleteConfirm(c *RequestContext) ResponseData {
	id := c.PathParams["id"]
	ed := editor.New(c.API)
	if err := ed.Refetch(c); err != nil {
		return c.ErrorResponse(http.StatusBadGateway, err)
	}

	for i, item := range ed.List() {
		if item.ID != id {
			continue
		}
		var res ResponseData
		res.MustWriteTemplate("admin_delete.html", DeleteTemplateData{
			BaseData:  getBaseData(c, "Delete News", nil),
			Article:   templates.ArticleToTemplate(&ed.List()[i]),
			SubmitUrl: portalurl.BuildAdminNewsDelete(id),
			CancelUrl: portalurl.BuildAdminDashboardTab(portalurl.TabNews),
		}, c.Perf)
		return res
	}
	return FourOhFour(c)
}

func AdminNewsDelete(c *RequestContext) ResponseData {
	id := c.PathParams["id"]
	confirmed := c.Req.Form.Get("confirm") == "yes"

	res := c.Redirect(portalurl.BuildAdminDashboardTab(portalurl.TabNews), http.StatusSeeOther)
	notice, err := editor.New(c.API).Delete(c, id, confirmed)
	switch {
	case errors.Is(err, editor.ErrNotConfirmed):
		return c.Redirect(portalurl.BuildAdminNewsDelete(id), http.StatusSeeOther)
	case err != nil:
		res.Errors = append(res.Errors, err)
		res.AddFutureNotice("failure", notice)
	default:
		res.AddFutureNotice("success", notice)
	}
	return res
}
