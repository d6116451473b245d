package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

// How many articles the admin list shows.
const ListLimit = 50

const (
	NoticeCreated = "News created successfully!"
	NoticeUpdated = "News updated successfully!"
	NoticeDeleted = "News deleted successfully!"

	DeleteFailedMessage = "Error deleting news"
	saveFailedPrefix    = "Error saving news. "
)

var ErrInvalidState = errors.New("editor is not in a state that allows this")
var ErrNotConfirmed = errors.New("delete was not confirmed")

type State int

const (
	Closed State = iota
	EditingNew
	EditingExisting
	Validating
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case EditingNew:
		return "editing new"
	case EditingExisting:
		return "editing existing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

func (s State) Editing() bool {
	return s == EditingNew || s == EditingExisting
}

type Backend interface {
	Uploader
	ListNews(ctx context.Context, params newsapi.ListParams) (*newsapi.NewsPage, error)
	CreateNews(ctx context.Context, payload newsapi.NewsPayload) (*models.Article, error)
	UpdateNews(ctx context.Context, id string, payload newsapi.NewsPayload) (*models.Article, error)
	DeleteNews(ctx context.Context, id string) error
	DeleteImage(ctx context.Context, publicID string) error
}

// ValidationError carries every client-side validation message for a draft.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid draft: " + strings.Join(e.Messages, "; ")
}

// SaveError is a failed create or update. Message is what the admin sees.
type SaveError struct {
	Message string
	Wrapped error
}

func (e *SaveError) Error() string {
	return e.Message
}

func (e *SaveError) Unwrap() error {
	return e.Wrapped
}

// SaveErrorMessage explains a failed save the way the dashboard shows it:
// backend field messages if there are any, else the backend's message, else
// a pointer to the logs.
func SaveErrorMessage(err error) string {
	var apiErr *newsapi.APIError
	if errors.As(err, &apiErr) {
		if msgs := apiErr.FieldMessages(); len(msgs) > 0 {
			return saveFailedPrefix + "Validation errors: " + strings.Join(msgs, ", ")
		}
		if apiErr.Message != "" {
			return saveFailedPrefix + apiErr.Message
		}
	}
	return saveFailedPrefix + "Please check the logs for details."
}

// An Editor is one admin's article editor and the list of articles it works
// on. Only one draft is open at a time.
type Editor struct {
	api Backend
	ids *ImageIDs

	mu        sync.Mutex
	state     State
	editingID string
	draft     Draft
	errors    []string
	list      []models.ArticleSummary
}

func New(api Backend) *Editor {
	return &Editor{
		api:   api,
		ids:   NewImageIDs(),
		draft: NewDraft(),
	}
}

// WithImageIDs replaces the generator used for images without a public id.
func (e *Editor) WithImageIDs(ids *ImageIDs) *Editor {
	e.ids = ids
	return e
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.draft
	d.Images = append([]models.Image{}, e.draft.Images...)
	return d
}

// EditingID is the id of the article being edited, or "" for a new one.
func (e *Editor) EditingID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editingID
}

// Errors are the messages from the last failed submit.
func (e *Editor) Errors() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors
}

func (e *Editor) OpenNew() error {
	return e.Resume("", NewDraft())
}

func (e *Editor) OpenExisting(a *models.Article) error {
	return e.Resume(a.ID, DraftFromArticle(a))
}

// Resume opens the editor on a draft that already has edits in it, as when
// a form is posted back. An empty id means a new article.
func (e *Editor) Resume(id string, draft Draft) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Closed {
		return ErrInvalidState
	}
	if draft.Images == nil {
		draft.Images = []models.Image{}
	}
	e.draft = draft
	e.editingID = id
	e.errors = nil
	if id == "" {
		e.state = EditingNew
	} else {
		e.state = EditingExisting
	}
	return nil
}

// Close throws the draft away.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
}

func (e *Editor) closeLocked() {
	e.state = Closed
	e.editingID = ""
	e.draft = NewDraft()
	e.errors = nil
}

func (e *Editor) editingState() State {
	if e.editingID == "" {
		return EditingNew
	}
	return EditingExisting
}

// Edit applies change to the open draft.
func (e *Editor) Edit(change func(d *Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Editing() {
		return ErrInvalidState
	}
	change(&e.draft)
	return nil
}

// Bind feeds content changes from a rich text widget into the draft.
func (e *Editor) Bind(rt RichText) {
	rt.OnChange(func(markup string) {
		e.Edit(func(d *Draft) {
			d.SetContent(markup)
		})
	})
}

// Submit validates the draft and creates or updates the article. On success
// the editor closes, the list is refreshed and the notice for the admin is
// returned. On failure the editor stays open with the draft untouched and
// the error is either a *ValidationError or a *SaveError.
func (e *Editor) Submit(ctx context.Context) (*models.Article, string, error) {
	e.mu.Lock()
	if !e.state.Editing() {
		e.mu.Unlock()
		return nil, "", ErrInvalidState
	}
	e.state = Validating
	if msgs := e.draft.Validate(); len(msgs) > 0 {
		e.errors = msgs
		e.state = e.editingState()
		e.mu.Unlock()
		return nil, "", &ValidationError{Messages: msgs}
	}
	e.state = Submitting
	id := e.editingID
	payload := e.draft.Payload(e.ids)
	e.mu.Unlock()

	var article *models.Article
	var err error
	notice := NoticeCreated
	if id != "" {
		notice = NoticeUpdated
		article, err = e.api.UpdateNews(ctx, id, payload)
	} else {
		article, err = e.api.CreateNews(ctx, payload)
	}

	e.mu.Lock()
	if err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Str("id", id).Msg("failed to save news")
		saveErr := &SaveError{Message: SaveErrorMessage(err), Wrapped: err}
		e.errors = []string{saveErr.Message}
		e.state = e.editingState()
		e.mu.Unlock()
		return nil, "", saveErr
	}
	e.closeLocked()
	e.mu.Unlock()

	e.Refetch(ctx)
	return article, notice, nil
}

// Refetch reloads the admin list. A failure keeps the old list.
func (e *Editor) Refetch(ctx context.Context) error {
	page, err := e.api.ListNews(ctx, newsapi.ListParams{Limit: ListLimit})
	if err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("failed to fetch admin news list")
		return oops.New(err, "failed to fetch admin news list")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = page.News
	if e.list == nil {
		e.list = []models.ArticleSummary{}
	}
	return nil
}

func (e *Editor) List() []models.ArticleSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.list
}

// Delete removes an article once the admin has confirmed it. The returned
// string is the notice for the admin, on failure as well as on success.
func (e *Editor) Delete(ctx context.Context, id string, confirmed bool) (string, error) {
	if !confirmed {
		return "", ErrNotConfirmed
	}
	if err := e.api.DeleteNews(ctx, id); err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Str("id", id).Msg("failed to delete news")
		return DeleteFailedMessage, oops.New(err, "failed to delete news %s", id)
	}
	e.Refetch(ctx)
	return NoticeDeleted, nil
}

// Upload adds a batch of images to the draft, in the order given. Nothing is
// added if any of them fails.
func (e *Editor) Upload(ctx context.Context, uploads []newsapi.Upload) error {
	if !e.State().Editing() {
		return ErrInvalidState
	}

	images, err := UploadBatch(ctx, e.api, uploads)
	if err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("failed to upload images")
		return err
	}

	return e.Edit(func(d *Draft) {
		d.Images = append(d.Images, images...)
	})
}

// RemoveImage drops the image at index from the draft, and deletes it from
// the backend if it was stored there. A failed backend delete is logged but
// the image is still removed from the draft.
func (e *Editor) RemoveImage(ctx context.Context, index int) error {
	var removed models.Image
	found := false
	err := e.Edit(func(d *Draft) {
		if index < 0 || index >= len(d.Images) {
			return
		}
		found = true
		removed = d.Images[index]
		d.Images = append(d.Images[:index:index], d.Images[index+1:]...)
	})
	if err != nil {
		return err
	}
	if !found {
		return oops.New(nil, "no image at index %d", index)
	}

	if IsStoredImage(removed) {
		if err := e.api.DeleteImage(ctx, removed.PublicID); err != nil {
			logging.ExtractLogger(ctx).Warn().Err(err).Str("publicID", removed.PublicID).Msg("failed to delete removed image")
		}
	}
	return nil
}
