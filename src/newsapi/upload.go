package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

// An Upload is one image file headed for the backend's image store.
type Upload struct {
	Filename string
	Body     io.Reader
}

func (c *Client) postMultipart(ctx context.Context, name string, path string, field string, uploads []Upload) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, upload := range uploads {
		part, err := w.CreateFormFile(field, upload.Filename)
		if err != nil {
			return nil, oops.New(err, "failed to create form file")
		}
		if _, err := io.Copy(part, upload.Body); err != nil {
			return nil, oops.New(err, "failed to copy %s into request", upload.Filename)
		}
	}
	if err := w.Close(); err != nil {
		return nil, oops.New(err, "failed to finish multipart body")
	}

	req, err := c.makeRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(ctx, name, req)
}

// UploadImage sends a single file in the "image" field. The backend replies
// with either {"image": {...}} or the image descriptor itself.
func (c *Client) UploadImage(ctx context.Context, upload Upload) (models.Image, error) {
	body, err := c.postMultipart(ctx, "Upload Image", "/upload/image", "image", []Upload{upload})
	if err != nil {
		return models.Image{}, err
	}

	var wrapped struct {
		Image *models.Image `json:"image"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return models.Image{}, oops.New(err, "failed to unmarshal upload response")
	}
	if wrapped.Image != nil {
		return *wrapped.Image, nil
	}

	var image models.Image
	if err := json.Unmarshal(body, &image); err != nil {
		return models.Image{}, oops.New(err, "failed to unmarshal upload response")
	}
	if image.URL == "" {
		return models.Image{}, oops.New(nil, "upload response had no image url")
	}
	return image, nil
}

// UploadImages sends several files in one request, in the "images" field.
func (c *Client) UploadImages(ctx context.Context, uploads []Upload) ([]models.Image, error) {
	body, err := c.postMultipart(ctx, "Upload Images", "/upload/images", "images", uploads)
	if err != nil {
		return nil, err
	}

	var res struct {
		Images []models.Image `json:"images"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, oops.New(err, "failed to unmarshal upload response")
	}
	return res.Images, nil
}

func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	return c.doJSON(ctx, "Delete Image", http.MethodDelete, "/upload/image/"+url.PathEscape(publicID), nil, nil, nil)
}
