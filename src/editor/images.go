package editor

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"github.com/sqids/sqids-go"
	"golang.org/x/sync/errgroup"
)

const GeneratedImageIDPrefix = "img-"

// ImageIDs makes public ids for images that were added by URL and so never
// got one from the upload endpoint.
type ImageIDs struct {
	Now  func() time.Time
	Rand func() uint64

	encoder *sqids.Sqids
}

func NewImageIDs() *ImageIDs {
	encoder, err := sqids.New(sqids.Options{MinLength: 8})
	if err != nil {
		panic(oops.New(err, "failed to create image id encoder"))
	}
	return &ImageIDs{
		Now:     time.Now,
		Rand:    func() uint64 { return rand.Uint64N(1 << 32) },
		encoder: encoder,
	}
}

func (g *ImageIDs) Next() string {
	id, err := g.encoder.Encode([]uint64{uint64(g.Now().UnixMilli()), g.Rand()})
	if err != nil {
		// Only possible if the blocklist rejects every candidate.
		panic(oops.New(err, "failed to encode image id"))
	}
	return GeneratedImageIDPrefix + id
}

// IsStoredImage reports whether the backend knows about img, i.e. whether
// there is anything to delete when it is removed from a draft.
func IsStoredImage(img models.Image) bool {
	return img.PublicID != "" && !strings.HasPrefix(img.PublicID, GeneratedImageIDPrefix)
}

type Uploader interface {
	UploadImage(ctx context.Context, upload newsapi.Upload) (models.Image, error)
}

// UploadBatch uploads every file concurrently. The result is in the same
// order as uploads no matter which request finishes first. If any upload
// fails, the whole batch fails and nothing is returned.
func UploadBatch(ctx context.Context, api Uploader, uploads []newsapi.Upload) ([]models.Image, error) {
	images := make([]models.Image, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	for i, upload := range uploads {
		g.Go(func() error {
			img, err := api.UploadImage(gctx, upload)
			if err != nil {
				return oops.New(err, "failed to upload %s", upload.Filename)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
