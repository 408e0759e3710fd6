// Package media stores comic cover images on an external image host.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUnavailable = errors.New("media host not configured")

type Image struct {
	URL      string
	PublicID string
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (Image, error)
	Destroy(ctx context.Context, publicID string) error
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, filename string) (Image, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         c.folder,
		UseFilename:    boolPtr(filename != ""),
		UniqueFilename: boolPtr(true),
	})
	if err != nil {
		return Image{}, fmt.Errorf("cloudinary: upload: %w", err)
	}
	if res.Error.Message != "" {
		return Image{}, fmt.Errorf("cloudinary: upload: %s", res.Error.Message)
	}
	return Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, res.Error.Message)
	}
	return nil
}

// PublicIDFromURL recovers the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/comics/cover.jpg -> comics/cover.
func PublicIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	p := u.Path
	if i := strings.Index(p, "/upload/"); i >= 0 {
		p = p[i+len("/upload/"):]
	} else {
		p = path.Base(p)
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) > 0 && isVersion(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return ""
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func boolPtr(b bool) *bool { return &b }

// Disabled rejects uploads; used when no image host is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string) (Image, error) {
	return Image{}, ErrUnavailable
}

func (Disabled) Destroy(context.Context, string) error { return nil }
