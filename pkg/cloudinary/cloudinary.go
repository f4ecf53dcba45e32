package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Kind is the Cloudinary resource type of an upload.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Client uploads post media and avatars, and removes them again.
type Client interface {
	Upload(ctx context.Context, file io.Reader, kind Kind, folder, publicID string) (*UploadResult, error)
	DeleteByURL(ctx context.Context, url string) error
}

type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PublicID     string `json:"public_id"`
}

// Optimized delivery params
const (
	ImageWidth = 1080
	ThumbWidth = 200
	VideoWidth = 1280
)

const (
	imageEager = "q_auto,f_auto,w_1080,c_limit"
	videoEager = "q_auto:low,f_auto,w_1280"
)

var eagerAsyncFalse = false

var ErrNotCloudinaryURL = errors.New("not a cloudinary delivery url")

// BuildOptimizedImageURL returns a delivery URL with auto quality/format at the given width.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

// VideoPosterURL is the first frame of a video as jpg.
func VideoPosterURL(cloudName, publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/video/upload/so_0/%s.jpg", cloudName, publicID)
}

// PublicIDFromURL recovers "<folder>/<id>" and the resource kind from a secure delivery URL:
// https://res.cloudinary.com/<cloud>/<kind>/upload/[<transformations>/][v123/]<folder>/<id>.<ext>
func PublicIDFromURL(url string) (string, Kind, error) {
	_, rest, ok := strings.Cut(url, "res.cloudinary.com/")
	if !ok {
		return "", "", ErrNotCloudinaryURL
	}
	parts := strings.Split(rest, "/")
	// cloud, kind, "upload", ...
	if len(parts) < 4 || parts[2] != "upload" {
		return "", "", ErrNotCloudinaryURL
	}
	kind := Kind(parts[1])
	segs := parts[3:]
	for i, s := range segs {
		if len(s) > 1 && s[0] == 'v' && isDigits(s[1:]) {
			segs = segs[i+1:]
			break
		}
	}
	if len(segs) == 0 {
		return "", "", ErrNotCloudinaryURL
	}
	id := strings.Join(segs, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	return id, kind, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

func (c *clientImpl) Upload(ctx context.Context, file io.Reader, kind Kind, folder, publicID string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		EagerAsync: &eagerAsyncFalse,
	}
	if kind == KindVideo {
		params.ResourceType = "video"
		params.Eager = videoEager
	} else {
		params.Eager = imageEager
	}
	result, err := c.uploader.Upload(ctx, file, params)
	if err != nil {
		return nil, err
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	out := &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}
	if len(result.Eager) > 0 {
		out.ThumbnailURL = result.Eager[0].SecureURL
	}
	if out.ThumbnailURL == "" {
		if kind == KindVideo {
			out.ThumbnailURL = VideoPosterURL(c.cloudName, result.PublicID)
		} else {
			out.ThumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
		}
	}
	return out, nil
}

func (c *clientImpl) DeleteByURL(ctx context.Context, url string) error {
	publicID, kind, err := PublicIDFromURL(url)
	if err != nil {
		return err
	}
	_, err = c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: string(kind)})
	return err
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		uploader:  up,
	}, nil
}
