package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

/*
FileStorer keeps opaque byte blobs under slash-separated keys. It backs both
photo bytes (albums/{albumId}/{filename}) and the site JSON documents.
*/
type FileStorer interface {
	Put(ctx context.Context, key string, body io.Reader) error
	Get(ctx context.Context, key string) (Object, error)
	Exists(ctx context.Context, key string) (bool, error)
	Writable() bool
}

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

var ErrReadOnly = models.NewUserError(
	models.ErrNotConfigured,
	"file storage is read-only in this environment; configure object storage (AWS_BUCKET) to enable uploads",
)

// CleanKey rejects keys that would escape the storage root.
func CleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")

	if cleaned == "" || cleaned == "." {
		return "", models.NewUserError(models.ErrValidation, fmt.Sprintf("invalid storage key '%s'", key))
	}

	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", models.NewUserError(models.ErrValidation, fmt.Sprintf("invalid storage key '%s'", key))
		}
	}

	return cleaned, nil
}

func PhotoKey(albumID uint, filename string) string {
	return fmt.Sprintf("albums/%d/%s", albumID, filename)
}

func ThumbnailKey(albumID uint, filename string) string {
	return fmt.Sprintf("albums/%d/thumbnails/%s", albumID, filename)
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".json":
		return "application/json"
	case ".zip":
		return "application/zip"
	}

	return "application/octet-stream"
}
