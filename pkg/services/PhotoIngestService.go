package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
	"github.com/nfnt/resize"
)

const (
	MaxUploadFiles       = 50
	defaultThumbnailSize = 400
	defaultUploadWorkers = 4
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// PhotoUpload is one file of a multipart upload.
type PhotoUpload struct {
	OriginalName string
	Open         func() (io.ReadCloser, error)
}

type PhotoIngestServicer interface {
	Upload(ctx context.Context, albumID uint, uploads []PhotoUpload) ([]*models.Photo, error)
}

type PhotoIngestServiceConfig struct {
	MaxWorkers    int
	Storage       filestorage.FileStorer
	Store         stores.Storer
	ThumbnailSize uint
}

type PhotoIngestService struct {
	maxWorkers    int
	storage       filestorage.FileStorer
	store         stores.Storer
	thumbnailSize uint
}

func NewPhotoIngestService(config PhotoIngestServiceConfig) PhotoIngestService {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaultUploadWorkers
	}

	if config.ThumbnailSize == 0 {
		config.ThumbnailSize = defaultThumbnailSize
	}

	return PhotoIngestService{
		maxWorkers:    config.MaxWorkers,
		storage:       config.Storage,
		store:         config.Store,
		thumbnailSize: config.ThumbnailSize,
	}
}

/*
Upload stores the bytes of every file, then records one photo per file in
upload order. Sort orders continue from the album's current photo count.
No rows are written unless every file was stored.
*/
func (s PhotoIngestService) Upload(ctx context.Context, albumID uint, uploads []PhotoUpload) ([]*models.Photo, error) {
	var (
		err      error
		album    *models.Album
		existing []*models.Photo
		id       uint
	)

	if len(uploads) == 0 {
		return nil, models.NewUserError(models.ErrValidation, "no files were uploaded")
	}

	if len(uploads) > MaxUploadFiles {
		return nil, models.NewUserError(models.ErrValidation, fmt.Sprintf("at most %d files can be uploaded at once", MaxUploadFiles))
	}

	if album, err = s.store.GetAlbumByID(ctx, albumID); err != nil {
		return nil, fmt.Errorf("error fetching album %d: %w", albumID, err)
	}

	if album == nil {
		return nil, models.NewUserError(models.ErrNotFound, fmt.Sprintf("album %d not found", albumID))
	}

	if !s.storage.Writable() {
		return nil, filestorage.ErrReadOnly
	}

	if existing, err = s.store.GetPhotosByAlbumID(ctx, albumID); err != nil {
		return nil, fmt.Errorf("error counting photos for album %d: %w", albumID, err)
	}

	batch := time.Now().UnixMilli()
	filenames := make([]string, len(uploads))
	errs := make([]error, len(uploads))

	pool := pond.NewPool(s.maxWorkers, pond.WithContext(ctx))

	for index, upload := range uploads {
		filenames[index] = fmt.Sprintf("%d-%d-%s", batch, index, SanitizeFilename(upload.OriginalName))

		pool.Submit(func() {
			errs[index] = s.storeFile(ctx, albumID, filenames[index], upload)
		})
	}

	_ = pool.Stop().Wait()

	for index, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("error storing file '%s': %w", uploads[index].OriginalName, e)
		}
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]*models.Photo, 0, len(uploads))
	sortOrder := len(existing)

	for _, filename := range filenames {
		storagePath := filestorage.PhotoKey(albumID, filename)

		if id, err = s.store.AddPhoto(ctx, albumID, storagePath, filename, sortOrder); err != nil {
			return result, fmt.Errorf("error recording photo '%s': %w", filename, err)
		}

		result = append(result, &models.Photo{
			ID:          id,
			AlbumID:     albumID,
			StoragePath: storagePath,
			Filename:    filename,
			SortOrder:   sortOrder,
		})

		sortOrder++
	}

	slog.Info("photos uploaded", "albumID", albumID, "count", len(result))
	return result, nil
}

func (s PhotoIngestService) storeFile(ctx context.Context, albumID uint, filename string, upload PhotoUpload) error {
	var (
		err error
		src io.ReadCloser
		b   []byte
	)

	if src, err = upload.Open(); err != nil {
		return fmt.Errorf("error opening upload: %w", err)
	}

	defer src.Close()

	if b, err = io.ReadAll(src); err != nil {
		return fmt.Errorf("error reading upload: %w", err)
	}

	if err = s.storage.Put(ctx, filestorage.PhotoKey(albumID, filename), bytes.NewReader(b)); err != nil {
		return err
	}

	if err = s.createThumbnail(ctx, albumID, filename, b); err != nil {
		slog.Warn("photo stored without a thumbnail", "albumID", albumID, "filename", filename, "error", err)
	}

	return nil
}

func (s PhotoIngestService) createThumbnail(ctx context.Context, albumID uint, filename string, original []byte) error {
	var (
		err    error
		img    image.Image
		format string
		buf    bytes.Buffer
	)

	if img, format, err = image.Decode(bytes.NewReader(original)); err != nil {
		return fmt.Errorf("error decoding image: %w", err)
	}

	img = s.resize(img, s.thumbnailSize)

	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}

	if err != nil {
		return fmt.Errorf("error encoding thumbnail: %w", err)
	}

	return s.storage.Put(ctx, filestorage.ThumbnailKey(albumID, filename), &buf)
}

func (s PhotoIngestService) resize(img image.Image, maxSize uint) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width <= maxSize && height <= maxSize {
		return img
	}

	/*
	 * Scale by the longest edge
	 */
	var newWidth, newHeight uint

	if width > height {
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

// SanitizeFilename keeps the base name and replaces unsafe characters.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, ".")

	if base == "" {
		return "photo"
	}

	return base
}
