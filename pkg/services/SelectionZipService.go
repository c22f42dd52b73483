package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

type SelectionZipServicer interface {
	PrepareSelection(ctx context.Context, albumID uint) (SelectionExport, error)
	WriteZip(ctx context.Context, export SelectionExport, w io.Writer) error
}

// SelectionExport is the set of selected photos that resolve to the album.
type SelectionExport struct {
	Album    *models.Album
	Photos   []*models.Photo
	Filename string
}

type SelectionZipServiceConfig struct {
	Storage filestorage.FileStorer
	Store   stores.Storer
}

type SelectionZipService struct {
	storage filestorage.FileStorer
	store   stores.Storer
}

func NewSelectionZipService(config SelectionZipServiceConfig) SelectionZipService {
	return SelectionZipService{
		storage: config.Storage,
		store:   config.Store,
	}
}

func (s SelectionZipService) PrepareSelection(ctx context.Context, albumID uint) (SelectionExport, error) {
	var (
		err    error
		album  *models.Album
		photos []*models.Photo
	)

	if album, err = s.store.GetAlbumByID(ctx, albumID); err != nil {
		return SelectionExport{}, fmt.Errorf("error fetching album %d: %w", albumID, err)
	}

	if album == nil {
		return SelectionExport{}, models.NewUserError(models.ErrNotFound, fmt.Sprintf("album %d not found", albumID))
	}

	if photos, err = s.store.GetPhotosByAlbumID(ctx, albumID); err != nil {
		return SelectionExport{}, fmt.Errorf("error fetching photos for album %d: %w", albumID, err)
	}

	result := SelectionExport{
		Album:    album,
		Photos:   []*models.Photo{},
		Filename: ZipFilename(album),
	}

	for _, photo := range photos {
		if album.IsSelected(photo.ID) {
			result.Photos = append(result.Photos, photo)
		}
	}

	return result, nil
}

/*
WriteZip streams the selected photos into a ZIP archive. Photos whose bytes
are missing from storage are skipped.
*/
func (s SelectionZipService) WriteZip(ctx context.Context, export SelectionExport, w io.Writer) error {
	var (
		err error
	)

	l := slog.With("albumID", export.Album.ID, "zip", export.Filename)
	zipWriter := zip.NewWriter(w)

	addFile := func(photo *models.Photo) error {
		src, err := s.storage.Get(ctx, photo.StoragePath)

		if err != nil {
			return fmt.Errorf("failed to get source file '%s': %w", photo.StoragePath, err)
		}

		defer src.Body.Close()

		dest, err := zipWriter.Create(photo.Filename)

		if err != nil {
			return fmt.Errorf("failed to create file '%s' in zip: %w", photo.Filename, err)
		}

		if _, err := io.Copy(dest, src.Body); err != nil {
			return fmt.Errorf("failed to copy file '%s' to zip: %w", photo.Filename, err)
		}

		return nil
	}

	for _, photo := range export.Photos {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = addFile(photo); err != nil {
			l.Error("failed to add photo to zip", "error", err, "photoID", photo.ID)
			continue
		}
	}

	if err = zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	l.Info("selection zip written", "photos", len(export.Photos))
	return nil
}

func ZipFilename(album *models.Album) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.ReplaceAll(strings.TrimSpace(album.Name), " ", "-"), "_")

	if name == "" {
		name = "album"
	}

	return fmt.Sprintf("%s-%d.zip", name, album.ID)
}
