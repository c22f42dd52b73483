package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

var errNoAlbum = models.NewUserError(models.ErrNotFound, "no album found for this customer")

type AlbumWorkflowServicer interface {
	GetCustomerAlbum(ctx context.Context, customerID uint) (CustomerAlbum, error)
	SetSelection(ctx context.Context, customerID uint, photoIDs []uint) error
	Approve(ctx context.Context, customerID uint) error
}

/*
CustomerAlbum is what a customer sees of their most recent album. Album is
nil when the customer has none, in which case the slices are empty.
*/
type CustomerAlbum struct {
	Album       *models.Album
	Photos      []*models.Photo
	SelectedIDs []uint
	ApprovedAt  *time.Time
}

type AlbumWorkflowServiceConfig struct {
	Notifier Notifier
	Store    stores.Storer
}

type AlbumWorkflowService struct {
	notifier Notifier
	store    stores.Storer
}

func NewAlbumWorkflowService(config AlbumWorkflowServiceConfig) AlbumWorkflowService {
	if config.Notifier == nil {
		config.Notifier = NoopNotifier{}
	}

	return AlbumWorkflowService{
		notifier: config.Notifier,
		store:    config.Store,
	}
}

func (s AlbumWorkflowService) GetCustomerAlbum(ctx context.Context, customerID uint) (CustomerAlbum, error) {
	var (
		err    error
		album  *models.Album
		photos []*models.Photo
	)

	result := CustomerAlbum{
		Photos:      []*models.Photo{},
		SelectedIDs: []uint{},
	}

	if album, err = s.store.GetAlbumByCustomerID(ctx, customerID); err != nil {
		return result, fmt.Errorf("error fetching album for customer %d: %w", customerID, err)
	}

	if album == nil {
		return result, nil
	}

	if photos, err = s.store.GetPhotosByAlbumID(ctx, album.ID); err != nil {
		return result, fmt.Errorf("error fetching photos for album %d: %w", album.ID, err)
	}

	result.Album = album
	result.Photos = photos
	result.ApprovedAt = album.ApprovedAt

	if album.SelectedPhotoIDs != nil {
		result.SelectedIDs = album.SelectedPhotoIDs
	}

	return result, nil
}

/*
SetSelection replaces the selection on the customer's most recent album. Ids
are de-duplicated but not checked against the album's photos.
*/
func (s AlbumWorkflowService) SetSelection(ctx context.Context, customerID uint, photoIDs []uint) error {
	var (
		err   error
		album *models.Album
	)

	if album, err = s.store.GetAlbumByCustomerID(ctx, customerID); err != nil {
		return fmt.Errorf("error fetching album for customer %d: %w", customerID, err)
	}

	if album == nil {
		return errNoAlbum
	}

	if err = s.store.SetAlbumSelection(ctx, album.ID, dedupeIDs(photoIDs)); err != nil {
		return fmt.Errorf("error saving selection for album %d: %w", album.ID, err)
	}

	return nil
}

/*
Approve marks the customer's most recent album approved. Approving again
refreshes the timestamp. The studio notification is best effort.
*/
func (s AlbumWorkflowService) Approve(ctx context.Context, customerID uint) error {
	var (
		err      error
		album    *models.Album
		customer *models.Customer
	)

	if album, err = s.store.GetAlbumByCustomerID(ctx, customerID); err != nil {
		return fmt.Errorf("error fetching album for customer %d: %w", customerID, err)
	}

	if album == nil {
		return errNoAlbum
	}

	if err = s.store.ApproveAlbum(ctx, album.ID); err != nil {
		return fmt.Errorf("error approving album %d: %w", album.ID, err)
	}

	if customer, err = s.store.GetCustomerByID(ctx, customerID); err != nil || customer == nil {
		slog.Error("could not load customer for approval notification", "customerID", customerID, "albumID", album.ID, "error", err)
		return nil
	}

	if err = s.notifier.AlbumApproved(ctx, customer, album); err != nil {
		slog.Error("approval notification failed", "customerID", customerID, "albumID", album.ID, "error", err)
	}

	return nil
}

/*
NormalizePhotoIDs coerces decoded JSON values into photo ids, dropping
anything ParseID rejects.
*/
func NormalizePhotoIDs(values []any) []uint {
	result := make([]uint, 0, len(values))

	for _, v := range values {
		if id, ok := ParseID(v); ok {
			result = append(result, id)
		}
	}

	return dedupeIDs(result)
}

// ParseID accepts whole positive JSON numbers and numeric strings.
func ParseID(v any) (uint, bool) {
	switch value := v.(type) {
	case float64:
		if value >= 1 && value == math.Trunc(value) && value <= math.MaxUint32 {
			return uint(value), true
		}

	case string:
		if id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}

	return 0, false
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
