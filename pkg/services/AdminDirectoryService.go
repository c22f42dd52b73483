package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adampresley/adamgokit/slices"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

type AdminDirectoryServicer interface {
	CreateCustomer(ctx context.Context, username, password, name string) (uint, error)
	ListCustomers(ctx context.Context) ([]*models.CustomerSummary, error)
	CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error)
	ListAlbums(ctx context.Context, customerID uint) ([]*models.Album, error)
	GetAlbumReview(ctx context.Context, albumID uint) (AlbumReview, error)
}

// AlbumReview is an album with each photo flagged by selection.
type AlbumReview struct {
	Album  *models.Album
	Photos []ReviewPhoto
}

type ReviewPhoto struct {
	*models.Photo
	Selected bool
}

type AdminDirectoryServiceConfig struct {
	Store stores.Storer
}

type AdminDirectoryService struct {
	store stores.Storer
}

func NewAdminDirectoryService(config AdminDirectoryServiceConfig) AdminDirectoryService {
	return AdminDirectoryService{
		store: config.Store,
	}
}

func (s AdminDirectoryService) CreateCustomer(ctx context.Context, username, password, name string) (uint, error) {
	var (
		err  error
		hash string
		id   uint
	)

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	name = strings.TrimSpace(name)

	if username == "" || password == "" {
		return 0, models.NewUserError(models.ErrValidation, "username and password are required")
	}

	if hash, err = identity.HashPassword(password); err != nil {
		return 0, err
	}

	if id, err = s.store.CreateCustomer(ctx, username, hash, name); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return 0, models.NewUserError(models.ErrConflict, fmt.Sprintf("username '%s' already exists", username))
		}

		return 0, fmt.Errorf("error creating customer '%s': %w", username, err)
	}

	return id, nil
}

func (s AdminDirectoryService) ListCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	customers, err := s.store.GetAllCustomers(ctx)

	if err != nil {
		return nil, fmt.Errorf("error listing customers: %w", err)
	}

	return customers, nil
}

func (s AdminDirectoryService) CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error) {
	var (
		err      error
		customer *models.Customer
		id       uint
	)

	name = strings.TrimSpace(name)
	eventDate = strings.TrimSpace(eventDate)

	if customerID == 0 || name == "" {
		return 0, models.NewUserError(models.ErrValidation, "customer_id and name are required")
	}

	if customer, err = s.store.GetCustomerByID(ctx, customerID); err != nil {
		return 0, fmt.Errorf("error fetching customer %d: %w", customerID, err)
	}

	if customer == nil {
		return 0, models.NewUserError(models.ErrNotFound, fmt.Sprintf("customer %d not found", customerID))
	}

	if id, err = s.store.CreateAlbum(ctx, customerID, name, eventDate); err != nil {
		return 0, fmt.Errorf("error creating album for customer %d: %w", customerID, err)
	}

	return id, nil
}

func (s AdminDirectoryService) ListAlbums(ctx context.Context, customerID uint) ([]*models.Album, error) {
	if customerID == 0 {
		return nil, models.NewUserError(models.ErrValidation, "customer_id is required")
	}

	albums, err := s.store.GetAlbumsByCustomerID(ctx, customerID)

	if err != nil {
		return nil, fmt.Errorf("error listing albums for customer %d: %w", customerID, err)
	}

	return albums, nil
}

func (s AdminDirectoryService) GetAlbumReview(ctx context.Context, albumID uint) (AlbumReview, error) {
	var (
		err    error
		album  *models.Album
		photos []*models.Photo
	)

	if album, err = s.store.GetAlbumByID(ctx, albumID); err != nil {
		return AlbumReview{}, fmt.Errorf("error fetching album %d: %w", albumID, err)
	}

	if album == nil {
		return AlbumReview{}, models.NewUserError(models.ErrNotFound, fmt.Sprintf("album %d not found", albumID))
	}

	if photos, err = s.store.GetPhotosByAlbumID(ctx, albumID); err != nil {
		return AlbumReview{}, fmt.Errorf("error fetching photos for album %d: %w", albumID, err)
	}

	return AlbumReview{
		Album: album,
		Photos: slices.Map(photos, func(p *models.Photo, index int) ReviewPhoto {
			return ReviewPhoto{Photo: p, Selected: album.IsSelected(p.ID)}
		}),
	}, nil
}
