package stores

import (
	"context"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

var errNotConfigured = models.NewUserError(models.ErrNotConfigured, "no database is configured")

/*
UnconfiguredStore serves processes started without any database settings.
Reads come back empty so public pages keep working; writes fail.
*/
type UnconfiguredStore struct{}

func (UnconfiguredStore) CreateCustomer(ctx context.Context, username, passwordHash, name string) (uint, error) {
	return 0, errNotConfigured
}

func (UnconfiguredStore) GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error) {
	return nil, nil
}

func (UnconfiguredStore) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	return nil, nil
}

func (UnconfiguredStore) GetAllCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	return []*models.CustomerSummary{}, nil
}

func (UnconfiguredStore) CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error) {
	return 0, errNotConfigured
}

func (UnconfiguredStore) GetAlbumByCustomerID(ctx context.Context, customerID uint) (*models.Album, error) {
	return nil, nil
}

func (UnconfiguredStore) GetAlbumByID(ctx context.Context, albumID uint) (*models.Album, error) {
	return nil, nil
}

func (UnconfiguredStore) GetAlbumsByCustomerID(ctx context.Context, customerID uint) ([]*models.Album, error) {
	return []*models.Album{}, nil
}

func (UnconfiguredStore) SetAlbumSelection(ctx context.Context, albumID uint, photoIDs []uint) error {
	return errNotConfigured
}

func (UnconfiguredStore) ApproveAlbum(ctx context.Context, albumID uint) error {
	return errNotConfigured
}

func (UnconfiguredStore) AddPhoto(ctx context.Context, albumID uint, storagePath, filename string, sortOrder int) (uint, error) {
	return 0, errNotConfigured
}

func (UnconfiguredStore) GetPhotosByAlbumID(ctx context.Context, albumID uint) ([]*models.Photo, error) {
	return []*models.Photo{}, nil
}
