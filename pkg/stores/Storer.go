package stores

import (
	"context"
	"fmt"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

/*
Storer is the data-access contract shared by every backend. Methods return
nil (and no error) when a single record is not found, and empty slices when
a listing has no rows. Implementations hold no business rules.
*/
type Storer interface {
	CreateCustomer(ctx context.Context, username, passwordHash, name string) (uint, error)
	GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error)
	GetAllCustomers(ctx context.Context) ([]*models.CustomerSummary, error)

	CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error)
	GetAlbumByCustomerID(ctx context.Context, customerID uint) (*models.Album, error)
	GetAlbumByID(ctx context.Context, albumID uint) (*models.Album, error)
	GetAlbumsByCustomerID(ctx context.Context, customerID uint) ([]*models.Album, error)
	SetAlbumSelection(ctx context.Context, albumID uint, photoIDs []uint) error
	ApproveAlbum(ctx context.Context, albumID uint) error

	AddPhoto(ctx context.Context, albumID uint, storagePath, filename string, sortOrder int) (uint, error)
	GetPhotosByAlbumID(ctx context.Context, albumID uint) ([]*models.Photo, error)
}

type Backend string

const (
	BackendSqlite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendNone     Backend = "none"
)

type BackendConfig struct {
	DSN         string
	DatabaseURL string
}

/*
SelectBackend decides which implementation serves the process. A hosted
database URL always wins over the embedded DSN.
*/
func SelectBackend(config BackendConfig) Backend {
	if config.DatabaseURL != "" {
		return BackendPostgres
	}

	if config.DSN != "" {
		return BackendSqlite
	}

	return BackendNone
}

func NewStore(config BackendConfig) (Storer, error) {
	switch SelectBackend(config) {
	case BackendPostgres:
		return NewPostgresStore(PostgresStoreConfig{URL: config.DatabaseURL})

	case BackendSqlite:
		return NewSqliteStore(SqliteStoreConfig{DSN: config.DSN})

	case BackendNone:
		return UnconfiguredStore{}, nil
	}

	return nil, fmt.Errorf("unknown backend")
}
