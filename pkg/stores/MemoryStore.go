package stores

import (
	"context"
	"sort"
	"sync"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

/*
MemoryStore is a process-local Storer. It behaves like the SQL backends and
is meant for tests and throwaway demos.
*/
type MemoryStore struct {
	mu sync.RWMutex

	nextID    uint
	customers map[uint]*models.Customer
	albums    map[uint]*models.Album
	photos    map[uint]*models.Photo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: map[uint]*models.Customer{},
		albums:    map[uint]*models.Album{},
		photos:    map[uint]*models.Photo{},
	}
}

func (s *MemoryStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) CreateCustomer(ctx context.Context, username, passwordHash, name string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Username == username {
			return 0, models.ErrConflict
		}
	}

	c := &models.Customer{
		ID:           s.id(),
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now(),
	}

	s.customers[c.ID] = c
	return c.ID, nil
}

func (s *MemoryStore) GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Username == username {
			copied := *c
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *MemoryStore) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]

	if !ok {
		return nil, nil
	}

	copied := *c
	copied.PasswordHash = ""
	return &copied, nil
}

func (s *MemoryStore) GetAllCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(s.customers))

	for _, c := range s.customers {
		customers = append(customers, c)
	}

	sort.Slice(customers, func(i, j int) bool {
		if !customers[i].CreatedAt.Equal(customers[j].CreatedAt) {
			return customers[i].CreatedAt.After(customers[j].CreatedAt)
		}

		return customers[i].ID > customers[j].ID
	})

	albums := make([]*models.Album, 0, len(s.albums))

	for _, a := range s.albums {
		albums = append(albums, copyAlbum(a))
	}

	return summarizeCustomers(customers, albums), nil
}

func (s *MemoryStore) CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &models.Album{
		ID:               s.id(),
		CustomerID:       customerID,
		Name:             name,
		EventDate:        eventDate,
		SelectedPhotoIDs: []uint{},
		CreatedAt:        now(),
	}

	s.albums[a.ID] = a
	return a.ID, nil
}

func (s *MemoryStore) GetAlbumByCustomerID(ctx context.Context, customerID uint) (*models.Album, error) {
	albums, _ := s.GetAlbumsByCustomerID(ctx, customerID)

	if len(albums) == 0 {
		return nil, nil
	}

	return albums[0], nil
}

func (s *MemoryStore) GetAlbumByID(ctx context.Context, albumID uint) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[albumID]

	if !ok {
		return nil, nil
	}

	return copyAlbum(a), nil
}

func (s *MemoryStore) GetAlbumsByCustomerID(ctx context.Context, customerID uint) ([]*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*models.Album{}

	for _, a := range s.albums {
		if a.CustomerID == customerID {
			result = append(result, copyAlbum(a))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return newerAlbum(result[i], result[j])
	})

	return result, nil
}

func (s *MemoryStore) SetAlbumSelection(ctx context.Context, albumID uint, photoIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.albums[albumID]; ok {
		a.SelectedPhotoIDs = append([]uint{}, photoIDs...)
	}

	return nil
}

func (s *MemoryStore) ApproveAlbum(ctx context.Context, albumID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.albums[albumID]; ok {
		t := now()
		a.ApprovedAt = &t
	}

	return nil
}

func (s *MemoryStore) AddPhoto(ctx context.Context, albumID uint, storagePath, filename string, sortOrder int) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[albumID]; !ok {
		return 0, models.NewUserError(models.ErrNotFound, "album not found")
	}

	p := &models.Photo{
		ID:          s.id(),
		AlbumID:     albumID,
		StoragePath: storagePath,
		Filename:    filename,
		SortOrder:   sortOrder,
		CreatedAt:   now(),
	}

	s.photos[p.ID] = p
	return p.ID, nil
}

func (s *MemoryStore) GetPhotosByAlbumID(ctx context.Context, albumID uint) ([]*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*models.Photo{}

	for _, p := range s.photos {
		if p.AlbumID == albumID {
			copied := *p
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}

		return result[i].ID < result[j].ID
	})

	return result, nil
}

func copyAlbum(a *models.Album) *models.Album {
	copied := *a
	copied.SelectedPhotoIDs = append([]uint{}, a.SelectedPhotoIDs...)

	if a.ApprovedAt != nil {
		t := *a.ApprovedAt
		copied.ApprovedAt = &t
	}

	return &copied
}
