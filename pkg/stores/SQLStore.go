package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/rfberaldo/sqlz"
)

const queryTimeout = time.Second * 5

type dialect struct {
	isUniqueViolation func(err error) bool
}

/*
SQLStore implements Storer on top of any relational database reachable
through sqlz. The embedded and hosted backends differ only in their dialect.
*/
type SQLStore struct {
	db      *sqlz.DB
	dialect dialect
}

type albumRow struct {
	ID               uint       `db:"id"`
	CustomerID       uint       `db:"customer_id"`
	Name             string     `db:"name"`
	EventDate        string     `db:"event_date"`
	SelectedPhotoIDs string     `db:"selected_photo_ids"`
	ApprovedAt       *time.Time `db:"approved_at"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (r albumRow) toModel() *models.Album {
	return &models.Album{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		Name:             r.Name,
		EventDate:        r.EventDate,
		SelectedPhotoIDs: decodeSelection(r.SelectedPhotoIDs),
		ApprovedAt:       r.ApprovedAt,
		CreatedAt:        r.CreatedAt,
	}
}

const albumColumns = `
   a.id
   , a.customer_id
   , COALESCE(a.name, '') AS name
   , COALESCE(a.event_date, '') AS event_date
   , COALESCE(a.selected_photo_ids, '[]') AS selected_photo_ids
   , a.approved_at
   , a.created_at
`

func (s SQLStore) CreateCustomer(ctx context.Context, username, passwordHash, name string) (uint, error) {
	var (
		err error
		id  uint
	)

	sql := `
INSERT INTO customers (
   username
   , password_hash
   , name
   , created_at
) VALUES (:username, :password_hash, :name, :created_at)
RETURNING id
`

	args := map[string]any{
		"username":      username,
		"password_hash": passwordHash,
		"name":          name,
		"created_at":    now(),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, &id, sql, args); err != nil {
		return 0, s.wrap(fmt.Sprintf("error inserting customer '%s'", username), err)
	}

	return id, nil
}

func (s SQLStore) GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error) {
	var (
		err error
	)

	result := &models.Customer{}

	sql := `
SELECT
   c.id
   , c.username
   , c.password_hash
   , COALESCE(c.name, '') AS name
   , c.created_at
FROM customers AS c
WHERE 1=1
   AND c.username=:username
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, map[string]any{"username": username}); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, nil
		}

		return nil, s.wrap(fmt.Sprintf("error querying for customer by username '%s'", username), err)
	}

	return result, nil
}

func (s SQLStore) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	var (
		err error
	)

	result := &models.Customer{}

	sql := `
SELECT
   c.id
   , c.username
   , COALESCE(c.name, '') AS name
   , c.created_at
FROM customers AS c
WHERE 1=1
   AND c.id=:id
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, map[string]any{"id": id}); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, nil
		}

		return nil, s.wrap(fmt.Sprintf("error querying for customer %d", id), err)
	}

	return result, nil
}

func (s SQLStore) GetAllCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	var (
		err       error
		customers []*models.Customer
		rows      []albumRow
	)

	sql := `
SELECT
   c.id
   , c.username
   , COALESCE(c.name, '') AS name
   , c.created_at
FROM customers AS c
ORDER BY c.created_at DESC, c.id DESC
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.Query(ctx, &customers, sql); err != nil {
		return nil, s.wrap("error querying for all customers", err)
	}

	sql = `SELECT ` + albumColumns + ` FROM albums AS a`

	if err = s.db.Query(ctx, &rows, sql); err != nil {
		return nil, s.wrap("error querying albums for customer summary", err)
	}

	albums := make([]*models.Album, 0, len(rows))

	for _, row := range rows {
		albums = append(albums, row.toModel())
	}

	return summarizeCustomers(customers, albums), nil
}

func (s SQLStore) CreateAlbum(ctx context.Context, customerID uint, name, eventDate string) (uint, error) {
	var (
		err error
		id  uint
	)

	sql := `
INSERT INTO albums (
   customer_id
   , name
   , event_date
   , created_at
) VALUES (:customer_id, :name, :event_date, :created_at)
RETURNING id
`

	args := map[string]any{
		"customer_id": customerID,
		"name":        name,
		"event_date":  eventDate,
		"created_at":  now(),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, &id, sql, args); err != nil {
		return 0, s.wrap(fmt.Sprintf("error inserting album for customer %d", customerID), err)
	}

	return id, nil
}

func (s SQLStore) GetAlbumByCustomerID(ctx context.Context, customerID uint) (*models.Album, error) {
	var (
		err error
		row albumRow
	)

	sql := `
SELECT ` + albumColumns + `
FROM albums AS a
WHERE 1=1
   AND a.customer_id=:customer_id
ORDER BY a.created_at DESC, a.id DESC
LIMIT 1
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, &row, sql, map[string]any{"customer_id": customerID}); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, nil
		}

		return nil, s.wrap(fmt.Sprintf("error querying for latest album of customer %d", customerID), err)
	}

	return row.toModel(), nil
}

func (s SQLStore) GetAlbumByID(ctx context.Context, albumID uint) (*models.Album, error) {
	var (
		err error
		row albumRow
	)

	sql := `
SELECT ` + albumColumns + `
FROM albums AS a
WHERE 1=1
   AND a.id=:album_id
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, &row, sql, map[string]any{"album_id": albumID}); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, nil
		}

		return nil, s.wrap(fmt.Sprintf("error querying for album %d", albumID), err)
	}

	return row.toModel(), nil
}

func (s SQLStore) GetAlbumsByCustomerID(ctx context.Context, customerID uint) ([]*models.Album, error) {
	var (
		err  error
		rows []albumRow
	)

	sql := `
SELECT ` + albumColumns + `
FROM albums AS a
WHERE 1=1
   AND a.customer_id=:customer_id
ORDER BY a.created_at DESC, a.id DESC
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.Query(ctx, &rows, sql, map[string]any{"customer_id": customerID}); err != nil {
		return nil, s.wrap(fmt.Sprintf("error querying for albums by customer ID %d", customerID), err)
	}

	result := make([]*models.Album, 0, len(rows))

	for _, row := range rows {
		result = append(result, row.toModel())
	}

	return result, nil
}

func (s SQLStore) SetAlbumSelection(ctx context.Context, albumID uint, photoIDs []uint) error {
	var (
		err       error
		selection string
	)

	if selection, err = encodeSelection(photoIDs); err != nil {
		return fmt.Errorf("error encoding selection for album %d: %w", albumID, err)
	}

	sql := `
UPDATE albums SET
   selected_photo_ids=:selection
WHERE id=:album_id
`

	args := map[string]any{
		"selection": selection,
		"album_id":  albumID,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, args); err != nil {
		return s.wrap(fmt.Sprintf("error updating selection for album %d", albumID), err)
	}

	return nil
}

func (s SQLStore) ApproveAlbum(ctx context.Context, albumID uint) error {
	var (
		err error
	)

	sql := `
UPDATE albums SET
   approved_at=:approved_at
WHERE id=:album_id
`

	args := map[string]any{
		"approved_at": now(),
		"album_id":    albumID,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, args); err != nil {
		return s.wrap(fmt.Sprintf("error approving album %d", albumID), err)
	}

	return nil
}

func (s SQLStore) AddPhoto(ctx context.Context, albumID uint, storagePath, filename string, sortOrder int) (uint, error) {
	var (
		err error
		id  uint
	)

	sql := `
INSERT INTO photos (
   album_id
   , path
   , filename
   , sort_order
   , created_at
) VALUES (:album_id, :path, :filename, :sort_order, :created_at)
RETURNING id
`

	args := map[string]any{
		"album_id":   albumID,
		"path":       storagePath,
		"filename":   filename,
		"sort_order": sortOrder,
		"created_at": now(),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.QueryRow(ctx, &id, sql, args); err != nil {
		return 0, s.wrap(fmt.Sprintf("error inserting photo '%s' into album %d", filename, albumID), err)
	}

	return id, nil
}

func (s SQLStore) GetPhotosByAlbumID(ctx context.Context, albumID uint) ([]*models.Photo, error) {
	var (
		err error
	)

	result := []*models.Photo{}

	sql := `
SELECT
   p.id
   , p.album_id
   , p.path
   , COALESCE(p.filename, '') AS filename
   , p.sort_order
   , p.created_at
FROM photos AS p
WHERE 1=1
   AND p.album_id=:album_id
ORDER BY p.sort_order, p.id
`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, map[string]any{"album_id": albumID}); err != nil {
		return nil, s.wrap(fmt.Sprintf("error querying for photos in album %d", albumID), err)
	}

	return result, nil
}

func (s SQLStore) wrap(message string, err error) error {
	if s.dialect.isUniqueViolation != nil && s.dialect.isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", message, models.ErrConflict)
	}

	return fmt.Errorf("%s: %w: %w", message, models.ErrBackendUnavailable, err)
}

func now() time.Time {
	return time.Now().UTC()
}
