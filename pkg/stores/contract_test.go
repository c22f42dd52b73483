package stores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
runStoreContract exercises the behavior every backend must share. Each
subtest gets a fresh store from newStore.
*/
func runStoreContract(t *testing.T, newStore func(t *testing.T) Storer) {
	ctx := context.Background()

	t.Run("customers are unique by username", func(t *testing.T) {
		s := newStore(t)

		id, err := s.CreateCustomer(ctx, "bride1", "hash-1", "Ayse")
		require.NoError(t, err)
		assert.NotZero(t, id)

		_, err = s.CreateCustomer(ctx, "bride1", "hash-2", "Someone Else")
		require.ErrorIs(t, err, models.ErrConflict)

		got, err := s.GetCustomerByUsername(ctx, "bride1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "hash-1", got.PasswordHash)
		assert.Equal(t, "Ayse", got.Name)
	})

	t.Run("customer by id omits the password hash", func(t *testing.T) {
		s := newStore(t)

		id, err := s.CreateCustomer(ctx, "groom", "secret-hash", "Can")
		require.NoError(t, err)

		got, err := s.GetCustomerByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "groom", got.Username)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("missing records are nil without error", func(t *testing.T) {
		s := newStore(t)

		c, err := s.GetCustomerByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, c)

		c, err = s.GetCustomerByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, c)

		a, err := s.GetAlbumByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, a)

		a, err = s.GetAlbumByCustomerID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, a)

		albums, err := s.GetAlbumsByCustomerID(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, albums)

		photos, err := s.GetPhotosByAlbumID(ctx, 999)
		require.NoError(t, err)
		assert.NotNil(t, photos)
		assert.Empty(t, photos)
	})

	t.Run("latest album wins and listings are newest first", func(t *testing.T) {
		s := newStore(t)

		customerID, err := s.CreateCustomer(ctx, "bride2", "h", "")
		require.NoError(t, err)

		first, err := s.CreateAlbum(ctx, customerID, "Engagement", "2026-05-01")
		require.NoError(t, err)

		second, err := s.CreateAlbum(ctx, customerID, "Wedding Day", "2026-06-01")
		require.NoError(t, err)

		latest, err := s.GetAlbumByCustomerID(ctx, customerID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second, latest.ID)
		assert.Equal(t, "Wedding Day", latest.Name)
		assert.Equal(t, "2026-06-01", latest.EventDate)
		assert.Empty(t, latest.SelectedPhotoIDs)
		assert.Nil(t, latest.ApprovedAt)

		albums, err := s.GetAlbumsByCustomerID(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, albums, 2)
		assert.Equal(t, second, albums[0].ID)
		assert.Equal(t, first, albums[1].ID)
	})

	t.Run("photos are ordered by sort order then id", func(t *testing.T) {
		s := newStore(t)

		customerID, _ := s.CreateCustomer(ctx, "bride3", "h", "")
		albumID, _ := s.CreateAlbum(ctx, customerID, "Album", "")

		c, err := s.AddPhoto(ctx, albumID, "albums/x/c.jpg", "c.jpg", 2)
		require.NoError(t, err)
		a, err := s.AddPhoto(ctx, albumID, "albums/x/a.jpg", "a.jpg", 0)
		require.NoError(t, err)
		b1, err := s.AddPhoto(ctx, albumID, "albums/x/b1.jpg", "b1.jpg", 1)
		require.NoError(t, err)
		b2, err := s.AddPhoto(ctx, albumID, "albums/x/b2.jpg", "b2.jpg", 1)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			photos, err := s.GetPhotosByAlbumID(ctx, albumID)
			require.NoError(t, err)
			require.Len(t, photos, 4)

			assert.Equal(t, []uint{a, b1, b2, c}, photoIDs(photos))
			assert.Equal(t, "albums/x/a.jpg", photos[0].StoragePath)
			assert.Equal(t, albumID, photos[0].AlbumID)
		}
	})

	t.Run("selection is replaced wholesale", func(t *testing.T) {
		s := newStore(t)

		customerID, _ := s.CreateCustomer(ctx, "bride4", "h", "")
		albumID, _ := s.CreateAlbum(ctx, customerID, "Album", "")

		require.NoError(t, s.SetAlbumSelection(ctx, albumID, []uint{1, 2, 3}))
		require.NoError(t, s.SetAlbumSelection(ctx, albumID, []uint{2, 4}))

		album, err := s.GetAlbumByID(ctx, albumID)
		require.NoError(t, err)
		assert.Equal(t, []uint{2, 4}, album.SelectedPhotoIDs)

		require.NoError(t, s.SetAlbumSelection(ctx, albumID, []uint{}))

		album, err = s.GetAlbumByID(ctx, albumID)
		require.NoError(t, err)
		assert.Empty(t, album.SelectedPhotoIDs)
	})

	t.Run("approval is idempotent and keeps the selection", func(t *testing.T) {
		s := newStore(t)

		customerID, _ := s.CreateCustomer(ctx, "bride5", "h", "")
		albumID, _ := s.CreateAlbum(ctx, customerID, "Album", "")
		require.NoError(t, s.SetAlbumSelection(ctx, albumID, []uint{7, 9}))

		require.NoError(t, s.ApproveAlbum(ctx, albumID))

		first, err := s.GetAlbumByID(ctx, albumID)
		require.NoError(t, err)
		require.NotNil(t, first.ApprovedAt)

		require.NoError(t, s.ApproveAlbum(ctx, albumID))

		second, err := s.GetAlbumByID(ctx, albumID)
		require.NoError(t, err)
		require.NotNil(t, second.ApprovedAt)
		assert.False(t, second.ApprovedAt.Before(*first.ApprovedAt))
		assert.Equal(t, []uint{7, 9}, second.SelectedPhotoIDs)
	})

	t.Run("customer summary prefers the approved album", func(t *testing.T) {
		s := newStore(t)

		withApproved, _ := s.CreateCustomer(ctx, "approved", "h", "A")
		approvedAlbum, _ := s.CreateAlbum(ctx, withApproved, "Approved", "")
		_, _ = s.CreateAlbum(ctx, withApproved, "Newer but open", "")
		require.NoError(t, s.ApproveAlbum(ctx, approvedAlbum))

		withOpen, _ := s.CreateCustomer(ctx, "open", "h", "B")
		openAlbum, _ := s.CreateAlbum(ctx, withOpen, "Open", "")

		withNone, _ := s.CreateCustomer(ctx, "none", "h", "C")

		summaries, err := s.GetAllCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 3)

		byID := map[uint]*models.CustomerSummary{}
		for _, summary := range summaries {
			byID[summary.ID] = summary
		}

		require.NotNil(t, byID[withApproved].AlbumID)
		assert.Equal(t, approvedAlbum, *byID[withApproved].AlbumID)
		assert.Equal(t, "Approved", *byID[withApproved].AlbumName)
		assert.NotNil(t, byID[withApproved].ApprovedAt)

		require.NotNil(t, byID[withOpen].AlbumID)
		assert.Equal(t, openAlbum, *byID[withOpen].AlbumID)
		assert.Nil(t, byID[withOpen].ApprovedAt)

		assert.Nil(t, byID[withNone].AlbumID)
		assert.Nil(t, byID[withNone].AlbumName)

		assert.Equal(t, withNone, summaries[0].ID, "newest customer first")
	})
}

func photoIDs(photos []*models.Photo) []uint {
	result := []uint{}

	for _, p := range photos {
		result = append(result, p.ID)
	}

	return result
}

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Storer {
		return NewMemoryStore()
	})
}

func TestSqliteStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Storer {
		return newTestSqliteStore(t)
	})
}

func newTestSqliteStore(t *testing.T) SQLStore {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_time_format=sqlite"

	store, err := NewSqliteStore(SqliteStoreConfig{DSN: dsn})
	require.NoError(t, err)

	return store
}

/*
assertAlbumDeleteCascades deletes an album directly and checks its photos go
with it. The Storer API has no delete, so this reaches under it.
*/
func assertAlbumDeleteCascades(t *testing.T, store SQLStore) {
	t.Helper()

	ctx := context.Background()

	customerID, err := store.CreateCustomer(ctx, "bride1", "hash", "Ayse")
	require.NoError(t, err)

	albumID, err := store.CreateAlbum(ctx, customerID, "Wedding Day", "")
	require.NoError(t, err)

	keptID, err := store.CreateAlbum(ctx, customerID, "Engagement", "")
	require.NoError(t, err)

	_, err = store.AddPhoto(ctx, albumID, "albums/1/a.jpg", "a.jpg", 0)
	require.NoError(t, err)
	_, err = store.AddPhoto(ctx, albumID, "albums/1/b.jpg", "b.jpg", 1)
	require.NoError(t, err)
	_, err = store.AddPhoto(ctx, keptID, "albums/2/c.jpg", "c.jpg", 0)
	require.NoError(t, err)

	_, err = store.db.Exec(ctx, "DELETE FROM albums WHERE id=:id", map[string]any{"id": albumID})
	require.NoError(t, err)

	var remaining int
	require.NoError(t, store.db.QueryRow(ctx, &remaining, "SELECT COUNT(*) FROM photos WHERE album_id=:id", map[string]any{"id": albumID}))
	assert.Zero(t, remaining)

	kept, err := store.GetPhotosByAlbumID(ctx, keptID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestSqliteAlbumDeleteCascadesToPhotos(t *testing.T) {
	store := newTestSqliteStore(t)
	assertAlbumDeleteCascades(t, store)
}

func TestSqliteEnforcesForeignKeysWithoutThePragma(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "bare.db") + "?_time_format=sqlite"

	store, err := NewSqliteStore(SqliteStoreConfig{DSN: dsn})
	require.NoError(t, err)

	assertAlbumDeleteCascades(t, store)
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		name   string
		dsn    string
		expect string
	}{
		{name: "adds to existing query", dsn: "file:portal.db?_time_format=sqlite", expect: "file:portal.db?_time_format=sqlite&_pragma=foreign_keys(1)"},
		{name: "adds a query", dsn: "file:portal.db", expect: "file:portal.db?_pragma=foreign_keys(1)"},
		{name: "keeps an explicit setting", dsn: "file:portal.db?_pragma=foreign_keys(0)", expect: "file:portal.db?_pragma=foreign_keys(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, sqliteDSN(tt.dsn))
		})
	}
}

func TestSqliteMigrationsAreRerunnable(t *testing.T) {
	store := newTestSqliteStore(t)

	require.NoError(t, Migrate(store.db, BackendSqlite))
	require.NoError(t, Migrate(store.db, BackendSqlite))
}
