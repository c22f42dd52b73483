package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) filestorage.LocalStorage {
	t.Helper()
	return filestorage.NewLocalStorage(filestorage.LocalStorageConfig{Root: t.TempDir()})
}

func createCustomer(t *testing.T, store stores.Storer, username, password string) uint {
	t.Helper()

	hash, err := identity.HashPassword(password)
	require.NoError(t, err)

	id, err := store.CreateCustomer(context.Background(), username, hash, username+" name")
	require.NoError(t, err)

	return id
}

func createAlbumWithPhotos(t *testing.T, store stores.Storer, customerID uint, count int) (uint, []uint) {
	t.Helper()
	ctx := context.Background()

	albumID, err := store.CreateAlbum(ctx, customerID, "Wedding Day", "2026-06-01")
	require.NoError(t, err)

	ids := make([]uint, 0, count)

	for i := 0; i < count; i++ {
		filename := string(rune('a'+i)) + ".jpg"
		id, err := store.AddPhoto(ctx, albumID, filestorage.PhotoKey(albumID, filename), filename, i)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	return albumID, ids
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x := 0; x < width; x++ {
		img.Set(x, x%height, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func uploadOf(name string, b []byte) PhotoUpload {
	return PhotoUpload{
		OriginalName: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
	}
}

type recordingNotifier struct {
	calls []*models.Album
	err   error
}

func (n *recordingNotifier) AlbumApproved(ctx context.Context, customer *models.Customer, album *models.Album) error {
	n.calls = append(n.calls, album)
	return n.err
}
