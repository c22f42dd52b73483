package stores

import (
	"context"
	"testing"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBackend(t *testing.T) {
	tests := []struct {
		name   string
		config BackendConfig
		want   Backend
	}{
		{name: "hosted url wins", config: BackendConfig{DSN: "file:x.db", DatabaseURL: "postgres://db"}, want: BackendPostgres},
		{name: "dsn only", config: BackendConfig{DSN: "file:x.db"}, want: BackendSqlite},
		{name: "nothing configured", config: BackendConfig{}, want: BackendNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectBackend(tt.config))
		})
	}
}

func TestUnconfiguredStoreDegradesReadsAndFailsWrites(t *testing.T) {
	ctx := context.Background()

	s, err := NewStore(BackendConfig{})
	require.NoError(t, err)

	customers, err := s.GetAllCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	album, err := s.GetAlbumByCustomerID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, album)

	photos, err := s.GetPhotosByAlbumID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, photos)

	_, err = s.CreateCustomer(ctx, "a", "b", "c")
	assert.ErrorIs(t, err, models.ErrNotConfigured)

	assert.ErrorIs(t, s.SetAlbumSelection(ctx, 1, []uint{1}), models.ErrNotConfigured)
	assert.ErrorIs(t, s.ApproveAlbum(ctx, 1), models.ErrNotConfigured)
}

func TestDecodeSelectionToleratesGarbage(t *testing.T) {
	assert.Equal(t, []uint{}, decodeSelection(""))
	assert.Equal(t, []uint{}, decodeSelection("not json"))
	assert.Equal(t, []uint{1, 3}, decodeSelection("[1,3]"))
}
