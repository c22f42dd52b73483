//go:build integration

package stores

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresStoreContract(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "lorenzwed",
				"POSTGRES_PASSWORD": "lorenzwed",
				"POSTGRES_DB":       "lorenzwed",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://lorenzwed:lorenzwed@%s:%s/lorenzwed?sslmode=disable", host, port.Port())

	store, err := NewPostgresStore(PostgresStoreConfig{URL: url})
	require.NoError(t, err)

	truncate := func(t *testing.T) {
		_, err := store.db.Exec(ctx, "TRUNCATE photos, albums, customers RESTART IDENTITY CASCADE")
		require.NoError(t, err)
	}

	runStoreContract(t, func(t *testing.T) Storer {
		truncate(t)
		return store
	})

	t.Run("album delete cascades to photos", func(t *testing.T) {
		truncate(t)
		assertAlbumDeleteCascades(t, store)
	})
}
