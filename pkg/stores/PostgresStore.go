package stores

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rfberaldo/sqlz"
)

type PostgresStoreConfig struct {
	URL string
}

const pgUniqueViolation = "23505"

var postgresDialect = dialect{
	isUniqueViolation: func(err error) bool {
		var pqErr *pq.Error

		if errors.As(err, &pqErr) {
			return pqErr.Code == pgUniqueViolation
		}

		return false
	},
}

func NewPostgresStore(config PostgresStoreConfig) (SQLStore, error) {
	var (
		err error
		db  *sqlz.DB
	)

	if db, err = sqlz.Connect("postgres", config.URL); err != nil {
		return SQLStore{}, fmt.Errorf("error connecting to postgres: %w: %w", ErrUnreachable, err)
	}

	if err = Migrate(db, BackendPostgres); err != nil {
		return SQLStore{}, err
	}

	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an already-open, already-migrated connection.
func NewPostgresStoreFromDB(db *sqlz.DB) SQLStore {
	return SQLStore{
		db:      db,
		dialect: postgresDialect,
	}
}
