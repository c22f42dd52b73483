package stores

import (
	"fmt"
	"strings"

	_ "github.com/glebarez/sqlite"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

type SqliteStoreConfig struct {
	DSN string
}

var sqliteDialect = dialect{
	isUniqueViolation: func(err error) bool {
		return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
	},
}

func init() {
	binds.Register("sqlite", binds.BindByDriver("sqlite3"))
}

/*
NewSqliteStore opens the embedded database and applies the schema. Foreign
keys are always enabled, so deleting an album cascades to its photos.
*/
func NewSqliteStore(config SqliteStoreConfig) (SQLStore, error) {
	var (
		err error
		db  *sqlz.DB
	)

	if db, err = sqlz.Connect("sqlite", sqliteDSN(config.DSN)); err != nil {
		return SQLStore{}, fmt.Errorf("error connecting to sqlite database: %w", err)
	}

	store := SQLStore{
		db:      db,
		dialect: sqliteDialect,
	}

	if err = Migrate(db, BackendSqlite); err != nil {
		return SQLStore{}, err
	}

	return store, nil
}

// sqliteDSN adds the foreign_keys pragma unless the DSN already sets it.
// A pragma in the DSN applies to every pooled connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}

	separator := "?"

	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return dsn + separator + "_pragma=foreign_keys(1)"
}
