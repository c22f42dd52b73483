package stores

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/rfberaldo/sqlz"
)

var (
	//go:embed sql-migrations
	sqlMigrationsFs embed.FS

	ErrUnreachable = fmt.Errorf("%w: database unreachable", models.ErrBackendUnavailable)
)

/*
Migrate runs every "commit" script for the backend in file name order.
Scripts are written to be re-runnable.
*/
func Migrate(db *sqlz.DB, backend Backend) error {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	dir := path.Join("sql-migrations", string(backend))

	if dirs, err = sqlMigrationsFs.ReadDir(dir); err != nil {
		return fmt.Errorf("error reading migrations for %s: %w", backend, err)
	}

	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].Name() < dirs[j].Name()
	})

	for _, d := range dirs {
		if d.IsDir() || !strings.HasPrefix(d.Name(), "commit") {
			continue
		}

		if b, err = fs.ReadFile(sqlMigrationsFs, path.Join(dir, d.Name())); err != nil {
			return fmt.Errorf("error reading migration %s: %w", d.Name(), err)
		}

		if err = runSqlScript(db, b); err != nil && !isIgnorableError(err) {
			return fmt.Errorf("error running migration %s: %w", d.Name(), err)
		}
	}

	return nil
}

func runSqlScript(db *sqlz.DB, script []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}

func isIgnorableError(err error) bool {
	msg := err.Error()

	if strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists") {
		return true
	}

	return false
}
